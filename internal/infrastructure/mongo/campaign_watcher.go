package mongo

import (
	"context"
	"log"
	"time"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignWatcher はキャンペーンコレクションの変更ストリームを購読し、
// 管理者ごとの一覧スナップショットをチャネルへ流す。変更ストリームが使えない
// 構成(スタンドアロン Mongo など)ではポーリングへフォールバックする。
type CampaignWatcher struct {
	campaigns    *mongo.Collection
	repository   *AdminCampaignRepository
	logger       *log.Logger
	pollInterval time.Duration
}

// NewCampaignWatcher は CampaignWatcher を生成する。
func NewCampaignWatcher(db *mongo.Database, campaignCollection string, repository *AdminCampaignRepository, logger *log.Logger) *CampaignWatcher {
	return &CampaignWatcher{
		campaigns:    db.Collection(campaignCollection),
		repository:   repository,
		logger:       logger,
		pollInterval: 5 * time.Second,
	}
}

// Subscribe は購読を開始し、まず現在の一覧を 1 件流してから変更を追う。
// ctx のキャンセルで購読は終了し、チャネルはクローズされる。
func (w *CampaignWatcher) Subscribe(ctx context.Context, adminID string) (<-chan []admindomain.Campaign, error) {
	initial, err := w.repository.Find(ctx, adminID)
	if err != nil {
		return nil, err
	}

	ch := make(chan []admindomain.Campaign, 1)
	ch <- initial

	go w.run(ctx, adminID, ch)
	return ch, nil
}

func (w *CampaignWatcher) run(ctx context.Context, adminID string, ch chan<- []admindomain.Campaign) {
	defer close(ch)

	if err := w.watch(ctx, adminID, ch); err != nil && ctx.Err() == nil {
		w.logger.Printf("campaign change stream unavailable, falling back to polling: %v", err)
		w.poll(ctx, adminID, ch)
	}
}

// watch は変更ストリームを張り、対象管理者に関係するイベントのたびに
// 一覧を取り直して流す。削除イベントは fullDocument を持たないため、
// 所有者での絞り込みから除外して常に通す。
func (w *CampaignWatcher) watch(ctx context.Context, adminID string, ch chan<- []admindomain.Campaign) error {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"fullDocument.adminId": adminID},
			bson.M{"operationType": "delete"},
		}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := w.campaigns.Watch(ctx, pipeline, opts)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		if !w.emit(ctx, adminID, ch) {
			return nil
		}
	}
	return stream.Err()
}

// poll は一定間隔で一覧を取り直す代替経路。
func (w *CampaignWatcher) poll(ctx context.Context, adminID string, ch chan<- []admindomain.Campaign) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.emit(ctx, adminID, ch) {
				return
			}
		}
	}
}

func (w *CampaignWatcher) emit(ctx context.Context, adminID string, ch chan<- []admindomain.Campaign) bool {
	snapshot, err := w.repository.Find(ctx, adminID)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		w.logger.Printf("campaign snapshot refresh failed: %v", err)
		return true
	}
	select {
	case ch <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}

package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/formflow-pro/formflow-services/api/internal/admin/application"
	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminCampaignRepository は管理者向けキャンペーン集約の Mongo 実装。
// 作成・削除は回答コレクションと跨るためトランザクションで束ねる。
type AdminCampaignRepository struct {
	client      *mongo.Client
	campaigns   *mongo.Collection
	submissions *mongo.Collection
}

// NewAdminCampaignRepository は 2 コレクションを束縛した AdminCampaignRepository を生成する。
func NewAdminCampaignRepository(client *mongo.Client, db *mongo.Database, campaignCollection, submissionCollection string) *AdminCampaignRepository {
	return &AdminCampaignRepository{
		client:      client,
		campaigns:   db.Collection(campaignCollection),
		submissions: db.Collection(submissionCollection),
	}
}

// Find は管理者が所有するキャンペーンを作成日時の降順で返す。
func (r *AdminCampaignRepository) Find(ctx context.Context, adminID string) ([]admindomain.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.campaigns.Find(ctx, bson.M{"adminId": adminID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	campaigns := make([]admindomain.Campaign, 0)
	for cursor.Next(ctx) {
		var doc CampaignDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, mapCampaignDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// FindByID は単一キャンペーンを返す。存在しなければ ErrNotFound。
func (r *AdminCampaignRepository) FindByID(ctx context.Context, id string) (*admindomain.Campaign, error) {
	var doc CampaignDocument
	if err := r.campaigns.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admindomain.ErrNotFound
		}
		return nil, err
	}
	campaign := mapCampaignDocument(doc)
	return &campaign, nil
}

// CreateWithSubmissions はキャンペーン 1 件と名簿分の Pending 回答を
// 1 トランザクションで挿入する。途中で失敗すれば何も残らない。
func (r *AdminCampaignRepository) CreateWithSubmissions(ctx context.Context, campaign *admindomain.Campaign, seeds []application.SubmissionSeed) error {
	doc := mapDomainCampaignToDocument(campaign)

	submissionDocs := make([]interface{}, 0, len(seeds))
	for _, seed := range seeds {
		submissionDocs = append(submissionDocs, SubmissionDocument{
			ID:           participantdomain.CompositeID(campaign.ID, seed.ParticipantID),
			CampaignID:   campaign.ID,
			CampaignName: campaign.Name,
			Data:         seed.Data,
			Status:       string(participantdomain.StatusPending),
		})
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.campaigns.InsertOne(sc, doc); err != nil {
			return nil, err
		}
		if len(submissionDocs) > 0 {
			if _, err := r.submissions.InsertMany(sc, submissionDocs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// UpdateLifecycle はライフサイクル遷移で変わるフィールドだけを書き戻す。
func (r *AdminCampaignRepository) UpdateLifecycle(ctx context.Context, campaign *admindomain.Campaign) error {
	update := bson.M{
		"$set": bson.M{"status": string(campaign.Status)},
	}
	if campaign.ClosedAt != nil {
		update["$set"].(bson.M)["closedAt"] = *campaign.ClosedAt
	} else {
		update["$unset"] = bson.M{"closedAt": ""}
	}
	result, err := r.campaigns.UpdateOne(ctx, bson.M{"_id": campaign.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return admindomain.ErrNotFound
	}
	return nil
}

// UpdateSettings は作成後も編集できる設定項目だけを書き戻す。
// フォーム項目定義とカウンタはここでは触れない。
func (r *AdminCampaignRepository) UpdateSettings(ctx context.Context, campaign *admindomain.Campaign) error {
	update := bson.M{"$set": bson.M{
		"name":        campaign.Name,
		"pin":         campaign.PIN.String(),
		"theme":       campaign.Theme.String(),
		"description": campaign.Description,
	}}
	result, err := r.campaigns.UpdateOne(ctx, bson.M{"_id": campaign.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return admindomain.ErrNotFound
	}
	// 回答側の campaignName は作成時点の複製のまま。改名しても追従させない。
	return nil
}

// DeleteCascade はキャンペーンと配下の回答を 1 トランザクションで削除する。
func (r *AdminCampaignRepository) DeleteCascade(ctx context.Context, id string) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.submissions.DeleteMany(sc, bson.M{"campaignId": id}); err != nil {
			return nil, err
		}
		result, err := r.campaigns.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if result.DeletedCount == 0 {
			return nil, admindomain.ErrNotFound
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes は起動時に必要なインデックスを作成する。冪等。
func (r *AdminCampaignRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.campaigns.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "adminId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "pin", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = r.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}

package mongo

import (
	"context"
	"errors"

	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParticipantCampaignRepository は参加者コンテキストのキャンペーン読み取り実装。
type ParticipantCampaignRepository struct {
	collection *mongo.Collection
}

// NewParticipantCampaignRepository はキャンペーンコレクションを束縛した
// ParticipantCampaignRepository を生成する。
func NewParticipantCampaignRepository(db *mongo.Database, collection string) *ParticipantCampaignRepository {
	return &ParticipantCampaignRepository{collection: db.Collection(collection)}
}

// FindByPIN は PIN が一致するキャンペーンを列挙する。下書きは参加者からは
// 見えない。終了済みは含める(サインイン後に終了表示を出すため)。
func (r *ParticipantCampaignRepository) FindByPIN(ctx context.Context, pin string) ([]participantdomain.CampaignView, error) {
	filter := bson.M{
		"pin":    pin,
		"status": bson.M{"$ne": "Draft"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	views := make([]participantdomain.CampaignView, 0)
	for cursor.Next(ctx) {
		var doc CampaignDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		views = append(views, mapCampaignDocumentToView(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// FindByID は単一キャンペーンの読み取りモデルを返す。
func (r *ParticipantCampaignRepository) FindByID(ctx context.Context, id string) (*participantdomain.CampaignView, error) {
	var doc CampaignDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, participantdomain.ErrNotFound
		}
		return nil, err
	}
	view := mapCampaignDocumentToView(doc)
	return &view, nil
}

package mongo

import (
	"context"

	"github.com/formflow-pro/formflow-services/api/internal/admin/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminSubmissionRepository は管理画面向けの回答読み取り専用リポジトリ。
type AdminSubmissionRepository struct {
	collection *mongo.Collection
}

// NewAdminSubmissionRepository は回答コレクションを束縛した AdminSubmissionRepository を生成する。
func NewAdminSubmissionRepository(db *mongo.Database, collection string) *AdminSubmissionRepository {
	return &AdminSubmissionRepository{collection: db.Collection(collection)}
}

// FindByCampaign はキャンペーン配下の回答を _id 昇順(= 参加者識別子順)で返す。
// status が空でなければその状態だけに絞り込む。
func (r *AdminSubmissionRepository) FindByCampaign(ctx context.Context, campaignID string, status string) ([]application.SubmissionRecord, error) {
	filter := bson.M{"campaignId": campaignID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]application.SubmissionRecord, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, mapSubmissionDocumentToRecord(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

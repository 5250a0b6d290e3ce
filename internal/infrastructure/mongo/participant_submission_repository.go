package mongo

import (
	"context"
	"errors"
	"time"

	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ParticipantSubmissionRepository は参加者自身の回答 1 件に対する読み書き実装。
type ParticipantSubmissionRepository struct {
	client      *mongo.Client
	campaigns   *mongo.Collection
	submissions *mongo.Collection
}

// NewParticipantSubmissionRepository は 2 コレクションを束縛した
// ParticipantSubmissionRepository を生成する。
func NewParticipantSubmissionRepository(client *mongo.Client, db *mongo.Database, campaignCollection, submissionCollection string) *ParticipantSubmissionRepository {
	return &ParticipantSubmissionRepository{
		client:      client,
		campaigns:   db.Collection(campaignCollection),
		submissions: db.Collection(submissionCollection),
	}
}

// FindByID は複合 ID で回答を 1 件返す。存在しなければ ErrNotFound。
func (r *ParticipantSubmissionRepository) FindByID(ctx context.Context, id string) (*participantdomain.Submission, error) {
	var doc SubmissionDocument
	if err := r.submissions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, participantdomain.ErrNotFound
		}
		return nil, err
	}
	submission := mapSubmissionDocument(doc)
	return &submission, nil
}

// Exists は複合 ID の回答ドキュメントが存在するかだけを確かめる。
func (r *ParticipantSubmissionRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := r.submissions.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save は回答データの全置換と状態遷移を 1 トランザクションで適用する。
// 初回提出 (Pending → Submitted) の判定は status を条件に含めた更新で行い、
// 条件に一致したときだけキャンペーンの submissionCount を加算する。
// 同じ回答への並行保存があっても加算は高々 1 回で済む。
func (r *ParticipantSubmissionRepository) Save(ctx context.Context, id string, data map[string]string) (*participantdomain.Submission, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var current SubmissionDocument
		if err := r.submissions.FindOne(sc, bson.M{"_id": id}).Decode(&current); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, participantdomain.ErrNotFound
			}
			return nil, err
		}

		now := time.Now().UTC()

		firstSubmission, err := r.submissions.UpdateOne(sc,
			bson.M{"_id": id, "status": string(participantdomain.StatusPending)},
			bson.M{"$set": bson.M{
				"data":        data,
				"status":      string(participantdomain.StatusSubmitted),
				"submittedAt": now,
			}},
		)
		if err != nil {
			return nil, err
		}

		if firstSubmission.ModifiedCount == 1 {
			if _, err := r.campaigns.UpdateOne(sc,
				bson.M{"_id": current.CampaignID},
				bson.M{"$inc": bson.M{"submissionCount": 1}},
			); err != nil {
				return nil, err
			}
		} else {
			// 既に提出済み。内容の更新として扱い、カウンタは動かさない。
			if _, err := r.submissions.UpdateOne(sc,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{
					"data":      data,
					"status":    string(participantdomain.StatusUpdated),
					"updatedAt": now,
				}},
			); err != nil {
				return nil, err
			}
		}

		var saved SubmissionDocument
		if err := r.submissions.FindOne(sc, bson.M{"_id": id}).Decode(&saved); err != nil {
			return nil, err
		}
		return saved, nil
	})
	if err != nil {
		return nil, err
	}

	saved := result.(SubmissionDocument)
	submission := mapSubmissionDocument(saved)
	return &submission, nil
}

package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Save のカウンタ不変条件は条件付き更新と $inc の組み合わせで実装されているため、
// 実データベースでしか検証できない。MONGO_TEST_URI が設定されているときだけ実行する。
// トランザクションを使うのでレプリカセット構成の接続先を指定すること。
func TestParticipantSubmissionRepositorySave(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI が未設定のため省略")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database(fmt.Sprintf("formflow_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	campaigns := db.Collection("campaigns")
	submissions := db.Collection("submissions")

	const campaignID = "campaign-1"
	_, err = campaigns.InsertOne(ctx, CampaignDocument{
		ID:               campaignID,
		Name:             "社内連絡網の更新",
		PIN:              "1234",
		Status:           "Active",
		Theme:            "blue",
		AdminID:          "admin-1",
		ParticipantCount: 2,
		SubmissionCount:  0,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	for _, participantID := range []string{"E001", "E002"} {
		_, err = submissions.InsertOne(ctx, SubmissionDocument{
			ID:           participantdomain.CompositeID(campaignID, participantID),
			CampaignID:   campaignID,
			CampaignName: "社内連絡網の更新",
			Data:         map[string]string{"氏名": ""},
			Status:       string(participantdomain.StatusPending),
		})
		require.NoError(t, err)
	}

	repo := NewParticipantSubmissionRepository(client, db, "campaigns", "submissions")

	submissionCount := func(t *testing.T) int {
		t.Helper()
		var doc CampaignDocument
		require.NoError(t, campaigns.FindOne(ctx, bson.M{"_id": campaignID}).Decode(&doc))
		return doc.SubmissionCount
	}

	t.Run("初回提出でカウンタがちょうど 1 増える", func(t *testing.T) {
		saved, err := repo.Save(ctx, participantdomain.CompositeID(campaignID, "E001"), map[string]string{"氏名": "山田"})
		require.NoError(t, err)
		assert.Equal(t, participantdomain.StatusSubmitted, saved.Status)
		require.NotNil(t, saved.SubmittedAt)
		assert.Equal(t, 1, submissionCount(t))
	})

	t.Run("同じ参加者の再保存ではカウンタが動かない", func(t *testing.T) {
		saved, err := repo.Save(ctx, participantdomain.CompositeID(campaignID, "E001"), map[string]string{"氏名": "山田太郎"})
		require.NoError(t, err)
		assert.Equal(t, participantdomain.StatusUpdated, saved.Status)
		require.NotNil(t, saved.UpdatedAt)
		assert.Equal(t, "山田太郎", saved.Data["氏名"])
		assert.Equal(t, 1, submissionCount(t))
	})

	t.Run("別参加者の初回提出は独立に加算される", func(t *testing.T) {
		saved, err := repo.Save(ctx, participantdomain.CompositeID(campaignID, "E002"), map[string]string{"氏名": "佐藤"})
		require.NoError(t, err)
		assert.Equal(t, participantdomain.StatusSubmitted, saved.Status)
		assert.Equal(t, 2, submissionCount(t))
	})

	t.Run("名簿にない複合 ID は ErrNotFound", func(t *testing.T) {
		_, err := repo.Save(ctx, participantdomain.CompositeID(campaignID, "E999"), map[string]string{})
		assert.ErrorIs(t, err, participantdomain.ErrNotFound)
		assert.Equal(t, 2, submissionCount(t))
	})
}

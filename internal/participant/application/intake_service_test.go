package application

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

type fakeFileStore struct {
	gotPath string
}

func (s *fakeFileStore) Put(ctx context.Context, path string, r io.Reader) (string, error) {
	s.gotPath = path
	return "/media/" + path, nil
}

func intakeFixture() (*fakeCampaignRepo, *fakeSubmissionRepo, *fakeFileStore) {
	campaign := domain.CampaignView{
		ID:     "camp-a",
		Name:   "キャンペーンA",
		PIN:    "123456",
		Status: "Active",
		Fields: []domain.FormField{
			{ID: "employee_id", Label: "社員番号", Type: "Text", Required: true, OriginalHeader: "Employee ID"},
			{ID: "photo", Label: "証明写真", Type: domain.FieldTypeFile, OriginalHeader: "Photo"},
		},
	}
	campaigns := &fakeCampaignRepo{byID: map[string]*domain.CampaignView{"camp-a": &campaign}}
	submissions := &fakeSubmissionRepo{byID: map[string]*domain.Submission{
		"camp-a_EMP001": {
			ID:         "camp-a_EMP001",
			CampaignID: "camp-a",
			Status:     domain.StatusPending,
			Data:       map[string]string{"Employee ID": "EMP001"},
		},
	}}
	return campaigns, submissions, &fakeFileStore{}
}

func TestIntakeServiceLoad(t *testing.T) {
	campaigns, submissions, files := intakeFixture()
	service := NewIntakeService(campaigns, submissions, files)

	view, err := service.Load(context.Background(), "camp-a", "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "camp-a", view.Campaign.ID)
	assert.Equal(t, domain.StatusPending, view.Submission.Status)

	t.Run("名簿に無い参加者は NotFound", func(t *testing.T) {
		_, err := service.Load(context.Background(), "camp-a", "EMP999")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestIntakeServiceSave(t *testing.T) {
	t.Run("保存は全置換で永続層へ渡る", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		data := map[string]string{"Employee ID": "EMP001", "Photo": "/media/x.png"}
		submission, err := service.Save(context.Background(), "camp-a", "EMP001", data)
		require.NoError(t, err)

		assert.Equal(t, "camp-a_EMP001", submissions.saved.id)
		assert.Equal(t, data, submissions.saved.data)
		assert.Equal(t, domain.StatusSubmitted, submission.Status)
		require.NotNil(t, submission.SubmittedAt)
	})

	t.Run("2 回目以降の保存は Updated", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		data := map[string]string{"Employee ID": "EMP001"}
		_, err := service.Save(context.Background(), "camp-a", "EMP001", data)
		require.NoError(t, err)

		submission, err := service.Save(context.Background(), "camp-a", "EMP001", data)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUpdated, submission.Status)
		require.NotNil(t, submission.UpdatedAt)
	})

	t.Run("必須項目が空なら保存しない", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Save(context.Background(), "camp-a", "EMP001", map[string]string{"Employee ID": "  "})
		var required *domain.RequiredFieldError
		require.ErrorAs(t, err, &required)
		assert.Equal(t, "社員番号", required.Label)
		assert.Empty(t, submissions.saved.id)
	})

	t.Run("終了済みキャンペーンへの保存は拒否", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		campaigns.byID["camp-a"].Status = "Closed"
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Save(context.Background(), "camp-a", "EMP001", map[string]string{"Employee ID": "EMP001"})
		require.ErrorIs(t, err, domain.ErrCampaignClosed)
		assert.Empty(t, submissions.saved.id)
	})
}

func TestIntakeServiceUpload(t *testing.T) {
	content := strings.NewReader("binary")

	t.Run("ファイル項目に保存して URL を返す", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		url, err := service.Upload(context.Background(), "camp-a", "EMP001", "photo", "портрет.png", content)
		require.NoError(t, err)
		assert.Equal(t, "camp-a/EMP001/photo/портрет.png", files.gotPath)
		assert.Equal(t, "/media/camp-a/EMP001/photo/портрет.png", url)
	})

	t.Run("パス区切りはベース名に落とす", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Upload(context.Background(), "camp-a", "EMP001", "photo", "..\\..\\evil.png", content)
		require.NoError(t, err)
		assert.Equal(t, "camp-a/EMP001/photo/evil.png", files.gotPath)
	})

	t.Run("ファイル項目以外は拒否", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Upload(context.Background(), "camp-a", "EMP001", "employee_id", "x.png", content)
		require.Error(t, err)
		assert.Empty(t, files.gotPath)
	})

	t.Run("存在しない項目は拒否", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Upload(context.Background(), "camp-a", "EMP001", "nope", "x.png", content)
		require.Error(t, err)
	})

	t.Run("終了済みキャンペーンへは拒否", func(t *testing.T) {
		campaigns, submissions, files := intakeFixture()
		campaigns.byID["camp-a"].Status = "Closed"
		service := NewIntakeService(campaigns, submissions, files)

		_, err := service.Upload(context.Background(), "camp-a", "EMP001", "photo", "x.png", content)
		require.ErrorIs(t, err, domain.ErrCampaignClosed)
	})
}

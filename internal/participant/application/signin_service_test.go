package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

type fakeCampaignRepo struct {
	byPIN map[string][]domain.CampaignView
	byID  map[string]*domain.CampaignView
}

func (r *fakeCampaignRepo) FindByPIN(ctx context.Context, pin string) ([]domain.CampaignView, error) {
	return r.byPIN[pin], nil
}

func (r *fakeCampaignRepo) FindByID(ctx context.Context, id string) (*domain.CampaignView, error) {
	campaign, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *campaign
	return &clone, nil
}

type fakeSubmissionRepo struct {
	byID  map[string]*domain.Submission
	saved struct {
		id   string
		data map[string]string
	}
}

func (r *fakeSubmissionRepo) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	submission, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *submission
	return &clone, nil
}

func (r *fakeSubmissionRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeSubmissionRepo) Save(ctx context.Context, id string, data map[string]string) (*domain.Submission, error) {
	submission, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.saved.id = id
	r.saved.data = data

	now := time.Now().UTC()
	next := submission.NextStatus()
	submission.Data = data
	if submission.Status == domain.StatusPending {
		submission.SubmittedAt = &now
	} else {
		submission.UpdatedAt = &now
	}
	submission.Status = next

	clone := *submission
	return &clone, nil
}

func signInFixture() (*fakeCampaignRepo, *fakeSubmissionRepo) {
	campaignA := domain.CampaignView{ID: "camp-a", Name: "キャンペーンA", PIN: "123456", Status: "Active"}
	campaignB := domain.CampaignView{ID: "camp-b", Name: "キャンペーンB", PIN: "123456", Status: "Active"}
	campaigns := &fakeCampaignRepo{
		byPIN: map[string][]domain.CampaignView{"123456": {campaignA, campaignB}},
		byID:  map[string]*domain.CampaignView{"camp-a": &campaignA, "camp-b": &campaignB},
	}
	submissions := &fakeSubmissionRepo{byID: map[string]*domain.Submission{
		"camp-a_EMP001": {ID: "camp-a_EMP001", CampaignID: "camp-a", Status: domain.StatusPending},
		"camp-b_EMP001": {ID: "camp-b_EMP001", CampaignID: "camp-b", Status: domain.StatusPending},
		"camp-b_EMP002": {ID: "camp-b_EMP002", CampaignID: "camp-b", Status: domain.StatusPending},
	}}
	return campaigns, submissions
}

func TestSignInServiceResolve(t *testing.T) {
	t.Run("一意に決まればそのまま成功", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		identity, err := service.Resolve(context.Background(), "EMP002", "123456", "")
		require.NoError(t, err)
		assert.Equal(t, "camp-b", identity.CampaignID)
		assert.Equal(t, "キャンペーンB", identity.CampaignName)
		assert.Equal(t, "EMP002", identity.ParticipantID)
	})

	t.Run("入力はトリムされる", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		identity, err := service.Resolve(context.Background(), "  EMP002  ", " 123456 ", "")
		require.NoError(t, err)
		assert.Equal(t, "EMP002", identity.ParticipantID)
	})

	t.Run("複数一致は候補つきで拒否", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		_, err := service.Resolve(context.Background(), "EMP001", "123456", "")
		var ambiguous *domain.AmbiguousCampaignError
		require.ErrorAs(t, err, &ambiguous)
		require.Len(t, ambiguous.Candidates, 2)
		assert.Equal(t, "camp-a", ambiguous.Candidates[0].ID)
	})

	t.Run("campaignId 指定で曖昧さが解消できる", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		identity, err := service.Resolve(context.Background(), "EMP001", "123456", "camp-b")
		require.NoError(t, err)
		assert.Equal(t, "camp-b", identity.CampaignID)
	})

	t.Run("PIN と識別子のどちらが誤っていても同じエラー", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		_, wrongPIN := service.Resolve(context.Background(), "EMP001", "999999", "")
		_, wrongID := service.Resolve(context.Background(), "EMP999", "123456", "")
		require.ErrorIs(t, wrongPIN, domain.ErrAuthFailure)
		require.ErrorIs(t, wrongID, domain.ErrAuthFailure)
		assert.Equal(t, wrongPIN.Error(), wrongID.Error())
	})

	t.Run("空入力は照会せずに拒否", func(t *testing.T) {
		campaigns, submissions := signInFixture()
		service := NewSignInService(campaigns, submissions)

		_, err := service.Resolve(context.Background(), "  ", "123456", "")
		require.ErrorIs(t, err, domain.ErrAuthFailure)

		_, err = service.Resolve(context.Background(), "EMP001", "", "")
		require.ErrorIs(t, err, domain.ErrAuthFailure)
	})
}

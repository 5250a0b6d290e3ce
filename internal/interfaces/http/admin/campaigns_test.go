package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCampaignService struct {
	createResult *admindomain.Campaign
	createErr    error
	updateErr    error
}

func (f *fakeCampaignService) List(ctx context.Context, adminID string) ([]admindomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignService) Detail(ctx context.Context, id, adminID string) (*admindomain.Campaign, error) {
	return nil, admindomain.ErrNotFound
}

func (f *fakeCampaignService) Create(ctx context.Context, cmd adminapp.CreateCampaignCommand) (*admindomain.Campaign, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeCampaignService) UpdateSettings(ctx context.Context, id, adminID string, cmd adminapp.UpdateCampaignCommand) (*admindomain.Campaign, error) {
	return nil, f.updateErr
}

func (f *fakeCampaignService) Transition(ctx context.Context, id, adminID string, event admindomain.Event) (*admindomain.Campaign, error) {
	return nil, admindomain.ErrNotFound
}

func (f *fakeCampaignService) Delete(ctx context.Context, id, adminID string) error {
	return nil
}

func (f *fakeCampaignService) Watch(ctx context.Context, adminID string) (<-chan []admindomain.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignService) Submissions(ctx context.Context, id, adminID string, status string) (*admindomain.Campaign, []adminapp.SubmissionRecord, error) {
	return nil, nil, admindomain.ErrNotFound
}

func newCampaignTestRouter(service adminapp.CampaignService) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: "admin-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})

	handler := NewHandler(Config{
		Logger:          log.New(io.Discard, "", 0),
		CampaignService: service,
	})
	handler.Register(router)
	return router
}

func decodeErrorBody(t *testing.T, body io.Reader) map[string]string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestCampaignCreateHandler(t *testing.T) {
	t.Run("作成成功は 201", func(t *testing.T) {
		service := &fakeCampaignService{createResult: &admindomain.Campaign{
			ID:        "campaign-1",
			Name:      "社内連絡網の更新",
			PIN:       admindomain.PIN("1234"),
			Status:    admindomain.StatusDraft,
			Theme:     admindomain.Theme("blue"),
			CreatedAt: time.Now().UTC(),
		}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(`{"name":"社内連絡網の更新"}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("検証エラーはメッセージ付きの 400", func(t *testing.T) {
		service := &fakeCampaignService{createErr: &admindomain.ValidationError{Message: "PIN は4〜8桁で入力してください"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(`{}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "PIN は4〜8桁で入力してください", decodeErrorBody(t, rec.Body)["error"])
	})

	t.Run("識別子の重複もメッセージ付きの 400", func(t *testing.T) {
		service := &fakeCampaignService{createErr: &admindomain.DuplicateIdentifierError{Column: "社員番号", Value: "E001"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(`{}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeErrorBody(t, rec.Body)["error"], "E001")
	})

	t.Run("想定外のエラーは内部情報を漏らさず 500", func(t *testing.T) {
		service := &fakeCampaignService{createErr: errors.New("connection(replica-0:27017) socket was unexpectedly closed")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/campaigns", strings.NewReader(`{}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeErrorBody(t, rec.Body)
		assert.Equal(t, "処理に失敗しました", body["error"])
		assert.NotContains(t, body["error"], "socket")
	})
}

func TestCampaignUpdateHandler(t *testing.T) {
	t.Run("検証エラーは 400", func(t *testing.T) {
		service := &fakeCampaignService{updateErr: &admindomain.ValidationError{Message: "不正なテーマです: pink"}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/campaigns/campaign-1", strings.NewReader(`{}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "不正なテーマです: pink", decodeErrorBody(t, rec.Body)["error"])
	})

	t.Run("想定外のエラーは 500", func(t *testing.T) {
		service := &fakeCampaignService{updateErr: errors.New("write exception")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/campaigns/campaign-1", strings.NewReader(`{}`))

		newCampaignTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "処理に失敗しました", decodeErrorBody(t, rec.Body)["error"])
	})
}

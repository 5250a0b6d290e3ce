package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		status := strings.TrimSpace(r.URL.Query().Get("status"))

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		campaign, records, err := h.campaignService.Submissions(ctx, id, user.ID, status)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		items := make([]adminSubmissionResponse, 0, len(records))
		for _, record := range records {
			items = append(items, adminSubmissionResponse{
				ID:            record.ID,
				ParticipantID: participantIDFromComposite(record.ID, campaign.ID),
				Data:          record.Data,
				Status:        record.Status,
				SubmittedAt:   record.SubmittedAt,
				UpdatedAt:     record.UpdatedAt,
			})
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"campaign": adminCampaignDomainToResponse(*campaign),
			"items":    items,
		})
	}
}

// submissionExportHandler は回答一覧を CSV ダウンロードとして返す。
// 列はフォーム項目定義のラベル順。status での絞り込みは一覧と同じ。
func (h *Handler) submissionExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		status := strings.TrimSpace(r.URL.Query().Get("status"))

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		campaign, records, err := h.campaignService.Submissions(ctx, id, user.ID, status)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		filename := exportFilename(campaign.Name)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
		w.WriteHeader(http.StatusOK)

		if err := adminapp.WriteSubmissionsCSV(w, campaign.Fields, records); err != nil {
			h.logger.Printf("submission export write failed id=%s err=%v", id, err)
		}
	}
}

// exportFilename はキャンペーン名からダウンロードファイル名を作る。
// ヘッダ値を壊す文字だけ落とし、日本語などはそのまま残す。
func exportFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\n', '\r':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" {
		cleaned = "submissions"
	}
	return cleaned + ".csv"
}

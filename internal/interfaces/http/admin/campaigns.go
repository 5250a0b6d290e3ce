package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) campaignListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		campaigns, err := h.campaignService.List(ctx, user.ID)
		if err != nil {
			h.logger.Printf("admin campaign list failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "キャンペーン一覧の取得に失敗しました")
			return
		}

		items := make([]adminCampaignResponse, 0, len(campaigns))
		for _, campaign := range campaigns {
			items = append(items, adminCampaignDomainToResponse(campaign))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

// campaignLiveHandler はキャンペーン一覧を Server-Sent Events で配信する。
// 接続直後に現在の一覧を 1 回流し、以後は変更のたびにスナップショット全体を流す。
func (h *Handler) campaignLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "ストリーミングに対応していません")
			return
		}

		ch, err := h.campaignService.Watch(r.Context(), user.ID)
		if err != nil {
			h.logger.Printf("admin campaign watch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "キャンペーン一覧の購読に失敗しました")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for snapshot := range ch {
			items := make([]adminCampaignResponse, 0, len(snapshot))
			for _, campaign := range snapshot {
				items = append(items, adminCampaignDomainToResponse(campaign))
			}
			payload, err := json.Marshal(map[string]any{"items": items})
			if err != nil {
				h.logger.Printf("campaign snapshot encode failed: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: campaigns\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (h *Handler) campaignCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		var req adminCampaignCreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRosterUploadBytes)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		edits := make([]admindomain.FieldEdit, 0, len(req.Fields))
		for _, edit := range req.Fields {
			edits = append(edits, admindomain.FieldEdit{
				OriginalHeader: edit.OriginalHeader,
				Label:          edit.Label,
				Type:           admindomain.FieldType(edit.Type),
				Required:       edit.Required,
				Options:        edit.Options,
			})
		}

		cmd := adminapp.CreateCampaignCommand{
			AdminID:          user.ID,
			Name:             req.Name,
			PIN:              req.PIN,
			Theme:            req.Theme,
			Description:      req.Description,
			IdentifierColumn: req.IdentifierColumn,
			Headers:          req.Headers,
			Rows:             req.Rows,
			FieldEdits:       edits,
			Launch:           req.Launch,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		campaign, err := h.campaignService.Create(ctx, cmd)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, adminCampaignDomainToResponse(*campaign))
	}
}

func (h *Handler) campaignDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		campaign, err := h.campaignService.Detail(ctx, id, user.ID)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminCampaignDomainToResponse(*campaign))
	}
}

func (h *Handler) campaignUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req adminCampaignUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		campaign, err := h.campaignService.UpdateSettings(ctx, id, user.ID, adminapp.UpdateCampaignCommand{
			Name:        req.Name,
			PIN:         req.PIN,
			Theme:       req.Theme,
			Description: req.Description,
		})
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminCampaignDomainToResponse(*campaign))
	}
}

func (h *Handler) campaignDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		if err := h.campaignService.Delete(ctx, id, user.ID); err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func (h *Handler) campaignTransitionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		event, err := admindomain.NewEvent(strings.TrimSpace(chi.URLParam(r, "event")))
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "不明な操作です")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		campaign, err := h.campaignService.Transition(ctx, id, user.ID, event)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminCampaignDomainToResponse(*campaign))
	}
}

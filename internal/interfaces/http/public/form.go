package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) formLoadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := common.ParticipantFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		view, err := h.intakeService.Load(ctx, session.CampaignID, session.ParticipantID)
		if err != nil {
			h.writeFormError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, formViewToResponse(view))
	}
}

// formSaveHandler はフォームの保存を受け付ける。data は全置換で、
// 初回提出か更新かはサーバー側の状態から判定される。
func (h *Handler) formSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := common.ParticipantFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		var req publicFormSaveRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "リクエストの形式が不正です")
			return
		}
		if req.Data == nil {
			req.Data = map[string]string{}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		submission, err := h.intakeService.Save(ctx, session.CampaignID, session.ParticipantID, req.Data)
		if err != nil {
			h.writeFormError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, submissionToResponse(*submission))
	}
}

// fileUploadHandler はファイル項目 1 つ分の添付を保存する。アップロードは
// フォーム保存とは独立していて、失敗してもフォーム本体の保存は妨げない。
func (h *Handler) fileUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := common.ParticipantFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		fieldID := strings.TrimSpace(chi.URLParam(r, "fieldId"))

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxAttachmentBytes)
		if err := r.ParseMultipartForm(common.MaxAttachmentBytes); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "ファイルの受信に失敗しました")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "ファイルが指定されていません")
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		url, err := h.intakeService.Upload(ctx, session.CampaignID, session.ParticipantID, fieldID, header.Filename, file)
		if err != nil {
			if errors.Is(err, participantdomain.ErrNotFound) || errors.Is(err, participantdomain.ErrCampaignClosed) {
				h.writeFormError(w, err)
				return
			}
			h.logger.Printf("participant upload rejected field=%s err=%v", fieldID, err)
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, publicUploadResponse{URL: url})
	}
}

// writeFormError は参加者ユースケースのエラーを HTTP ステータスへ対応付ける。
func (h *Handler) writeFormError(w http.ResponseWriter, err error) {
	var requiredErr *participantdomain.RequiredFieldError
	switch {
	case errors.Is(err, participantdomain.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, err.Error())
	case errors.Is(err, participantdomain.ErrCampaignClosed):
		common.WriteError(h.logger, w, http.StatusConflict, err.Error())
	case errors.As(err, &requiredErr):
		common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Printf("participant form operation failed: %v", err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, "処理に失敗しました")
	}
}

package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
	"github.com/go-chi/chi/v5"
)

var (
	errInvalidWindowKind  = errors.New("不明な集計期間です")
	errInvalidWindowDate  = errors.New("日付は YYYY-MM-DD 形式で指定してください")
	errInvalidWindowRange = errors.New("終了日は開始日以降を指定してください")
)

// analyticsHandler はキャンペーンの提出状況レポートを返す。
// window=all|60m|48h|custom で、custom のときは start/end (YYYY-MM-DD) が必須。
func (h *Handler) analyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		window, err := h.parseWindow(r)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		report, err := h.analyticsService.Report(ctx, id, user.ID, window)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		series := make([]adminSeriesPointResponse, 0, len(report.Series))
		for _, point := range report.Series {
			series = append(series, adminSeriesPointResponse{Label: point.Label, Count: point.Count, At: point.At})
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminAnalyticsResponse{
			Series:            series,
			Completed:         report.Completed,
			Pending:           report.Pending,
			ParticipationRate: report.ParticipationRate,
		})
	}
}

func (h *Handler) parseWindow(r *http.Request) (adminapp.Window, error) {
	query := r.URL.Query()
	kind := adminapp.WindowKind(strings.TrimSpace(query.Get("window")))
	switch kind {
	case "", adminapp.WindowAll:
		return adminapp.Window{Kind: adminapp.WindowAll}, nil
	case adminapp.WindowLast60Minutes, adminapp.WindowLast48Hours:
		return adminapp.Window{Kind: kind}, nil
	case adminapp.WindowCustom:
		start, err := time.Parse("2006-01-02", strings.TrimSpace(query.Get("start")))
		if err != nil {
			return adminapp.Window{}, errInvalidWindowDate
		}
		end, err := time.Parse("2006-01-02", strings.TrimSpace(query.Get("end")))
		if err != nil {
			return adminapp.Window{}, errInvalidWindowDate
		}
		if end.Before(start) {
			return adminapp.Window{}, errInvalidWindowRange
		}
		return adminapp.NewCustomWindow(start, end, h.location), nil
	}
	return adminapp.Window{}, errInvalidWindowKind
}

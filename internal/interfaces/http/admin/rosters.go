package admin

import (
	"net/http"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
)

// rosterPreviewHandler は名簿ファイル (CSV/XLSX) を受け取り、列見出し・行数・
// 項目定義の初期案・全行データを返す。ここでは何も永続化しない。クライアントは
// この結果を編集した上で作成リクエストに同梱する。
func (h *Handler) rosterPreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := common.UserFromContext(r.Context()); !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "認証情報がありません")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRosterUploadBytes)
		if err := r.ParseMultipartForm(common.MaxRosterUploadBytes); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "ファイルの受信に失敗しました")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "名簿ファイルが指定されていません")
			return
		}
		defer file.Close()

		roster, err := h.rosterImporter.Parse(header.Filename, file)
		if err != nil {
			writeServiceError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, rosterPreviewResponse{
			Headers:  roster.Headers,
			RowCount: len(roster.Rows),
			Fields:   adminFieldsToResponse(admindomain.ProposeFields(roster.Headers)),
			Rows:     roster.Rows,
		})
	}
}

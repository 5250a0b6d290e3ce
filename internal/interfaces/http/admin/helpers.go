package admin

import (
	"errors"
	"log"
	"net/http"
	"strings"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	"github.com/formflow-pro/formflow-services/api/internal/interfaces/http/common"
)

// adminCampaignDomainToResponse はドメインの Campaign 集約を管理画面用レスポンスへ変換する。
func adminCampaignDomainToResponse(campaign admindomain.Campaign) adminCampaignResponse {
	return adminCampaignResponse{
		ID:               campaign.ID,
		Name:             campaign.Name,
		PIN:              campaign.PIN.String(),
		Status:           string(campaign.Status),
		Theme:            campaign.Theme.String(),
		Description:      campaign.Description,
		Fields:           adminFieldsToResponse(campaign.Fields),
		ParticipantCount: campaign.ParticipantCount,
		SubmissionCount:  campaign.SubmissionCount,
		CreatedAt:        campaign.CreatedAt,
		ClosedAt:         campaign.ClosedAt,
	}
}

func adminFieldsToResponse(fields []admindomain.FieldDescriptor) []adminFieldResponse {
	result := make([]adminFieldResponse, 0, len(fields))
	for _, field := range fields {
		result = append(result, adminFieldResponse{
			ID:             field.ID,
			Label:          field.Label,
			Type:           string(field.Type),
			Required:       field.Required,
			Options:        field.Options,
			OriginalHeader: field.OriginalHeader,
		})
	}
	return result
}

// participantIDFromComposite は複合 ID "{campaignId}_{participantId}" から
// 参加者識別子を取り出す。
func participantIDFromComposite(id, campaignID string) string {
	return strings.TrimPrefix(id, campaignID+"_")
}

// writeServiceError はユースケースのエラーを HTTP ステータスへ対応付ける。
// 想定内の検証エラーは 400、他人のキャンペーンや存在しない ID は 404、
// 状態遷移表にない遷移は 409、それ以外は 500。
func writeServiceError(logger *log.Logger, w http.ResponseWriter, err error) {
	var (
		validationErr *admindomain.ValidationError
		parseErr      *admindomain.ParseError
		duplicateErr  *admindomain.DuplicateIdentifierError
		missingErr    *admindomain.MissingIdentifierError
		transitionErr *admindomain.InvalidTransitionError
	)
	switch {
	case errors.Is(err, admindomain.ErrNotFound):
		common.WriteError(logger, w, http.StatusNotFound, "キャンペーンが見つかりません")
	case errors.As(err, &transitionErr):
		common.WriteError(logger, w, http.StatusConflict, err.Error())
	case errors.Is(err, admindomain.ErrEmptyRoster),
		errors.As(err, &validationErr),
		errors.As(err, &parseErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &missingErr):
		common.WriteError(logger, w, http.StatusBadRequest, err.Error())
	default:
		logger.Printf("admin campaign operation failed: %v", err)
		common.WriteError(logger, w, http.StatusInternalServerError, "処理に失敗しました")
	}
}

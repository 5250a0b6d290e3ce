package public

import (
	participantapp "github.com/formflow-pro/formflow-services/api/internal/participant/application"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

// formViewToResponse はフォーム描画モデルをレスポンス表現へ変換する。
func formViewToResponse(view *participantapp.FormView) publicFormResponse {
	fields := make([]publicFormFieldResponse, 0, len(view.Campaign.Fields))
	for _, field := range view.Campaign.Fields {
		fields = append(fields, publicFormFieldResponse{
			ID:             field.ID,
			Label:          field.Label,
			Type:           field.Type,
			Required:       field.Required,
			Options:        field.Options,
			OriginalHeader: field.OriginalHeader,
		})
	}
	return publicFormResponse{
		Campaign: publicCampaignResponse{
			ID:          view.Campaign.ID,
			Name:        view.Campaign.Name,
			Status:      view.Campaign.Status,
			Theme:       view.Campaign.Theme,
			Description: view.Campaign.Description,
			Fields:      fields,
			ClosedAt:    view.Campaign.ClosedAt,
		},
		Submission: submissionToResponse(view.Submission),
	}
}

// submissionToResponse は回答を参加者向けレスポンスへ変換する。
func submissionToResponse(submission participantdomain.Submission) publicSubmissionResponse {
	data := submission.Data
	if data == nil {
		data = map[string]string{}
	}
	return publicSubmissionResponse{
		Status:      string(submission.Status),
		Data:        data,
		SubmittedAt: submission.SubmittedAt,
		UpdatedAt:   submission.UpdatedAt,
	}
}

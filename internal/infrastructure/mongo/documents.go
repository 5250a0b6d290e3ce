package mongo

import (
	"time"

	adminapp "github.com/formflow-pro/formflow-services/api/internal/admin/application"
	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
	participantdomain "github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

// CampaignDocument は MongoDB 上のキャンペーンスキーマを Go 構造体として表現したもの。
// _id は UUID 文字列で、回答ドキュメントの複合 ID の前半を構成する。
type CampaignDocument struct {
	ID               string          `bson:"_id"`
	Name             string          `bson:"name"`
	PIN              string          `bson:"pin"`
	Status           string          `bson:"status"`
	Theme            string          `bson:"theme"`
	Fields           []FieldDocument `bson:"fields"`
	AdminID          string          `bson:"adminId"`
	Description      string          `bson:"description,omitempty"`
	ParticipantCount int             `bson:"participantCount"`
	SubmissionCount  int             `bson:"submissionCount"`
	CreatedAt        time.Time       `bson:"createdAt"`
	ClosedAt         *time.Time      `bson:"closedAt,omitempty"`
}

// FieldDocument はフォーム項目定義 1 つ分の埋め込みドキュメント。
// id と originalHeader はキャンペーン作成後は不変。
type FieldDocument struct {
	ID             string   `bson:"id"`
	Label          string   `bson:"label"`
	Type           string   `bson:"type"`
	Required       bool     `bson:"required"`
	Options        []string `bson:"options,omitempty"`
	OriginalHeader string   `bson:"originalHeader"`
}

// SubmissionDocument は回答のスキーマ。_id は "{campaignId}_{participantId}"。
// data のキーは項目定義の originalHeader。
type SubmissionDocument struct {
	ID           string            `bson:"_id"`
	CampaignID   string            `bson:"campaignId"`
	CampaignName string            `bson:"campaignName"`
	Data         map[string]string `bson:"data"`
	Status       string            `bson:"status"`
	SubmittedAt  *time.Time        `bson:"submittedAt,omitempty"`
	UpdatedAt    *time.Time        `bson:"updatedAt,omitempty"`
}

// mapCampaignDocument は Mongo ドキュメントを管理ドメインの集約へ復元する。
func mapCampaignDocument(doc CampaignDocument) admindomain.Campaign {
	fields := make([]admindomain.FieldDescriptor, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		fields = append(fields, admindomain.FieldDescriptor{
			ID:             field.ID,
			Label:          field.Label,
			Type:           admindomain.FieldType(field.Type),
			Required:       field.Required,
			Options:        append([]string(nil), field.Options...),
			OriginalHeader: field.OriginalHeader,
		})
	}
	return admindomain.Campaign{
		ID:               doc.ID,
		Name:             doc.Name,
		PIN:              admindomain.PIN(doc.PIN),
		Status:           admindomain.Status(doc.Status),
		Theme:            admindomain.Theme(doc.Theme),
		Fields:           fields,
		AdminID:          doc.AdminID,
		Description:      doc.Description,
		ParticipantCount: doc.ParticipantCount,
		SubmissionCount:  doc.SubmissionCount,
		CreatedAt:        doc.CreatedAt,
		ClosedAt:         doc.ClosedAt,
	}
}

// mapDomainCampaignToDocument は管理ドメインの集約を保存形式へ射影する。
func mapDomainCampaignToDocument(campaign *admindomain.Campaign) CampaignDocument {
	fields := make([]FieldDocument, 0, len(campaign.Fields))
	for _, field := range campaign.Fields {
		fields = append(fields, FieldDocument{
			ID:             field.ID,
			Label:          field.Label,
			Type:           string(field.Type),
			Required:       field.Required,
			Options:        append([]string(nil), field.Options...),
			OriginalHeader: field.OriginalHeader,
		})
	}
	return CampaignDocument{
		ID:               campaign.ID,
		Name:             campaign.Name,
		PIN:              campaign.PIN.String(),
		Status:           string(campaign.Status),
		Theme:            campaign.Theme.String(),
		Fields:           fields,
		AdminID:          campaign.AdminID,
		Description:      campaign.Description,
		ParticipantCount: campaign.ParticipantCount,
		SubmissionCount:  campaign.SubmissionCount,
		CreatedAt:        campaign.CreatedAt,
		ClosedAt:         campaign.ClosedAt,
	}
}

// mapCampaignDocumentToView は参加者向けの読み取りモデルへ変換する。
func mapCampaignDocumentToView(doc CampaignDocument) participantdomain.CampaignView {
	fields := make([]participantdomain.FormField, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		fields = append(fields, participantdomain.FormField{
			ID:             field.ID,
			Label:          field.Label,
			Type:           field.Type,
			Required:       field.Required,
			Options:        append([]string(nil), field.Options...),
			OriginalHeader: field.OriginalHeader,
		})
	}
	return participantdomain.CampaignView{
		ID:          doc.ID,
		Name:        doc.Name,
		PIN:         doc.PIN,
		Status:      doc.Status,
		Theme:       doc.Theme,
		Description: doc.Description,
		Fields:      fields,
		ClosedAt:    doc.ClosedAt,
	}
}

// mapSubmissionDocument は回答ドキュメントを参加者ドメインへ復元する。
func mapSubmissionDocument(doc SubmissionDocument) participantdomain.Submission {
	return participantdomain.Submission{
		ID:           doc.ID,
		CampaignID:   doc.CampaignID,
		CampaignName: doc.CampaignName,
		Data:         doc.Data,
		Status:       participantdomain.Status(doc.Status),
		SubmittedAt:  doc.SubmittedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// mapSubmissionDocumentToRecord は管理画面用の読み取りモデルへ変換する。
func mapSubmissionDocumentToRecord(doc SubmissionDocument) adminapp.SubmissionRecord {
	return adminapp.SubmissionRecord{
		ID:          doc.ID,
		Data:        doc.Data,
		Status:      doc.Status,
		SubmittedAt: doc.SubmittedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

type intakeService struct {
	campaigns   CampaignRepository
	submissions SubmissionRepository
	files       FileStore
}

// NewIntakeService は IntakeService を生成する。
func NewIntakeService(campaigns CampaignRepository, submissions SubmissionRepository, files FileStore) IntakeService {
	return &intakeService{campaigns: campaigns, submissions: submissions, files: files}
}

// Load はキャンペーンと複合 ID の回答を揃えて返す。どちらかが欠けていれば ErrNotFound。
func (s *intakeService) Load(ctx context.Context, campaignID, participantID string) (*FormView, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissions.FindByID(ctx, domain.CompositeID(campaignID, participantID))
	if err != nil {
		return nil, err
	}
	return &FormView{Campaign: *campaign, Submission: *submission}, nil
}

// Save はフォームの保存 1 回分を適用する。キャンペーンの終了状態は読み込み時
// ではなく保存時点で再確認する(セッション中に終了した場合を拾うため)。
// data は全置換で、状態遷移・タイムスタンプ・submissionCount の加算は
// 永続層が条件付き更新として原子的に処理する。
func (s *intakeService) Save(ctx context.Context, campaignID, participantID string, data map[string]string) (*domain.Submission, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Closed() {
		return nil, domain.ErrCampaignClosed
	}
	for _, field := range campaign.Fields {
		if field.Required && strings.TrimSpace(data[field.OriginalHeader]) == "" {
			return nil, &domain.RequiredFieldError{Label: field.Label}
		}
	}
	return s.submissions.Save(ctx, domain.CompositeID(campaignID, participantID), data)
}

// Upload は添付ファイルを保存して取得用 URL を返す。失敗はこの項目だけの
// エラーとして呼び出し側へ返り、フォーム本体の保存は妨げない。
func (s *intakeService) Upload(ctx context.Context, campaignID, participantID, fieldID, filename string, r io.Reader) (string, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return "", err
	}
	if campaign.Closed() {
		return "", domain.ErrCampaignClosed
	}

	var field *domain.FormField
	for i := range campaign.Fields {
		if campaign.Fields[i].ID == fieldID {
			field = &campaign.Fields[i]
			break
		}
	}
	if field == nil {
		return "", fmt.Errorf("項目 %q はこのフォームに存在しません", fieldID)
	}
	if field.Type != domain.FieldTypeFile {
		return "", fmt.Errorf("項目 %q はファイル項目ではありません", field.Label)
	}

	name := sanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("ファイル名が不正です")
	}

	storedPath := path.Join(campaignID, participantID, fieldID, name)
	return s.files.Put(ctx, storedPath, r)
}

// sanitizeFilename はパス区切りを落とし、ベース名だけを残す。
func sanitizeFilename(filename string) string {
	cleaned := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if cleaned == "." || cleaned == "/" || cleaned == ".." {
		return ""
	}
	return cleaned
}

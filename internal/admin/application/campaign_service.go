package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

type campaignService struct {
	repo        CampaignRepository
	submissions SubmissionRepository
	watcher     CampaignWatcher
}

// NewCampaignService は CampaignService を生成する。
func NewCampaignService(repo CampaignRepository, submissions SubmissionRepository, watcher CampaignWatcher) CampaignService {
	return &campaignService{repo: repo, submissions: submissions, watcher: watcher}
}

func (s *campaignService) List(ctx context.Context, adminID string) ([]admindomain.Campaign, error) {
	return s.repo.Find(ctx, adminID)
}

// Detail は所有者チェック込みの単一取得。他管理者のキャンペーンは存在しない扱いにする。
func (s *campaignService) Detail(ctx context.Context, id, adminID string) (*admindomain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.AdminID != adminID {
		return nil, admindomain.ErrNotFound
	}
	return campaign, nil
}

// Create は検証済みのキャンペーン草稿と名簿から、キャンペーン 1 件と
// 行数ぶんの回答ドキュメントを 1 トランザクションで作成する。
// 部分的な成功が観測されてはならない。
func (s *campaignService) Create(ctx context.Context, cmd CreateCampaignCommand) (*admindomain.Campaign, error) {
	name, err := admindomain.NewCampaignName(cmd.Name)
	if err != nil {
		return nil, err
	}
	pin, err := admindomain.NewPIN(cmd.PIN)
	if err != nil {
		return nil, err
	}
	theme, err := admindomain.NewTheme(cmd.Theme)
	if err != nil {
		return nil, err
	}

	roster := &admindomain.Roster{Headers: cmd.Headers, Rows: cmd.Rows}
	if len(roster.Rows) == 0 {
		return nil, admindomain.ErrEmptyRoster
	}
	if err := roster.ValidateIdentifier(cmd.IdentifierColumn); err != nil {
		return nil, err
	}

	fields, err := admindomain.BuildFields(cmd.Headers, cmd.FieldEdits)
	if err != nil {
		return nil, err
	}

	status := admindomain.StatusDraft
	if cmd.Launch {
		status = admindomain.StatusActive
	}

	campaign := &admindomain.Campaign{
		ID:               uuid.NewString(),
		Name:             name.String(),
		PIN:              pin,
		Status:           status,
		Theme:            theme,
		Fields:           fields,
		AdminID:          cmd.AdminID,
		Description:      cmd.Description,
		ParticipantCount: len(roster.Rows),
		SubmissionCount:  0,
		CreatedAt:        time.Now().UTC(),
	}

	identifiers := roster.IdentifierValues(cmd.IdentifierColumn)
	seeds := make([]SubmissionSeed, 0, len(roster.Rows))
	for i, row := range roster.Rows {
		data := make(map[string]string, len(row))
		for key, value := range row {
			data[key] = value
		}
		seeds = append(seeds, SubmissionSeed{ParticipantID: identifiers[i], Data: data})
	}

	if err := s.repo.CreateWithSubmissions(ctx, campaign, seeds); err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateSettings は名前・PIN・テーマ・説明のみを更新する。
// 項目定義は作成時に固定された正であり、ここでは触れない。
func (s *campaignService) UpdateSettings(ctx context.Context, id, adminID string, cmd UpdateCampaignCommand) (*admindomain.Campaign, error) {
	campaign, err := s.Detail(ctx, id, adminID)
	if err != nil {
		return nil, err
	}

	name, err := admindomain.NewCampaignName(cmd.Name)
	if err != nil {
		return nil, err
	}
	pin, err := admindomain.NewPIN(cmd.PIN)
	if err != nil {
		return nil, err
	}
	theme, err := admindomain.NewTheme(cmd.Theme)
	if err != nil {
		return nil, err
	}

	campaign.Name = name.String()
	campaign.PIN = pin
	campaign.Theme = theme
	campaign.Description = cmd.Description

	if err := s.repo.UpdateSettings(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Transition は状態遷移表に従ってライフサイクルを進め、永続化する。
func (s *campaignService) Transition(ctx context.Context, id, adminID string, event admindomain.Event) (*admindomain.Campaign, error) {
	campaign, err := s.Detail(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if err := campaign.Apply(event, time.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLifecycle(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete はキャンペーンと配下の全回答をひとつのバッチで削除する。
// バッチが失敗した場合はどちらも残ったままでなければならない。
func (s *campaignService) Delete(ctx context.Context, id, adminID string) error {
	if _, err := s.Detail(ctx, id, adminID); err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

func (s *campaignService) Watch(ctx context.Context, adminID string) (<-chan []admindomain.Campaign, error) {
	return s.watcher.Subscribe(ctx, adminID)
}

// Submissions はキャンペーンの回答一覧を状態フィルタ付きで返す。
func (s *campaignService) Submissions(ctx context.Context, id, adminID string, status string) (*admindomain.Campaign, []SubmissionRecord, error) {
	campaign, err := s.Detail(ctx, id, adminID)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.submissions.FindByCampaign(ctx, id, status)
	if err != nil {
		return nil, nil, err
	}
	return campaign, records, nil
}

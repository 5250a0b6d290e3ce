package application

import (
	"context"
	"io"
	"time"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

// CampaignRepository はキャンペーン集約の永続化ポート。
// 作成と削除はバッチ単位で全成功か全失敗のどちらかになる。
type CampaignRepository interface {
	Find(ctx context.Context, adminID string) ([]admindomain.Campaign, error)
	FindByID(ctx context.Context, id string) (*admindomain.Campaign, error)
	CreateWithSubmissions(ctx context.Context, campaign *admindomain.Campaign, seeds []SubmissionSeed) error
	UpdateLifecycle(ctx context.Context, campaign *admindomain.Campaign) error
	UpdateSettings(ctx context.Context, campaign *admindomain.Campaign) error
	DeleteCascade(ctx context.Context, id string) error
}

// SubmissionRepository は管理者向けの回答読み取りポート。
type SubmissionRepository interface {
	FindByCampaign(ctx context.Context, campaignID string, status string) ([]SubmissionRecord, error)
}

// CampaignWatcher は管理者のキャンペーン一覧をスナップショット列として購読する
// ポート。変更ストリームでもポーリングでも実装でき、購読の解除は ctx の
// キャンセルで行う。チャネルは購読終了時にクローズされる。
type CampaignWatcher interface {
	Subscribe(ctx context.Context, adminID string) (<-chan []admindomain.Campaign, error)
}

// SubmissionSeed は名簿 1 行から作る回答ドキュメントの種。
type SubmissionSeed struct {
	ParticipantID string
	Data          map[string]string
}

// SubmissionRecord は管理画面の一覧・集計・エクスポートで使う回答の読み取りモデル。
type SubmissionRecord struct {
	ID          string
	Data        map[string]string
	Status      string
	SubmittedAt *time.Time
	UpdatedAt   *time.Time
}

// CreateCampaignCommand はキャンペーン作成の入力一式。
// Headers と Rows は名簿取り込み結果をそのまま引き渡す。
type CreateCampaignCommand struct {
	AdminID          string
	Name             string
	PIN              string
	Theme            string
	Description      string
	IdentifierColumn string
	Headers          []string
	Rows             []map[string]string
	FieldEdits       []admindomain.FieldEdit
	Launch           bool
}

// UpdateCampaignCommand は作成後に編集できる項目のみを持つ。
// フォーム項目定義は作成時に固定され、ここからは変更できない。
type UpdateCampaignCommand struct {
	Name        string
	PIN         string
	Theme       string
	Description string
}

// CampaignService は管理者向けキャンペーンユースケース。
type CampaignService interface {
	List(ctx context.Context, adminID string) ([]admindomain.Campaign, error)
	Detail(ctx context.Context, id, adminID string) (*admindomain.Campaign, error)
	Create(ctx context.Context, cmd CreateCampaignCommand) (*admindomain.Campaign, error)
	UpdateSettings(ctx context.Context, id, adminID string, cmd UpdateCampaignCommand) (*admindomain.Campaign, error)
	Transition(ctx context.Context, id, adminID string, event admindomain.Event) (*admindomain.Campaign, error)
	Delete(ctx context.Context, id, adminID string) error
	Watch(ctx context.Context, adminID string) (<-chan []admindomain.Campaign, error)
	Submissions(ctx context.Context, id, adminID string, status string) (*admindomain.Campaign, []SubmissionRecord, error)
}

// RosterImporter は名簿ファイルのパースユースケース。
type RosterImporter interface {
	Parse(filename string, r io.Reader) (*admindomain.Roster, error)
}

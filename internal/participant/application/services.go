package application

import (
	"context"
	"io"

	"github.com/formflow-pro/formflow-services/api/internal/participant/domain"
)

// CampaignRepository は参加者コンテキストでのキャンペーン読み取りポート。
type CampaignRepository interface {
	FindByPIN(ctx context.Context, pin string) ([]domain.CampaignView, error)
	FindByID(ctx context.Context, id string) (*domain.CampaignView, error)
}

// SubmissionRepository は参加者自身の回答 1 件に対する読み書きポート。
// Save は状態遷移とカウンタ更新を含めて永続層側で原子的に行う。
type SubmissionRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, id string, data map[string]string) (*domain.Submission, error)
}

// FileStore はアップロードファイルの保存ポート。保存先パスを受け取り、
// 取得用 URL を返す。実体はローカルディスクでもオブジェクトストレージでもよい。
type FileStore interface {
	Put(ctx context.Context, path string, r io.Reader) (string, error)
}

// Identity は PIN サインインで解決された (参加者, キャンペーン) の組。
type Identity struct {
	ParticipantID string
	CampaignID    string
	CampaignName  string
}

// SignInService は PIN + 参加者識別子からの認証解決ユースケース。
type SignInService interface {
	Resolve(ctx context.Context, participantID, pin, campaignID string) (*Identity, error)
}

// FormView は参加者に提示するフォームの描画モデル。
type FormView struct {
	Campaign   domain.CampaignView
	Submission domain.Submission
}

// IntakeService は参加者フォームの読み込み・保存・添付アップロードのユースケース。
type IntakeService interface {
	Load(ctx context.Context, campaignID, participantID string) (*FormView, error)
	Save(ctx context.Context, campaignID, participantID string, data map[string]string) (*domain.Submission, error)
	Upload(ctx context.Context, campaignID, participantID, fieldID, filename string, r io.Reader) (string, error)
}

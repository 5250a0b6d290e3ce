package domain

import (
	"fmt"
	"time"
)

// Status は回答ドキュメントの完了状態。
// Pending → Submitted → Updated → Updated … と単調にしか進まない。
type Status string

const (
	StatusPending   Status = "Pending"
	StatusSubmitted Status = "Submitted"
	StatusUpdated   Status = "Updated"
)

// Submission は (キャンペーン, 参加者) ごとに 1 件だけ存在する回答集約。
// ドキュメント ID は CompositeID で決定的に導出され、直接参照と冪等な作成を支える。
type Submission struct {
	ID           string
	CampaignID   string
	CampaignName string
	Data         map[string]string
	Status       Status
	SubmittedAt  *time.Time
	UpdatedAt    *time.Time
}

// CompositeID は回答ドキュメントの ID を組み立てる。
// "{campaignId}_{participantId}" という形式は外部仕様であり変更してはならない。
func CompositeID(campaignID, participantID string) string {
	return fmt.Sprintf("%s_%s", campaignID, participantID)
}

// NextStatus は保存 1 回で進む先の状態を返す。
// 初回のみ Submitted、以降は何度保存しても Updated。
func (s *Submission) NextStatus() Status {
	if s.Status == StatusPending {
		return StatusSubmitted
	}
	return StatusUpdated
}

// Completed は提出済み(Submitted か Updated)かどうかを返す。
func (s *Submission) Completed() bool {
	return s.Status == StatusSubmitted || s.Status == StatusUpdated
}

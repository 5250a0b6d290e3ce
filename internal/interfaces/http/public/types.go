package public

import "time"

// publicSignInRequest は PIN サインインの入力。campaignId は通常空で、
// 同一 PIN のキャンペーンが複数一致したときの再試行でのみ指定される。
type publicSignInRequest struct {
	ParticipantID string `json:"participantId"`
	PIN           string `json:"pin"`
	CampaignID    string `json:"campaignId"`
}

// publicSignInResponse はサインイン成功時に返すアクセストークンと接続先。
type publicSignInResponse struct {
	Token         string `json:"token"`
	ParticipantID string `json:"participantId"`
	CampaignID    string `json:"campaignId"`
	CampaignName  string `json:"campaignName"`
}

// publicCampaignChoiceResponse は曖昧一致時に提示するキャンペーンの要約。
type publicCampaignChoiceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// publicFormFieldResponse はフォーム描画用の項目定義。
type publicFormFieldResponse struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Type           string   `json:"type"`
	Required       bool     `json:"required"`
	Options        []string `json:"options,omitempty"`
	OriginalHeader string   `json:"originalHeader"`
}

// publicCampaignResponse は参加者から見えるキャンペーン情報。PIN は含めない。
type publicCampaignResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Status      string                    `json:"status"`
	Theme       string                    `json:"theme"`
	Description string                    `json:"description,omitempty"`
	Fields      []publicFormFieldResponse `json:"fields"`
	ClosedAt    *time.Time                `json:"closedAt,omitempty"`
}

// publicSubmissionResponse は参加者自身の回答の状態。
type publicSubmissionResponse struct {
	Status      string            `json:"status"`
	Data        map[string]string `json:"data"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// publicFormResponse はフォーム画面の描画に必要な一式。
type publicFormResponse struct {
	Campaign   publicCampaignResponse   `json:"campaign"`
	Submission publicSubmissionResponse `json:"submission"`
}

// publicFormSaveRequest はフォーム保存の入力。data のキーは項目定義の originalHeader。
type publicFormSaveRequest struct {
	Data map[string]string `json:"data"`
}

// publicUploadResponse はアップロード済みファイルの取得先。
type publicUploadResponse struct {
	URL string `json:"url"`
}

package admin

import "time"

// adminFieldResponse はフォーム項目定義 1 つ分のレスポンス表現。
type adminFieldResponse struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Type           string   `json:"type"`
	Required       bool     `json:"required"`
	Options        []string `json:"options,omitempty"`
	OriginalHeader string   `json:"originalHeader"`
}

// adminCampaignResponse は管理画面向けのキャンペーン表現。
type adminCampaignResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	PIN              string               `json:"pin"`
	Status           string               `json:"status"`
	Theme            string               `json:"theme"`
	Description      string               `json:"description,omitempty"`
	Fields           []adminFieldResponse `json:"fields"`
	ParticipantCount int                  `json:"participantCount"`
	SubmissionCount  int                  `json:"submissionCount"`
	CreatedAt        time.Time            `json:"createdAt"`
	ClosedAt         *time.Time           `json:"closedAt,omitempty"`
}

// rosterPreviewResponse は名簿取り込みプレビューの結果。
// rows は作成リクエストへそのまま送り返される。
type rosterPreviewResponse struct {
	Headers  []string             `json:"headers"`
	RowCount int                  `json:"rowCount"`
	Fields   []adminFieldResponse `json:"fields"`
	Rows     []map[string]string  `json:"rows"`
}

// adminFieldEditRequest は項目定義への編集内容。originalHeader で対象を特定する。
type adminFieldEditRequest struct {
	OriginalHeader string   `json:"originalHeader"`
	Label          string   `json:"label"`
	Type           string   `json:"type"`
	Required       bool     `json:"required"`
	Options        []string `json:"options"`
}

// adminCampaignCreateRequest はキャンペーン作成リクエスト。
type adminCampaignCreateRequest struct {
	Name             string                  `json:"name"`
	PIN              string                  `json:"pin"`
	Theme            string                  `json:"theme"`
	Description      string                  `json:"description"`
	IdentifierColumn string                  `json:"identifierColumn"`
	Headers          []string                `json:"headers"`
	Rows             []map[string]string     `json:"rows"`
	Fields           []adminFieldEditRequest `json:"fields"`
	Launch           bool                    `json:"launch"`
}

// adminCampaignUpdateRequest は作成後に編集できる設定項目。
type adminCampaignUpdateRequest struct {
	Name        string `json:"name"`
	PIN         string `json:"pin"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
}

// adminSubmissionResponse は管理画面の回答一覧 1 行分。
type adminSubmissionResponse struct {
	ID            string            `json:"id"`
	ParticipantID string            `json:"participantId"`
	Data          map[string]string `json:"data"`
	Status        string            `json:"status"`
	SubmittedAt   *time.Time        `json:"submittedAt,omitempty"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
}

// adminSeriesPointResponse は提出数グラフの 1 バケット。
type adminSeriesPointResponse struct {
	Label string    `json:"label"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

// adminAnalyticsResponse は集計結果のレスポンス表現。
type adminAnalyticsResponse struct {
	Series            []adminSeriesPointResponse `json:"series"`
	Completed         int                        `json:"completed"`
	Pending           int                        `json:"pending"`
	ParticipationRate float64                    `json:"participationRate"`
}

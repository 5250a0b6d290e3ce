package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound はキャンペーンか回答のいずれかが存在しない場合。
	ErrNotFound = errors.New("対象が見つかりません")

	// ErrCampaignClosed は終了済みキャンペーンへの保存要求。
	// 読み込み時だけでなく保存時にも再チェックされる。
	ErrCampaignClosed = errors.New("このキャンペーンは終了しており、回答を受け付けていません")

	// ErrAuthFailure は PIN・識別子のいずれかが誤っている場合。
	// どちらが誤っていたかを漏らさないよう、利用者には常に同じ文言で返す。
	ErrAuthFailure = errors.New("ユーザーID または PIN が正しくありません")
)

// AmbiguousCampaignError は同じ PIN のキャンペーンが複数一致した場合。
// 呼び出し側は候補を提示して明示的なキャンペーン選択を求める。
type AmbiguousCampaignError struct {
	Candidates []CampaignChoice
}

// CampaignChoice は再試行時の選択肢として提示するキャンペーンの要約。
type CampaignChoice struct {
	ID   string
	Name string
}

func (e *AmbiguousCampaignError) Error() string {
	return "複数のキャンペーンが一致しました。キャンペーンを選択してください"
}

// RequiredFieldError は必須項目が未入力のまま保存された場合。
type RequiredFieldError struct {
	Label string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%q は必須項目です", e.Label)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster はパース自体は成功したがデータ行が 0 件だった場合。
	// ハードなパース失敗と区別し、呼び出し側が別ファイルの選択を促せるようにする。
	ErrEmptyRoster = errors.New("名簿ファイルにデータ行がありません")

	// ErrNotFound はキャンペーンまたは回答ドキュメントが存在しない場合。
	ErrNotFound = errors.New("対象が見つかりません")
)

// ValidationError は入力値の検証失敗。メッセージはそのまま利用者へ返せる。
// インフラ由来の想定外エラーと区別し、HTTP 境界で 400 へ対応付けるための型。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseError は名簿ファイルの構造的なパース失敗。
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("名簿ファイルの解析に失敗しました: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateIdentifierError は識別子列に重複値があった場合。重複した値を名指しする。
type DuplicateIdentifierError struct {
	Column string
	Value  string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("識別子列 %q に重複する値 %q があります", e.Column, e.Value)
}

// MissingIdentifierError は識別子列が未選択・不明・または空値を含む場合。
// Row は 1 始まりで、0 のときは列自体の問題を指す。
type MissingIdentifierError struct {
	Column string
	Row    int
}

func (e *MissingIdentifierError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("識別子列 %q の %d 行目が空です", e.Column, e.Row)
	}
	if e.Column == "" {
		return "識別子列を選択してください"
	}
	return fmt.Sprintf("識別子列 %q が名簿に存在しません", e.Column)
}

// InvalidTransitionError は状態遷移表にない遷移の要求。
type InvalidTransitionError struct {
	From  Status
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("状態 %s からイベント %s への遷移はできません", e.From, e.Event)
}

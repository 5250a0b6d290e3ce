package domain

import "time"

// Campaign は管理者が所有するキャンペーン集約。フォーム定義と参加者名簿の
// メタデータ、ライフサイクル状態、非正規化カウンタを 1 ドキュメントとして保持する。
type Campaign struct {
	ID               string
	Name             string
	PIN              PIN
	Status           Status
	Theme            Theme
	Fields           []FieldDescriptor
	AdminID          string
	Description      string
	ParticipantCount int
	SubmissionCount  int
	CreatedAt        time.Time
	ClosedAt         *time.Time
}

// Status はキャンペーンのライフサイクル状態。
type Status string

const (
	StatusDraft  Status = "Draft"
	StatusActive Status = "Active"
	StatusPaused Status = "Paused"
	StatusClosed Status = "Closed"
)

// Event はライフサイクル状態機械への入力イベント。
type Event string

const (
	EventLaunch      Event = "launch"
	EventClose       Event = "close"
	EventReopen      Event = "reopen"
	EventMoveToDraft Event = "draft"
)

// Apply は状態遷移表に従ってキャンペーンの状態を進める。
// 表にない遷移は InvalidTransitionError で拒否する。UI が正しいメニューしか
// 出さない前提には頼らず、サーバー側でも必ずガードする。
func (c *Campaign) Apply(event Event, now time.Time) error {
	switch event {
	case EventLaunch:
		if c.Status != StatusDraft {
			return &InvalidTransitionError{From: c.Status, Event: event}
		}
		c.Status = StatusActive
	case EventClose:
		if c.Status != StatusActive && c.Status != StatusPaused {
			return &InvalidTransitionError{From: c.Status, Event: event}
		}
		c.Status = StatusClosed
		closedAt := now.UTC()
		c.ClosedAt = &closedAt
	case EventReopen:
		if c.Status != StatusClosed {
			return &InvalidTransitionError{From: c.Status, Event: event}
		}
		c.Status = StatusActive
		c.ClosedAt = nil
	case EventMoveToDraft:
		if c.Status != StatusActive && c.Status != StatusPaused {
			return &InvalidTransitionError{From: c.Status, Event: event}
		}
		c.Status = StatusDraft
	default:
		return &InvalidTransitionError{From: c.Status, Event: event}
	}
	return nil
}

// IsClosed は参加者の保存を受け付けない状態かどうかを返す。
func (c *Campaign) IsClosed() bool {
	return c.Status == StatusClosed
}

// NewEvent は文字列イベント名を検証付きで変換する。
func NewEvent(value string) (Event, error) {
	switch Event(value) {
	case EventLaunch, EventClose, EventReopen, EventMoveToDraft:
		return Event(value), nil
	}
	return "", &InvalidTransitionError{Event: Event(value)}
}

package domain

import (
	"strings"
)

var allowedThemes = []Theme{"blue", "red", "purple", "orange", "green"}

// CampaignName は表示名。空白のみは認めない。
type CampaignName string

func NewCampaignName(value string) (CampaignName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", newValidationError("キャンペーン名は必須です")
	}
	return CampaignName(trimmed), nil
}

func (n CampaignName) String() string {
	return string(n)
}

// PIN は参加者がフォームに到達するための共有シークレット。数字のみ 4〜8 桁。
// グローバルに一意であることは保証しない。
type PIN string

func NewPIN(value string) (PIN, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 4 || len(trimmed) > 8 {
		return "", newValidationError("PIN は4〜8桁で入力してください")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", newValidationError("PIN は数字のみで入力してください")
		}
	}
	return PIN(trimmed), nil
}

func (p PIN) String() string {
	return string(p)
}

// Theme は表示用のカラータグ。挙動には影響しない。
type Theme string

func NewTheme(value string) (Theme, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "blue", nil
	}
	for _, allowed := range allowedThemes {
		if Theme(trimmed) == allowed {
			return allowed, nil
		}
	}
	return "", newValidationError("不正なテーマです: %s", trimmed)
}

func (t Theme) String() string {
	return string(t)
}

package domain

import "time"

// CampaignView は参加者側から見えるキャンペーンの読み取りモデル。
// 管理コンテキストの集約と違い、カウンタや所有者情報は持たない。
type CampaignView struct {
	ID          string
	Name        string
	PIN         string
	Status      string
	Theme       string
	Description string
	Fields      []FormField
	ClosedAt    *time.Time
}

// FieldTypeFile はアップロード入力になる項目種別。描画と添付保存の分岐に使う。
const FieldTypeFile = "File Upload"

// FormField はフォーム描画に必要な項目定義。
// OriginalHeader が回答データの読み書きキーで、ID はフォーム入力のキー。
type FormField struct {
	ID             string
	Label          string
	Type           string
	Required       bool
	Options        []string
	OriginalHeader string
}

// Closed は保存を受け付けない状態かどうか。保存時に必ず再判定する。
func (c *CampaignView) Closed() bool {
	return c.Status == "Closed"
}

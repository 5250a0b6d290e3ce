package domain

import (
	"regexp"
	"strings"
)

// FieldType はフォーム項目の入力種別。
type FieldType string

const (
	FieldText     FieldType = "Text"
	FieldEmail    FieldType = "Email"
	FieldPhone    FieldType = "Phone"
	FieldDropdown FieldType = "Dropdown"
	FieldDate     FieldType = "Date"
	FieldFile     FieldType = "File Upload"
	FieldLongText FieldType = "Long Text"
)

// NewFieldType は入力種別を検証付きで変換する。
func NewFieldType(value string) (FieldType, error) {
	switch FieldType(strings.TrimSpace(value)) {
	case FieldText, FieldEmail, FieldPhone, FieldDropdown, FieldDate, FieldFile, FieldLongText:
		return FieldType(strings.TrimSpace(value)), nil
	}
	return "", newValidationError("不正な項目種別です: %s", value)
}

// FieldDescriptor はフォーム項目 1 つ分の定義。
// ID と OriginalHeader はキャンペーンの生存期間を通じて不変で、
// Label や Type をいくら編集してもデータの読み書き先キーは変わらない。
type FieldDescriptor struct {
	ID             string
	Label          string
	Type           FieldType
	Required       bool
	Options        []string
	OriginalHeader string
}

// FieldEdit は項目定義への編集内容。対象は OriginalHeader で特定し、
// ID や OriginalHeader 自体は編集対象にならない。
type FieldEdit struct {
	OriginalHeader string
	Label          string
	Type           FieldType
	Required       bool
	Options        []string
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SlugifyHeader は列見出しからフォーム入力キーを導出する。
// 非英数字をアンダースコアへ置換してから小文字化する。同一入力は常に同一出力。
func SlugifyHeader(header string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(header, "_"))
}

// ProposeFields は取り込んだ列見出しから項目定義の初期案を作る。
// 全項目 Text・任意入力で、ラベルは見出しそのまま。
func ProposeFields(headers []string) []FieldDescriptor {
	fields := make([]FieldDescriptor, 0, len(headers))
	for _, header := range headers {
		fields = append(fields, FieldDescriptor{
			ID:             SlugifyHeader(header),
			Label:          header,
			Type:           FieldText,
			Required:       false,
			OriginalHeader: header,
		})
	}
	return fields
}

// BuildFields は初期案に管理者の編集を適用した項目定義列を返す。
// ID と OriginalHeader は必ずサーバー側で見出しから導出し、
// クライアントが送ってきた値は一切信用しない。
func BuildFields(headers []string, edits []FieldEdit) ([]FieldDescriptor, error) {
	known := make(map[string]int, len(headers))
	for i, header := range headers {
		known[header] = i
	}

	fields := ProposeFields(headers)
	for _, edit := range edits {
		index, ok := known[edit.OriginalHeader]
		if !ok {
			return nil, newValidationError("未知の列見出しです: %s", edit.OriginalHeader)
		}
		field := &fields[index]
		if label := strings.TrimSpace(edit.Label); label != "" {
			field.Label = label
		}
		if edit.Type != "" {
			fieldType, err := NewFieldType(string(edit.Type))
			if err != nil {
				return nil, err
			}
			field.Type = fieldType
		}
		field.Required = edit.Required
		if len(edit.Options) > 0 {
			field.Options = append([]string(nil), edit.Options...)
		}
	}
	return fields, nil
}

// FieldByID は ID で項目定義を引く。
func FieldByID(fields []FieldDescriptor, id string) (FieldDescriptor, bool) {
	for _, field := range fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

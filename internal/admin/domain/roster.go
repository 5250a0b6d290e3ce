package domain

import "strings"

// Roster は取り込んだ参加者名簿。ヘッダー行と、見出し→生文字列のマップで
// 表現した行の列。行単位の型変換はここでは行わない(提出時に行う)。
type Roster struct {
	Headers []string
	Rows    []map[string]string
}

// ValidateIdentifier は参加者識別子として選ばれた列を検証する。
//   - 列がヘッダーに存在すること
//   - 全行で値が空でないこと
//   - 値が互いに重複しないこと
// 重複があれば DuplicateIdentifierError で重複値を報告する。
func (r *Roster) ValidateIdentifier(column string) error {
	column = strings.TrimSpace(column)
	if column == "" {
		return &MissingIdentifierError{}
	}

	found := false
	for _, header := range r.Headers {
		if header == column {
			found = true
			break
		}
	}
	if !found {
		return &MissingIdentifierError{Column: column}
	}

	seen := make(map[string]struct{}, len(r.Rows))
	for i, row := range r.Rows {
		value := strings.TrimSpace(row[column])
		if value == "" {
			return &MissingIdentifierError{Column: column, Row: i + 1}
		}
		if _, dup := seen[value]; dup {
			return &DuplicateIdentifierError{Column: column, Value: value}
		}
		seen[value] = struct{}{}
	}
	return nil
}

// IdentifierValues は識別子列の値を行順で返す。検証済みであることが前提。
func (r *Roster) IdentifierValues(column string) []string {
	values := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		values = append(values, strings.TrimSpace(row[column]))
	}
	return values
}

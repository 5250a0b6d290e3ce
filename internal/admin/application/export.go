package application

import (
	"encoding/csv"
	"io"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

// WriteSubmissionsCSV はキャンペーンの回答一覧を CSV として書き出す。
// 列は項目定義順のラベル、セルは data[originalHeader] の値。
// ラベルを付け替えてもデータの参照キーが変わらないことがここでも効いてくる。
func WriteSubmissionsCSV(w io.Writer, fields []admindomain.FieldDescriptor, records []SubmissionRecord) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(fields))
	for _, field := range fields {
		header = append(header, field.Label)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	row := make([]string, len(fields))
	for _, record := range records {
		for i, field := range fields {
			row[i] = record.Data[field.OriginalHeader]
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

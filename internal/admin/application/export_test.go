package application

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

func TestWriteSubmissionsCSV(t *testing.T) {
	fields := []admindomain.FieldDescriptor{
		{ID: "employee_id", Label: "社員番号", OriginalHeader: "Employee ID"},
		{ID: "email", Label: "会社メール", OriginalHeader: "Email"},
	}
	records := []SubmissionRecord{
		{Data: map[string]string{"Employee ID": "EMP001", "Email": "sato@example.co.jp"}},
		{Data: map[string]string{"Employee ID": "EMP002"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSubmissionsCSV(&buf, fields, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"社員番号", "会社メール"}, rows[0], "列は編集後のラベル")
	assert.Equal(t, []string{"EMP001", "sato@example.co.jp"}, rows[1])
	assert.Equal(t, []string{"EMP002", ""}, rows[2], "欠損値は空セル")
}

func TestWriteSubmissionsCSVNoRecords(t *testing.T) {
	fields := []admindomain.FieldDescriptor{{ID: "a", Label: "A", OriginalHeader: "A"}}

	var buf bytes.Buffer
	require.NoError(t, WriteSubmissionsCSV(&buf, fields, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "ヘッダー行だけは必ず出る")
}

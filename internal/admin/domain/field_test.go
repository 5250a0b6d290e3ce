package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugifyHeader(t *testing.T) {
	cases := map[string]string{
		"Email Address":  "email_address",
		"Employee ID":    "employee_id",
		"氏名":             "__",
		"Phone#2":        "phone_2",
		"  Spaces  ":     "__spaces__",
		"alreadyclean":   "alreadyclean",
		"MixedCASE-2024": "mixedcase_2024",
	}
	for input, want := range cases {
		assert.Equal(t, want, SlugifyHeader(input), "input=%q", input)
	}

	t.Run("同一入力は常に同一出力", func(t *testing.T) {
		assert.Equal(t, SlugifyHeader("Email Address"), SlugifyHeader("Email Address"))
	})
}

func TestProposeFields(t *testing.T) {
	fields := ProposeFields([]string{"社員番号", "Email Address"})
	require.Len(t, fields, 2)

	assert.Equal(t, "email_address", fields[1].ID)
	assert.Equal(t, "Email Address", fields[1].Label)
	assert.Equal(t, "Email Address", fields[1].OriginalHeader)
	assert.Equal(t, FieldText, fields[1].Type)
	assert.False(t, fields[1].Required)
}

func TestBuildFields(t *testing.T) {
	headers := []string{"Employee ID", "Email Address", "Department"}

	t.Run("編集はラベル・種別・必須・選択肢だけに効く", func(t *testing.T) {
		fields, err := BuildFields(headers, []FieldEdit{
			{
				OriginalHeader: "Email Address",
				Label:          "会社メール",
				Type:           FieldEmail,
				Required:       true,
			},
			{
				OriginalHeader: "Department",
				Type:           FieldDropdown,
				Options:        []string{"営業", "開発"},
			},
		})
		require.NoError(t, err)
		require.Len(t, fields, 3)

		email := fields[1]
		assert.Equal(t, "email_address", email.ID)
		assert.Equal(t, "Email Address", email.OriginalHeader)
		assert.Equal(t, "会社メール", email.Label)
		assert.Equal(t, FieldEmail, email.Type)
		assert.True(t, email.Required)

		dept := fields[2]
		assert.Equal(t, FieldDropdown, dept.Type)
		assert.Equal(t, []string{"営業", "開発"}, dept.Options)
		assert.Equal(t, "Department", dept.Label)
	})

	t.Run("未知の列見出しは拒否", func(t *testing.T) {
		_, err := BuildFields(headers, []FieldEdit{{OriginalHeader: "Unknown"}})
		require.Error(t, err)
	})

	t.Run("不正な種別は拒否", func(t *testing.T) {
		_, err := BuildFields(headers, []FieldEdit{{OriginalHeader: "Department", Type: "Checkbox"}})
		require.Error(t, err)
	})

	t.Run("空ラベルの編集は元のラベルを保つ", func(t *testing.T) {
		fields, err := BuildFields(headers, []FieldEdit{{OriginalHeader: "Employee ID", Label: "  "}})
		require.NoError(t, err)
		assert.Equal(t, "Employee ID", fields[0].Label)
	})
}

func TestFieldByID(t *testing.T) {
	fields := ProposeFields([]string{"Employee ID", "Email Address"})

	field, ok := FieldByID(fields, "email_address")
	require.True(t, ok)
	assert.Equal(t, "Email Address", field.OriginalHeader)

	_, ok = FieldByID(fields, "nope")
	assert.False(t, ok)
}

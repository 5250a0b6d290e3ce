package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

func TestRosterImporterParseCSV(t *testing.T) {
	importer := NewRosterImporter()

	t.Run("ヘッダーのトリムと空行の読み飛ばし", func(t *testing.T) {
		input := "社員番号 ,氏名\nEMP001,佐藤\n,\nEMP002,鈴木\n"
		roster, err := importer.Parse("roster.csv", strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"社員番号", "氏名"}, roster.Headers)
		require.Len(t, roster.Rows, 2)
		assert.Equal(t, "EMP001", roster.Rows[0]["社員番号"])
		assert.Equal(t, "鈴木", roster.Rows[1]["氏名"])
	})

	t.Run("拡張子不明は CSV として扱う", func(t *testing.T) {
		roster, err := importer.Parse("roster.txt", strings.NewReader("a,b\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, roster.Headers)
	})

	t.Run("ヘッダーのみは ErrEmptyRoster", func(t *testing.T) {
		_, err := importer.Parse("roster.csv", strings.NewReader("社員番号,氏名\n"))
		require.ErrorIs(t, err, admindomain.ErrEmptyRoster)
	})

	t.Run("空入力は ErrEmptyRoster", func(t *testing.T) {
		_, err := importer.Parse("roster.csv", strings.NewReader(""))
		require.ErrorIs(t, err, admindomain.ErrEmptyRoster)
	})

	t.Run("壊れた CSV は ParseError", func(t *testing.T) {
		input := "a,\"b\nc,d"
		_, err := importer.Parse("roster.csv", strings.NewReader(input))
		var parseErr *admindomain.ParseError
		require.True(t, errors.As(err, &parseErr))
	})
}

func TestRosterImporterParseWorkbook(t *testing.T) {
	importer := NewRosterImporter()

	book := excelize.NewFile()
	sheet := book.GetSheetList()[0]
	require.NoError(t, book.SetSheetRow(sheet, "A1", &[]any{"社員番号", "氏名", "Email"}))
	require.NoError(t, book.SetSheetRow(sheet, "A2", &[]any{"EMP001", "佐藤", "sato@example.co.jp"}))
	require.NoError(t, book.SetSheetRow(sheet, "A3", &[]any{"EMP002"}))

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	roster, err := importer.Parse("roster.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"社員番号", "氏名", "Email"}, roster.Headers)
	require.Len(t, roster.Rows, 2)
	assert.Equal(t, "sato@example.co.jp", roster.Rows[0]["Email"])

	// 短い行は残りの列を空文字で埋める
	assert.Equal(t, "EMP002", roster.Rows[1]["社員番号"])
	assert.Equal(t, "", roster.Rows[1]["氏名"])
	assert.Equal(t, "", roster.Rows[1]["Email"])
}

func TestRosterImporterParseWorkbookBroken(t *testing.T) {
	importer := NewRosterImporter()
	_, err := importer.Parse("roster.xlsx", strings.NewReader("これは xlsx ではない"))
	var parseErr *admindomain.ParseError
	require.True(t, errors.As(err, &parseErr))
}

package application

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	admindomain "github.com/formflow-pro/formflow-services/api/internal/admin/domain"
)

// rosterImporter は CSV / XLSX の名簿ファイルをパースする。
// ここでは構造だけを見る。値の妥当性検証は提出時の責務であり取り込み時には行わない。
type rosterImporter struct{}

// NewRosterImporter は RosterImporter を生成する。
func NewRosterImporter() RosterImporter {
	return &rosterImporter{}
}

// Parse は拡張子でフォーマットを判別し、ヘッダー行 + データ行を Roster に変換する。
// パーサーが構造エラーを報告したら ParseError、データ行が 0 件なら ErrEmptyRoster。
func (s *rosterImporter) Parse(filename string, r io.Reader) (*admindomain.Roster, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseWorkbook(r)
	default:
		return parseCSV(r)
	}
}

func parseCSV(r io.Reader) (*admindomain.Roster, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &admindomain.ParseError{Err: err}
	}
	return buildRoster(records)
}

func parseWorkbook(r io.Reader) (*admindomain.Roster, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &admindomain.ParseError{Err: err}
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, admindomain.ErrEmptyRoster
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, &admindomain.ParseError{Err: err}
	}
	return buildRoster(records)
}

// buildRoster は表形式の生データを Roster へ詰め替える。
// 全列が空の行は PapaParse の skipEmptyLines と同じ扱いで読み飛ばす。
func buildRoster(records [][]string) (*admindomain.Roster, error) {
	if len(records) == 0 {
		return nil, admindomain.ErrEmptyRoster
	}

	headers := make([]string, 0, len(records[0]))
	for _, header := range records[0] {
		headers = append(headers, strings.TrimSpace(header))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if emptyRecord(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, admindomain.ErrEmptyRoster
	}
	return &admindomain.Roster{Headers: headers, Rows: rows}, nil
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// excelHeaderScanRows mirrors the CSV sniffer: bank workbooks put report
// metadata above the table, but never more than a few rows of it.
const excelHeaderScanRows = 5

// ExcelParser extracts transactions from XLSX workbooks.
type ExcelParser struct {
	opts Options
}

// NewExcelParser returns a parser for Excel payloads.
func NewExcelParser(opts Options) *ExcelParser {
	return &ExcelParser{opts: opts}
}

// Parse walks every sheet in the workbook and aggregates whatever
// transactions each one yields. Sheets without a usable table contribute
// nothing rather than failing the file.
func (p *ExcelParser) Parse(data []byte) (transaction.ExtractResult, error) {
	var result transaction.ExtractResult

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		result.Merge(p.parseSheet(rows))
	}

	return result, nil
}

func (p *ExcelParser) parseSheet(rows [][]string) transaction.ExtractResult {
	var result transaction.ExtractResult

	headerIdx, mapping := findExcelHeader(rows)
	start := headerIdx + 1
	if headerIdx < 0 {
		start = 0
	}

	for i := start; i < len(rows); i++ {
		rowNum := i + 1
		result.TotalRows++

		rowMapping := mapping
		if headerIdx < 0 || !mapping.HasEssentials() {
			rowMapping = ScanRow(rows[i])
		}
		if !rowMapping.HasEssentials() {
			continue
		}

		rec, skip := parseRow(rows[i], rowNum, rowMapping)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		if rec != nil {
			result.Records = append(result.Records, *rec)
		}
	}

	return result
}

// findExcelHeader scans the leading rows for one whose keyword mapping
// resolves both essentials. Returns -1 when nothing qualifies.
func findExcelHeader(rows [][]string) (int, ColumnMapping) {
	limit := excelHeaderScanRows
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		mapping := MapColumns(rows[i])
		if mapping.HasEssentials() {
			return i, mapping
		}
	}
	return -1, emptyMapping()
}

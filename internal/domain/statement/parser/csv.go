package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/statement/sniffer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// statementRow is the gocsv fast path for well-behaved UTF-8 exports with
// recognizable headers. gocsv matches by header name, so each field lists
// its common spellings.
type statementRow struct {
	Date  string `csv:"date"`
	Data  string `csv:"data"`
	DataU string `csv:"дата"`

	Time  string `csv:"time"`
	TimeU string `csv:"час"`

	Amount  string `csv:"amount"`
	Suma    string `csv:"сума"`
	SumaRu  string `csv:"сумма"`
	SumaT   string `csv:"suma"`
	Value   string `csv:"value"`

	Debit   string `csv:"debit"`
	DebitU  string `csv:"дебет"`
	Credit  string `csv:"credit"`
	CreditU string `csv:"кредит"`

	Description  string `csv:"description"`
	Opys         string `csv:"опис"`
	Pryznachenia string `csv:"призначення"`
	Details      string `csv:"details"`

	Category  string `csv:"category"`
	CategoryU string `csv:"категорія"`
	Type      string `csv:"type"`
	TypeU     string `csv:"тип"`
}

// CSVParser handles delimiter-separated statement exports.
type CSVParser struct {
	opts Options
}

// NewCSVParser returns a parser for CSV/TSV payloads.
func NewCSVParser(opts Options) *CSVParser {
	return &CSVParser{opts: opts}
}

// Parse extracts transactions from a raw CSV payload. A struct-based fast
// path covers clean UTF-8 comma files; everything else goes through
// encoding and delimiter detection.
func (p *CSVParser) Parse(data []byte) (transaction.ExtractResult, error) {
	if layout, ok := bankLayouts[p.opts.Bank]; ok {
		return parseWithLayout(data, layout)
	}

	if utf8.Valid(data) {
		if result, ok := p.parseStructured(data); ok {
			return result, nil
		}
	}

	return p.parseDetected(data)
}

// parseStructured is the gocsv path. It only reports success when at
// least one record came out; header mismatches then fall through to
// detection instead of failing the file.
func (p *CSVParser) parseStructured(data []byte) (transaction.ExtractResult, bool) {
	var result transaction.ExtractResult

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})

	var rows []statementRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return result, false
	}

	result.TotalRows = len(rows)
	for i, row := range rows {
		rowNum := i + 2 // 1-indexed plus header
		rec, skip := p.processStructuredRow(row, rowNum)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		if rec != nil {
			result.Records = append(result.Records, *rec)
		}
	}

	return result, len(result.Records) > 0
}

func (p *CSVParser) processStructuredRow(row statementRow, rowNum int) (*transaction.Record, *transaction.SkipReason) {
	dateStr := coalesce(row.Date, row.Data, row.DataU)
	if dateStr == "" {
		return nil, nil
	}

	date, err := normalizer.ParseFlexibleDate(dateStr)
	if err != nil {
		return nil, &transaction.SkipReason{
			Row:     rowNum,
			Field:   "date",
			Message: fmt.Sprintf("invalid date %q", dateStr),
		}
	}

	amountStr := coalesce(row.Amount, row.Suma, row.SumaRu, row.SumaT, row.Value)
	txType := typeFromCell(coalesce(row.Type, row.TypeU))
	if amountStr == "" {
		if debit := coalesce(row.Debit, row.DebitU); debit != "" {
			amountStr, txType = debit, transaction.TypeExpense
		} else if credit := coalesce(row.Credit, row.CreditU); credit != "" {
			amountStr, txType = credit, transaction.TypeIncome
		} else {
			return nil, &transaction.SkipReason{
				Row:     rowNum,
				Field:   "amount",
				Message: "no amount found",
			}
		}
	}

	cents, err := normalizer.ParseAmount(amountStr)
	if err != nil || cents == 0 {
		return nil, &transaction.SkipReason{
			Row:     rowNum,
			Field:   "amount",
			Message: fmt.Sprintf("invalid amount %q", amountStr),
		}
	}
	if txType == "" {
		if cents < 0 {
			txType = transaction.TypeExpense
		} else {
			txType = transaction.TypeIncome
		}
	}
	if cents < 0 {
		cents = -cents
	}

	rec := &transaction.Record{
		Date:        date,
		AmountCents: cents,
		Description: coalesce(row.Description, row.Opys, row.Pryznachenia, row.Details),
		Type:        txType,
	}
	if clock, ok := normalizer.FindClockTime(coalesce(row.Time, row.TimeU)); ok {
		rec.Time = clock
	}
	if category := coalesce(row.Category, row.CategoryU); category != "" {
		rec.Category = transaction.NewLabel(category)
	}
	return rec, nil
}

// parseDetected is the brute-force path: sniff encoding, delimiter and
// header, then map columns by keyword or per-row heuristics.
func (p *CSVParser) parseDetected(data []byte) (transaction.ExtractResult, error) {
	var result transaction.ExtractResult

	config, err := sniffer.Detect(data)
	if err != nil {
		return result, fmt.Errorf("detect csv shape: %w", err)
	}

	var mapping ColumnMapping
	haveHeader := config.HeaderRow >= 0
	if haveHeader {
		mapping = MapColumns(config.Headers)
	}

	for i, row := range config.DataRows() {
		rowNum := i + 1
		if haveHeader {
			rowNum = config.HeaderRow + i + 2
		}
		result.TotalRows++

		rowMapping := mapping
		if !haveHeader || !mapping.HasEssentials() {
			rowMapping = ScanRow(row)
		}
		if !rowMapping.HasEssentials() {
			continue
		}

		rec, skip := parseRow(row, rowNum, rowMapping)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		if rec != nil {
			result.Records = append(result.Records, *rec)
		}
	}

	return result, nil
}

// coalesce returns the first non-empty value.
func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

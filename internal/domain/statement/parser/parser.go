// Package parser extracts transaction records from bank statement exports:
// CSV/TSV, Excel workbooks, PDF statements and plain text dumps. Every
// parser is tolerant by construction: a bad row becomes a skip reason,
// never an aborted file.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// ErrUnsupportedFormat is returned when no parser can handle the payload.
var ErrUnsupportedFormat = errors.New("unsupported statement format")

// Bank identifies a known fixed statement layout. Empty means autodetect.
type Bank string

const (
	BankUnknown    Bank = ""
	BankPrivatBank Bank = "privatbank"
	BankMonobank   Bank = "monobank"
)

// Options tunes parsing across all formats.
type Options struct {
	Bank Bank // known layout short-circuits column detection
}

// parseRow turns one tabular row into a Record using a resolved column
// mapping. A nil Record with a nil SkipReason means "silently skip":
// separator rows and repeated headers are not worth reporting.
func parseRow(row []string, rowNum int, mapping ColumnMapping) (*transaction.Record, *transaction.SkipReason) {
	getValue := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	raw := strings.Join(row, " | ")

	dateStr := getValue(mapping.Date)
	if dateStr == "" {
		return nil, nil
	}

	// Combined "date and time" cells fail exact parsing; fall back to
	// locating the date inside the cell.
	date, err := normalizer.ParseFlexibleDate(dateStr)
	if err != nil {
		found, ok := normalizer.FindDate(dateStr)
		if !ok {
			return nil, &transaction.SkipReason{
				Row:     rowNum,
				Field:   "date",
				Message: fmt.Sprintf("invalid date %q", dateStr),
				Raw:     raw,
			}
		}
		date = found
	}

	amountStr, txType, skip := resolveAmount(getValue, mapping)
	if skip != nil {
		skip.Row = rowNum
		skip.Raw = raw
		return nil, skip
	}

	cents, err := normalizer.ParseAmount(amountStr)
	if err != nil {
		return nil, &transaction.SkipReason{
			Row:     rowNum,
			Field:   "amount",
			Message: fmt.Sprintf("invalid amount %q", amountStr),
			Raw:     raw,
		}
	}
	if cents == 0 {
		return nil, &transaction.SkipReason{
			Row:     rowNum,
			Field:   "amount",
			Message: "zero amount",
			Raw:     raw,
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

	desc := getValue(mapping.Description)

	rec := &transaction.Record{
		Date:        date,
		AmountCents: cents,
		Description: desc,
		Type:        txType,
		Raw:         raw,
	}
	if clock, ok := normalizer.FindClockTime(getValue(mapping.Time)); ok {
		rec.Time = clock
	} else if clock, ok := normalizer.FindClockTime(dateStr); ok {
		rec.Time = clock
	}
	if category := getValue(mapping.Category); category != "" {
		rec.Category = transaction.NewLabel(category)
	}
	return rec, nil
}

// resolveAmount picks the amount cell: a single signed amount column when
// mapped, otherwise the debit/credit pair. The returned type is empty when
// the sign of the single column should decide it.
func resolveAmount(getValue func(int) string, mapping ColumnMapping) (string, transaction.Type, *transaction.SkipReason) {
	if mapping.Amount >= 0 {
		if s := getValue(mapping.Amount); s != "" {
			return s, typeFromCell(getValue(mapping.Type)), nil
		}
	}

	debit := getValue(mapping.Debit)
	credit := getValue(mapping.Credit)
	switch {
	case debit != "":
		return debit, transaction.TypeExpense, nil
	case credit != "":
		return credit, transaction.TypeIncome, nil
	}

	return "", "", &transaction.SkipReason{
		Field:   "amount",
		Message: "no amount found",
	}
}

// typeFromCell interprets an explicit type/direction column.
func typeFromCell(cell string) transaction.Type {
	cell = strings.ToLower(strings.TrimSpace(cell))
	switch {
	case cell == "":
		return ""
	case strings.Contains(cell, "дохід"), strings.Contains(cell, "надходження"),
		strings.Contains(cell, "income"), strings.Contains(cell, "credit"),
		strings.Contains(cell, "поповнення"):
		return transaction.TypeIncome
	case strings.Contains(cell, "витрат"), strings.Contains(cell, "списання"),
		strings.Contains(cell, "expense"), strings.Contains(cell, "debit"):
		return transaction.TypeExpense
	}
	return ""
}

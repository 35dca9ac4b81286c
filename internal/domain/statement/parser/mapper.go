package parser

import (
	"strings"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
)

// ColumnMapping holds resolved column indices; -1 means the field has no
// column in this table.
type ColumnMapping struct {
	Date        int
	Time        int
	Amount      int
	Debit       int
	Credit      int
	Description int
	Category    int
	Type        int
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{
		Date: -1, Time: -1, Amount: -1, Debit: -1,
		Credit: -1, Description: -1, Category: -1, Type: -1,
	}
}

// HasEssentials reports whether the mapping can produce records at all:
// a date column plus some amount source.
func (m ColumnMapping) HasEssentials() bool {
	return m.Date >= 0 && (m.Amount >= 0 || m.Debit >= 0 || m.Credit >= 0)
}

// Header keywords per field, matched case-insensitively as substrings.
// Ukrainian first, then transliterations, then English; ordering inside a
// list does not matter, ordering BETWEEN fields does (see mapColumns).
var fieldKeywords = []struct {
	field    string
	keywords []string
}{
	{"date", []string{"дата", "data", "date"}},
	{"time", []string{"час", "chas", "time"}},
	{"amount", []string{"сума", "сумма", "suma", "amount", "value", "сума у валюті картки"}},
	{"debit", []string{"дебет", "витрата", "debit", "withdrawal", "списання"}},
	{"credit", []string{"кредит", "надходження", "credit", "deposit", "поповнення"}},
	{"description", []string{"опис", "призначення", "деталі", "опис операції", "opys", "description", "details", "merchant", "counterparty", "контрагент"}},
	{"category", []string{"категорія", "категория", "category", "mcc"}},
	{"type", []string{"тип", "tip", "type", "операція"}},
}

// MapColumns resolves header cells to fields. Cells are visited left to
// right and fields are claimed first-found-first-served: once a field has
// a column, later headers that also match it are ignored, and a claimed
// cell is never reused for another field. Duplicate headers therefore
// resolve to their leftmost occurrence.
func MapColumns(headers []string) ColumnMapping {
	mapping := emptyMapping()

	set := func(field string, idx int) bool {
		switch field {
		case "date":
			if mapping.Date < 0 {
				mapping.Date = idx
				return true
			}
		case "time":
			if mapping.Time < 0 {
				mapping.Time = idx
				return true
			}
		case "amount":
			if mapping.Amount < 0 {
				mapping.Amount = idx
				return true
			}
		case "debit":
			if mapping.Debit < 0 {
				mapping.Debit = idx
				return true
			}
		case "credit":
			if mapping.Credit < 0 {
				mapping.Credit = idx
				return true
			}
		case "description":
			if mapping.Description < 0 {
				mapping.Description = idx
				return true
			}
		case "category":
			if mapping.Category < 0 {
				mapping.Category = idx
				return true
			}
		case "type":
			if mapping.Type < 0 {
				mapping.Type = idx
				return true
			}
		}
		return false
	}

	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			continue
		}
		for _, fk := range fieldKeywords {
			if !containsAny(h, fk.keywords) {
				continue
			}
			if set(fk.field, i) {
				break
			}
		}
	}

	return mapping
}

// ScanRow builds a mapping from data content when no header row exists:
// the first date-parsing cell is the date, the last amount-parsing cell is
// the amount (trailing numbers in bank exports are amounts, leading ones
// are references), and the longest remaining cell is the description.
func ScanRow(row []string) ColumnMapping {
	mapping := emptyMapping()

	for i, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if mapping.Date < 0 {
			if _, err := normalizer.ParseFlexibleDate(cell); err == nil {
				mapping.Date = i
				continue
			}
		}
		if mapping.Time < 0 {
			if clock, ok := normalizer.FindClockTime(cell); ok && clock == cell {
				mapping.Time = i
				continue
			}
		}
		if _, err := normalizer.ParseAmount(cell); err == nil {
			mapping.Amount = i // keep overwriting: last numeric cell wins
		}
	}

	longest := 0
	for i, cell := range row {
		if i == mapping.Date || i == mapping.Time || i == mapping.Amount {
			continue
		}
		if n := len(strings.TrimSpace(cell)); n > longest {
			longest = n
			mapping.Description = i
		}
	}

	return mapping
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

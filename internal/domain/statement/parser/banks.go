package parser

import (
	"fmt"
	"strings"

	"github.com/okushnir/kopiyka/internal/domain/statement/sniffer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// bankLayout is a known fixed export shape. Column indices refer to the
// row after the layout's own header line.
type bankLayout struct {
	mapping     ColumnMapping
	headerToken string // lowercase marker identifying the header row
}

// Known Ukrainian bank exports. PrivatBank ships semicolon CP1251 with a
// leading report title; Monobank ships comma UTF-8 with a combined
// date-and-time first column.
var bankLayouts = map[Bank]bankLayout{
	BankPrivatBank: {
		headerToken: "дата",
		mapping: ColumnMapping{
			Date: 0, Time: 1, Category: 2, Description: 4, Amount: 5,
			Debit: -1, Credit: -1, Type: -1,
		},
	},
	BankMonobank: {
		headerToken: "дата",
		mapping: ColumnMapping{
			Date: 0, Description: 1, Category: 2, Amount: 3,
			Time: -1, Debit: -1, Credit: -1, Type: -1,
		},
	},
}

// parseWithLayout applies a fixed column layout. Encoding and delimiter
// still go through detection; only column resolution is pinned.
func parseWithLayout(data []byte, layout bankLayout) (transaction.ExtractResult, error) {
	var result transaction.ExtractResult

	config, err := sniffer.Detect(data)
	if err != nil {
		return result, fmt.Errorf("detect csv shape: %w", err)
	}

	started := false
	for i, row := range config.Rows {
		if !started {
			if isLayoutHeader(row, layout.headerToken) {
				started = true
			}
			continue
		}
		result.TotalRows++

		rec, skip := parseRow(row, i+1, layout.mapping)
		if skip != nil {
			result.Skipped = append(result.Skipped, *skip)
			continue
		}
		if rec != nil {
			result.Records = append(result.Records, *rec)
		}
	}

	if !started {
		return result, fmt.Errorf("%w: bank header row not found", ErrUnsupportedFormat)
	}
	return result, nil
}

func isLayoutHeader(row []string, token string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(row[0]), token)
}

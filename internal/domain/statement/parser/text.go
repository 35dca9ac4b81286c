package parser

import (
	"strings"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// incomeMarkers flag lines describing money coming in. Anything else on a
// statement line is treated as spending.
var incomeMarkers = []string{
	"надходження", "зарахування", "поповнення", "повернення",
	"зарплата", "income", "credit", "deposit", "refund",
}

// TextParser extracts transactions from free-form statement text: plain
// text exports, PDF page text and OCR output. It is line-oriented: a line
// yields a record only when a date and an amount co-occur on it.
type TextParser struct {
	opts Options
}

// NewTextParser returns a parser for unstructured statement text.
func NewTextParser(opts Options) *TextParser {
	return &TextParser{opts: opts}
}

// Parse scans text line by line. Lines missing a date or an amount are
// ignored silently; they are prose, headers or balances, not failures.
func (p *TextParser) Parse(text string) transaction.ExtractResult {
	var result transaction.ExtractResult

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result.TotalRows++

		rec, ok := parseTextLine(line)
		if !ok {
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result
}

func parseTextLine(line string) (transaction.Record, bool) {
	date, ok := normalizer.FindDate(line)
	if !ok {
		return transaction.Record{}, false
	}

	// Dates come off first so a trailing "19.06.2025" cannot pass for 19.06.
	cents, signed, ok := normalizer.FindSignedAmount(normalizer.StripDates(line))
	if !ok {
		return transaction.Record{}, false
	}

	magnitude := cents
	if magnitude < 0 {
		magnitude = -magnitude
	}

	rec := transaction.Record{
		Date:        date,
		AmountCents: magnitude,
		Description: textLineDescription(line),
		Type:        textLineType(line, cents, signed),
		Raw:         line,
	}
	if clock, found := normalizer.FindClockTime(line); found {
		rec.Time = clock
	}
	return rec, true
}

// textLineDescription is the line with dates, times and amounts removed.
func textLineDescription(line string) string {
	desc := normalizer.StripDates(line)
	desc = normalizer.StripAmounts(desc)
	desc = strings.Trim(desc, " \t-–|,;:")
	return strings.Join(strings.Fields(desc), " ")
}

// textLineType reads the direction from the line: an explicit income
// keyword marks income; failing that, a printed sign on the amount
// decides. Unsigned lines with no keyword are spending.
func textLineType(line string, cents int64, signed bool) transaction.Type {
	lower := strings.ToLower(line)
	for _, marker := range incomeMarkers {
		if strings.Contains(lower, marker) {
			return transaction.TypeIncome
		}
	}
	if signed && cents > 0 {
		return transaction.TypeIncome
	}
	return transaction.TypeExpense
}

package transaction

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Sanity bounds applied by Clean. Records outside them are dropped, not
// errored: rejection is routine filtering for adversarial input.
const (
	// MaxAmountCents caps a single transaction at 1,000,000 currency units.
	MaxAmountCents = 100_000_000

	// RetentionYears drops records older than this many years.
	RetentionYears = 5

	// MaxDescriptionLen truncates free-text descriptions.
	MaxDescriptionLen = 200

	// DefaultDescription fills records whose description is empty.
	DefaultDescription = "Transaction"
)

// Clean drops records failing sanity bounds, fills defaults and sorts the
// rest by date descending. It is idempotent: Clean(Clean(x)) == Clean(x).
// The categorizer may be nil; records then fall back to the default labels.
func Clean(ctx context.Context, records []Record, categorizer Categorizer, now time.Time) []Record {
	cutoff := now.AddDate(-RetentionYears, 0, 0)

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Date.IsZero() || rec.Date.Before(cutoff) {
			continue
		}
		if rec.AmountCents <= 0 || rec.AmountCents > MaxAmountCents {
			continue
		}
		if rec.Type != TypeIncome {
			rec.Type = TypeExpense
		}

		rec.Description = strings.TrimSpace(rec.Description)
		if rec.Description == "" {
			rec.Description = DefaultDescription
		}
		rec.Description = truncate(rec.Description, MaxDescriptionLen)

		if rec.Category.IsZero() {
			rec.Category = resolveCategory(ctx, categorizer, rec.Description, rec.Type)
		}

		kept = append(kept, rec)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.After(kept[j].Date)
	})

	return kept
}

func resolveCategory(ctx context.Context, categorizer Categorizer, description string, txType Type) Category {
	if categorizer != nil {
		cat, err := categorizer.Categorize(ctx, description, txType)
		if err == nil && !cat.IsZero() {
			return cat
		}
	}
	if txType == TypeIncome {
		return NewLabel(DefaultIncomeCategory)
	}
	return NewLabel(DefaultExpenseCategory)
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}

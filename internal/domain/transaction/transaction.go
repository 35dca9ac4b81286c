// Package transaction defines the canonical extraction output: normalized
// transaction records, skip reasons for rejected rows, and the validation
// pass every extraction strategy feeds into.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type marks the direction of money movement.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Default category labels used when the categorizer yields nothing.
const (
	DefaultExpenseCategory = "Other"
	DefaultIncomeCategory  = "Income"
)

// CategoryInfo is the structured form a categorizer may return.
type CategoryInfo struct {
	ID   uuid.UUID
	Name string
	Icon string
}

// Category is a tagged variant: either a plain label or a structured
// category resolved by the categorizer. Exactly one side is set; the
// zero value means "uncategorized".
type Category struct {
	Label      string
	Structured *CategoryInfo
}

// NewLabel wraps a plain category label.
func NewLabel(label string) Category {
	return Category{Label: label}
}

// NewStructured wraps a structured categorizer result.
func NewStructured(info CategoryInfo) Category {
	return Category{Structured: &info}
}

// IsZero reports whether no category has been assigned.
func (c Category) IsZero() bool {
	return c.Structured == nil && c.Label == ""
}

// String returns the display name regardless of variant.
func (c Category) String() string {
	if c.Structured != nil {
		return c.Structured.Name
	}
	return c.Label
}

// Record is one normalized transaction extracted from a statement or receipt.
// AmountCents is always a non-negative magnitude; direction lives in Type.
type Record struct {
	Date        time.Time
	Time        string // optional HH:MM:SS, independent of Date
	AmountCents int64
	Description string
	Type        Type
	Category    Category
	Raw         string // original row/line, kept for audit, never re-parsed
}

// SkipReason explains why a single row/line/page was dropped during
// extraction. Skips are routine for noisy input and never abort a parse.
type SkipReason struct {
	Row     int
	Field   string
	Message string
	Raw     string
}

// ExtractResult aggregates one extraction run: records kept plus
// per-row skip reasons, so callers can report counts without exceptions
// driving control flow.
type ExtractResult struct {
	Records   []Record
	Skipped   []SkipReason
	TotalRows int
}

// Merge appends another result into r, renumbering nothing; row numbers
// stay meaningful within their source table/page.
func (r *ExtractResult) Merge(other ExtractResult) {
	r.Records = append(r.Records, other.Records...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.TotalRows += other.TotalRows
}

// Categorizer assigns a spending category to a transaction description.
// Implementations are injected; the core never constructs one itself.
type Categorizer interface {
	Categorize(ctx context.Context, description string, txType Type) (Category, error)
}

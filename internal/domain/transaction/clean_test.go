package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cleanNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type stubCategorizer struct {
	category Category
	err      error
}

func (s *stubCategorizer) Categorize(_ context.Context, _ string, _ Type) (Category, error) {
	return s.category, s.err
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    Record
		kept     bool
		expected Record
	}{
		{
			name:  "valid expense kept",
			input: Record{Date: cleanNow.AddDate(0, -1, 0), AmountCents: 10047, Description: "АТБ-Маркет"},
			kept:  true,
			expected: Record{
				Date:        cleanNow.AddDate(0, -1, 0),
				AmountCents: 10047,
				Description: "АТБ-Маркет",
				Type:        TypeExpense,
				Category:    NewLabel(DefaultExpenseCategory),
			},
		},
		{
			name:  "zero date dropped",
			input: Record{AmountCents: 10047, Description: "no date"},
		},
		{
			name:  "stale date dropped",
			input: Record{Date: cleanNow.AddDate(-6, 0, 0), AmountCents: 10047, Description: "old"},
		},
		{
			name:  "zero amount dropped",
			input: Record{Date: cleanNow, AmountCents: 0, Description: "free"},
		},
		{
			name:  "negative amount dropped",
			input: Record{Date: cleanNow, AmountCents: -500, Description: "refund"},
		},
		{
			name:  "oversized amount dropped",
			input: Record{Date: cleanNow, AmountCents: MaxAmountCents + 1, Description: "typo"},
		},
		{
			name:  "empty description defaulted",
			input: Record{Date: cleanNow, AmountCents: 500, Description: "   "},
			kept:  true,
			expected: Record{
				Date:        cleanNow,
				AmountCents: 500,
				Description: DefaultDescription,
				Type:        TypeExpense,
				Category:    NewLabel(DefaultExpenseCategory),
			},
		},
		{
			name:  "income keeps its type and default category",
			input: Record{Date: cleanNow, AmountCents: 500, Description: "зарплата", Type: TypeIncome},
			kept:  true,
			expected: Record{
				Date:        cleanNow,
				AmountCents: 500,
				Description: "зарплата",
				Type:        TypeIncome,
				Category:    NewLabel(DefaultIncomeCategory),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(context.Background(), []Record{tt.input}, nil, cleanNow)
			if !tt.kept {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected, got[0])
		})
	}
}

func TestCleanTruncatesDescription(t *testing.T) {
	long := gofakeit.LetterN(uint(MaxDescriptionLen * 2))
	got := Clean(context.Background(), []Record{
		{Date: cleanNow, AmountCents: 100, Description: long},
	}, nil, cleanNow)

	require.Len(t, got, 1)
	assert.Len(t, []rune(got[0].Description), MaxDescriptionLen)
}

func TestCleanSortsByDateDescending(t *testing.T) {
	records := []Record{
		{Date: cleanNow.AddDate(0, 0, -3), AmountCents: 100, Description: "a"},
		{Date: cleanNow.AddDate(0, 0, -1), AmountCents: 100, Description: "b"},
		{Date: cleanNow.AddDate(0, 0, -2), AmountCents: 100, Description: "c"},
	}

	got := Clean(context.Background(), records, nil, cleanNow)

	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Description)
	assert.Equal(t, "c", got[1].Description)
	assert.Equal(t, "a", got[2].Description)
}

func TestCleanUsesCategorizer(t *testing.T) {
	cat := &stubCategorizer{category: NewLabel("Groceries")}
	got := Clean(context.Background(), []Record{
		{Date: cleanNow, AmountCents: 2450, Description: "сільпо"},
	}, cat, cleanNow)

	require.Len(t, got, 1)
	assert.Equal(t, "Groceries", got[0].Category.String())
}

func TestCleanCategorizerErrorFallsBack(t *testing.T) {
	cat := &stubCategorizer{err: assert.AnError}
	got := Clean(context.Background(), []Record{
		{Date: cleanNow, AmountCents: 2450, Description: "сільпо"},
	}, cat, cleanNow)

	require.Len(t, got, 1)
	assert.Equal(t, DefaultExpenseCategory, got[0].Category.String())
}

func TestCleanPreservesAssignedCategory(t *testing.T) {
	cat := &stubCategorizer{category: NewLabel("Groceries")}
	got := Clean(context.Background(), []Record{
		{Date: cleanNow, AmountCents: 100, Description: "x", Category: NewLabel("Transport")},
	}, cat, cleanNow)

	require.Len(t, got, 1)
	assert.Equal(t, "Transport", got[0].Category.String())
}

func TestCleanIdempotent(t *testing.T) {
	gofakeit.Seed(42)
	records := make([]Record, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, Record{
			Date:        gofakeit.DateRange(cleanNow.AddDate(-7, 0, 0), cleanNow),
			AmountCents: int64(gofakeit.Number(-1000, 200_000_000)),
			Description: gofakeit.Sentence(3),
			Type:        Type(gofakeit.RandomString([]string{"expense", "income", ""})),
		})
	}

	once := Clean(context.Background(), records, nil, cleanNow)
	twice := Clean(context.Background(), once, nil, cleanNow)
	assert.Equal(t, once, twice)
}

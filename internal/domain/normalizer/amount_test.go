package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "plain decimal", input: "100.47", expected: 10047},
		{name: "comma decimal", input: "100,47", expected: 10047},
		{name: "currency suffix", input: "100.47 грн", expected: 10047},
		{name: "hryvnia sign", input: "₴250.00", expected: 25000},
		{name: "thousands with spaces", input: "1 234,56", expected: 123456},
		{name: "thousands with periods", input: "1.234,56", expected: 123456},
		{name: "negative", input: "-45.00", expected: -4500},
		{name: "parenthesized negative", input: "(45.00)", expected: -4500},
		{name: "integer", input: "120", expected: 12000},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cents)
		})
	}
}

func TestFindAmount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int64
		found    bool
	}{
		{
			name:     "currency suffixed amount",
			line:     "СУМА 100.47 грн",
			expected: 10047,
			found:    true,
		},
		{
			name:     "last amount wins over article code",
			line:     "4820024700016 Молоко 2.5% 32.50",
			expected: 3250,
			found:    true,
		},
		{
			name:     "last amount wins over leading number",
			line:     "12.00 items subtotal 45.90",
			expected: 4590,
			found:    true,
		},
		{
			name:     "split tail fallback",
			line:     "СУМА 100 47",
			expected: 10047,
			found:    true,
		},
		{
			name:  "amount above sanity window rejected",
			line:  "картка 5168 7450 1234 5678.00",
			found: false,
		},
		{
			name:  "no amount",
			line:  "дякуємо за покупку",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, ok := FindAmount(tt.line)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, cents)
			}
		})
	}
}

func TestFindSignedAmount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int64
		signed   bool
		found    bool
	}{
		{
			name:     "explicit plus",
			line:     "Переказ від Василя +2500.00",
			expected: 250000,
			signed:   true,
			found:    true,
		},
		{
			name:     "explicit minus",
			line:     "Сільпо Харків -150.50",
			expected: -15050,
			signed:   true,
			found:    true,
		},
		{
			name:     "unsigned amount",
			line:     "АТБ-Маркет 100.47 грн",
			expected: 10047,
			signed:   false,
			found:    true,
		},
		{
			name:     "split tail carries no sign",
			line:     "СУМА 100 47",
			expected: 10047,
			signed:   false,
			found:    true,
		},
		{
			name:  "no amount",
			line:  "дякуємо за покупку",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, signed, ok := FindSignedAmount(tt.line)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, cents)
				assert.Equal(t, tt.signed, signed)
			}
		})
	}
}

func TestFindAmountInText(t *testing.T) {
	text := "Хліб 24.50\nМолоко 32.00\nСУМА 56.50"
	cents, ok := FindAmountInText(text)
	require.True(t, ok)
	assert.Equal(t, int64(5650), cents)
}

func TestStripAmounts(t *testing.T) {
	assert.NotContains(t, StripAmounts("Молоко 32.00 грн"), "32.00")
}

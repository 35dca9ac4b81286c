package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "latin lookalikes inside cyrillic word",
			input:    "мaгaзин",
			expected: "магазин",
		},
		{
			name:     "english word untouched",
			input:    "market",
			expected: "market",
		},
		{
			name:     "split decimal with currency rejoined",
			input:    "100 47 грн",
			expected: "100.47 грн",
		},
		{
			name:     "trailing split decimal rejoined",
			input:    "Хліб 24 50",
			expected: "Хліб 24.50",
		},
		{
			name:     "multiplication sign unified",
			input:    "2 × 24,30",
			expected: "2 x 24,30",
		},
		{
			name:     "asterisk multiplication unified",
			input:    "1.000*24.30",
			expected: "1.000 x 24.30",
		},
		{
			name:     "junk characters dropped and spaces collapsed",
			input:    "Сума:\t  100.47 ₴",
			expected: "Сума: 100.47 ₴",
		},
		{
			name:     "line structure preserved",
			input:    "Хліб  24.50\nМолоко  32.00",
			expected: "Хліб 24.50\nМолоко 32.00",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"мaгaзин АТБ 100 47 грн",
		"2 × 24,30 = 48.60",
		"СУМА 100 47",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFixConfusionsLeavesMixedLatinAlone(t *testing.T) {
	// Majority-Latin tokens must not be rewritten even when they contain
	// mappable characters.
	assert.Equal(t, "payment", fixConfusions("payment"))
	assert.Equal(t, "iPhone", fixConfusions("iPhone"))
}

func BenchmarkNormalize(b *testing.B) {
	line := "АТБ-Мaркет кaса 12 чек 0456\nХліб укрaїнський 24 50\n2 × 32,00 = 64.00\nСУМА 100 47 грн"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Normalize(line)
	}
}

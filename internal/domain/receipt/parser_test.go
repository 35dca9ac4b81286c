package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypicalReceipt(t *testing.T) {
	text := "АТБ-Маркет\n" +
		"м. Київ вул. Хрещатик 1\n" +
		"19.06.2025 14:32\n" +
		"Хліб український 24.50\n" +
		"Молоко 2.5% 32.00\n" +
		"СУМА 56.50\n" +
		"КАРТКА 56.50\n" +
		"РЕШТА 0.00\n" +
		"ДЯКУЄМО ЗА ПОКУПКУ"

	result := Parse(text)

	assert.Equal(t, "АТБ", result.StoreName)
	assert.Equal(t, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, "14:32", result.Time)
	assert.Equal(t, int64(5650), result.TotalCents)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Хліб український", result.Items[0].Name)
	assert.Equal(t, int64(2450), result.Items[0].PriceCents)
	assert.Equal(t, "Groceries", result.Items[0].Category)
	assert.Equal(t, int64(3200), result.Items[1].PriceCents)
}

func TestParseItemQuantityDefaultsToOne(t *testing.T) {
	result := Parse("Хліб український 24.50\nСУМА 24.50")

	require.Len(t, result.Items, 1)
	assert.InDelta(t, 1.0, result.Items[0].Quantity, 0.001)
}

func TestParseLargestTotalWins(t *testing.T) {
	text := "Хліб 24.50\nСУМА 100.47\nВСЬОГО 50.00"

	result := Parse(text)
	assert.Equal(t, int64(10047), result.TotalCents)
}

func TestParseQuantityBeatsPrintedTotal(t *testing.T) {
	text := "Сік яблучний\n1.000 x 24.30 = 99.99\nСУМА 24.30"

	result := Parse(text)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(2430), result.Items[0].PriceCents)
	assert.InDelta(t, 1.0, result.Items[0].Quantity, 0.001)
	assert.Equal(t, "Сік яблучний", result.Items[0].Name)
}

func TestParseQuantityMultiplies(t *testing.T) {
	text := "Пиво світле\n2 x 32,00\nСУМА 64.00"

	result := Parse(text)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(6400), result.Items[0].PriceCents)
	assert.InDelta(t, 2.0, result.Items[0].Quantity, 0.001)
}

func TestParseNameFromNeighborLine(t *testing.T) {
	text := "Ковбаса краківська\n145.90\nСУМА 145.90"

	result := Parse(text)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Ковбаса краківська", result.Items[0].Name)
	assert.Equal(t, int64(14590), result.Items[0].PriceCents)
}

func TestParseStoplistExcluded(t *testing.T) {
	text := "Хліб 24.50\nСУМА 24.50\nГОТІВКА 100.00\nРЕШТА 75.50\nПДВ 4.08"

	result := Parse(text)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(2450), result.TotalCents)
}

func TestParseSyntheticItem(t *testing.T) {
	text := "СУМА 150.00"

	result := Parse(text)

	assert.Equal(t, int64(15000), result.TotalCents)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Store purchase", result.Items[0].Name)
	assert.Equal(t, int64(15000), result.Items[0].PriceCents)
}

func TestParseItemSumFallback(t *testing.T) {
	text := "Хліб 24.50\nМолоко 32.00"

	result := Parse(text)
	assert.Equal(t, int64(5650), result.TotalCents)
}

func TestParseEmptyText(t *testing.T) {
	result := Parse("")
	assert.Zero(t, result.TotalCents)
	assert.Empty(t, result.Items)
}

func TestDetectStore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"exact match", "АТБ-Маркет\nчек 123", "АТБ"},
		{"latin alias", "SILPO LLC\nreceipt", "Сільпо"},
		{"fuzzy one edit", "СІЛЬП0 МАРКЕТ\nчек", "Сільпо"},
		{"below header window", "а\nб\nв\nг\nд\nАТБ", ""},
		{"unknown", "МАГАЗИН БУДМАТЕРІАЛИ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectStore(tt.text))
		})
	}
}

func TestCategorizeItem(t *testing.T) {
	assert.Equal(t, "Groceries", CategorizeItem("Хліб український"))
	assert.Equal(t, "Alcohol", CategorizeItem("Пиво світле 0.5л"))
	assert.Equal(t, "Household", CategorizeItem("Шампунь 400мл"))
	assert.Equal(t, "Other", CategorizeItem("Щось незрозуміле"))
}

func TestScoreAndSelectBest(t *testing.T) {
	rich := ParseResult{
		StoreName:  "АТБ",
		TotalCents: 5650,
		Items:      []Item{{Name: "Хліб", PriceCents: 2450}, {Name: "Молоко", PriceCents: 3200}},
		RawText:    "довгий розпізнаний текст",
	}
	poor := ParseResult{TotalCents: 5650}

	assert.Greater(t, Score(rich), Score(poor))

	best, ok := SelectBest([]ParseResult{poor, rich})
	require.True(t, ok)
	assert.Equal(t, "АТБ", best.StoreName)

	_, ok = SelectBest(nil)
	assert.False(t, ok)
}

func TestSelectBestTieKeepsFirst(t *testing.T) {
	a := ParseResult{TotalCents: 100, StoreName: "АТБ"}
	b := ParseResult{TotalCents: 200, StoreName: "Фора"}

	best, ok := SelectBest([]ParseResult{a, b})
	require.True(t, ok)
	assert.Equal(t, "АТБ", best.StoreName)
}

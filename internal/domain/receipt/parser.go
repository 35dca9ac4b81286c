// Package receipt parses OCR text of Ukrainian store receipts into a
// structured purchase: store, date, line items and total.
package receipt

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
)

// totalKeywords mark the line carrying the receipt total. OCR-garbled
// spellings survive normalization often enough to list separately.
var totalKeywords = []string{
	"сума", "сума чеку", "всього", "вього", "разом", "до сплати",
	"до оплати", "сплачено", "суna", "cума", "сyма", "total",
}

// stoplist marks lines that carry amounts but are never purchases:
// payment mechanics, taxes, change and receipt boilerplate.
var stoplist = []string{
	"решта", "здача", "пдв", "податок", "готівка", "готівкою",
	"картка", "карткою", "безготівков", "оплата", "баланс",
	"чек", "касир", "каса", "зміна", "дякуємо", "ласкаво",
	"знижка", "бонус", "фіскальний", "акцизний", "тел.", "іпн",
	"єдрпоу", "терминал", "термінал", "rrn", "авторизац",
}

// Item is one purchased position on a receipt.
type Item struct {
	Name       string
	PriceCents int64
	Quantity   float64 // 1 when the receipt did not print one
	Category   string
}

// ParseResult is a structured receipt. TotalCents is 0 when no total
// could be established at all.
type ParseResult struct {
	StoreName  string
	Date       time.Time
	Time       string
	TotalCents int64
	Items      []Item
	RawText    string
}

// quantityRe matches "1.000 x 24.30" style lines after normalization has
// unified multiplication signs.
var quantityRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?) x (\d+(?:[.,]\d+)?)`)

// Parse extracts a structured purchase from normalized receipt text.
// It never fails: the worst outcome is an empty result the caller scores
// as useless.
func Parse(text string) ParseResult {
	result := ParseResult{RawText: text}
	lines := strings.Split(text, "\n")

	if date, ok := normalizer.FindDate(text); ok {
		result.Date = date
	}
	if clock, ok := normalizer.FindClockTime(text); ok {
		result.Time = clock
	}
	result.StoreName = DetectStore(text)

	var totalCandidate int64
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		if isTotalLine(lower) {
			// Several lines may claim to be the total; the largest
			// amount wins, totals are never smaller than their parts.
			if cents, ok := normalizer.FindAmount(trimmed); ok && cents > totalCandidate {
				totalCandidate = cents
			}
			continue
		}
		if onStoplist(lower) {
			continue
		}

		if item, ok := parseItemLine(lines, i); ok {
			item.Category = CategorizeItem(item.Name)
			result.Items = append(result.Items, item)
		}
	}

	result.TotalCents = resolveTotal(totalCandidate, result.Items, text)

	if len(result.Items) == 0 && result.TotalCents > 0 {
		name := result.StoreName
		if name == "" {
			name = "Store purchase"
		}
		result.Items = []Item{{Name: name, PriceCents: result.TotalCents, Quantity: 1, Category: CategorizeItem(name)}}
	}

	return result
}

// parseItemLine extracts one item from the line at idx. A quantity
// expression beats the printed line total: OCR mangles printed sums far
// more often than the compact "qty x unit" pair.
func parseItemLine(lines []string, idx int) (Item, bool) {
	line := strings.TrimSpace(lines[idx])

	var item Item
	if m := quantityRe.FindStringSubmatch(line); m != nil {
		qty, qtyErr := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		unit, unitErr := normalizer.ParseAmount(m[2])
		if qtyErr == nil && unitErr == nil && unit > 0 {
			computed := decimal.NewFromInt(unit).Mul(qty).Round(0).IntPart()
			if computed >= normalizer.MinAmountCents && computed <= normalizer.MaxLineAmountCents {
				item.PriceCents = computed
				item.Quantity, _ = qty.Float64()
			}
		}
	}

	if item.PriceCents == 0 {
		// Dates come off first so "19.06.2025" cannot pass for 19.06.
		cents, ok := normalizer.FindAmount(normalizer.StripDates(line))
		if !ok {
			return Item{}, false
		}
		item.PriceCents = cents
		item.Quantity = 1
	}

	item.Name = itemName(lines, idx)
	if item.Name == "" {
		return Item{}, false
	}
	return item, true
}

// itemName takes the text left on the amount line, or searches up to
// three neighboring lines when OCR split the name from the price.
func itemName(lines []string, idx int) string {
	if name := cleanItemName(lines[idx]); name != "" {
		return name
	}

	for offset := 1; offset <= 3; offset++ {
		for _, j := range []int{idx - offset, idx + offset} {
			if j < 0 || j >= len(lines) {
				continue
			}
			candidate := strings.TrimSpace(lines[j])
			if _, hasAmount := normalizer.FindAmount(candidate); hasAmount {
				continue
			}
			if onStoplist(strings.ToLower(candidate)) || isTotalLine(strings.ToLower(candidate)) {
				continue
			}
			if name := cleanItemName(candidate); name != "" {
				return name
			}
		}
	}
	return ""
}

// cleanItemName strips amounts, quantities and junk from a candidate name
// and rejects leftovers too short to mean anything.
func cleanItemName(line string) string {
	s := quantityRe.ReplaceAllString(line, "")
	s = normalizer.StripAmounts(s)
	s = normalizer.StripDates(s)
	s = strings.Trim(s, " \t-=*.,:;#№/")
	s = strings.Join(strings.Fields(s), " ")

	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 3 {
		return ""
	}
	return s
}

// resolveTotal picks the receipt total: a keyword line first, then the
// sum of parsed items, then the largest amount anywhere in the text.
func resolveTotal(keywordTotal int64, items []Item, text string) int64 {
	if keywordTotal > 0 {
		return keywordTotal
	}

	var sum int64
	for _, item := range items {
		sum += item.PriceCents
	}
	if sum > 0 {
		return sum
	}

	if cents, ok := normalizer.FindAmountInText(text); ok {
		return cents
	}
	return 0
}

func isTotalLine(lower string) bool {
	for _, kw := range totalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func onStoplist(lower string) bool {
	for _, kw := range stoplist {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

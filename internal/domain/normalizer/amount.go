package normalizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Sanity window for single-line amounts. Matches outside it are article
// codes, card numbers or OCR noise, not prices.
const (
	MinAmountCents     = 1
	MaxLineAmountCents = 5_000_000 // 50,000 currency units
)

var (
	// Most specific first: currency-suffixed decimal, then a bare
	// two-decimal number, then the last-resort "integer + 2-digit tail"
	// produced when OCR drops the decimal point.
	currencyAmountRe = regexp.MustCompile(`(?i)([-+]?\d[\d .]*[.,]\d{2}) *(?:грн|uah|₴)`)
	decimalAmountRe  = regexp.MustCompile(`([-+]?\d[\d ]*[.,]\d{2})\b`)
	splitTailRe      = regexp.MustCompile(`(\d+) +(\d{2})\b`)
)

// ParseAmount converts a raw amount string to signed cents. Accepts both
// comma and period decimal separators and space/period thousands grouping.
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	for _, sym := range []string{"₴", "$", "€", "грн", "uah", "UAH"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)

	negative := strings.HasPrefix(s, "-") || strings.HasPrefix(s, "(")
	s = strings.Trim(s, "()")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "+")

	// "1.234,56" and "1 234,56" both mean comma-decimal; a lone comma is
	// always a decimal separator in the statements this core sees.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FindAmount locates the monetary amount on a single line. Patterns are
// tried most-specific first; when a pattern yields several candidates the
// LAST one wins: trailing numbers on receipt lines are prices, leading
// numbers are article codes. Returns magnitude in cents.
func FindAmount(line string) (int64, bool) {
	cents, _, ok := FindSignedAmount(line)
	if cents < 0 {
		cents = -cents
	}
	return cents, ok
}

// FindSignedAmount is FindAmount keeping the printed sign. The second
// result reports whether the line spelled one out; unsigned amounts carry
// no direction and callers fall back to their own heuristics.
func FindSignedAmount(line string) (cents int64, signed bool, ok bool) {
	for _, re := range []*regexp.Regexp{currencyAmountRe, decimalAmountRe} {
		matches := re.FindAllStringSubmatch(line, -1)
		for i := len(matches) - 1; i >= 0; i-- {
			parsed, err := ParseAmount(matches[i][1])
			if err != nil {
				continue
			}
			mag := parsed
			if mag < 0 {
				mag = -mag
			}
			if !withinWindow(mag) {
				continue
			}
			explicit := strings.HasPrefix(matches[i][1], "-") || strings.HasPrefix(matches[i][1], "+")
			return parsed, explicit, true
		}
	}
	// Last resort: "100 47" → 100.47, only when no decimal point matched.
	matches := splitTailRe.FindAllStringSubmatch(line, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		parsed, err := ParseAmount(matches[i][1] + "." + matches[i][2])
		if err == nil && withinWindow(parsed) {
			return parsed, false, true
		}
	}
	return 0, false, false
}

// FindAmountInText is the final fallback when no line produced a sane
// amount: the maximum of all raw decimal amounts anywhere in the text.
func FindAmountInText(text string) (int64, bool) {
	var best int64
	for _, m := range decimalAmountRe.FindAllStringSubmatch(text, -1) {
		cents, err := ParseAmount(m[1])
		if err != nil {
			continue
		}
		if cents < 0 {
			cents = -cents
		}
		if cents > best && cents <= MaxLineAmountCents {
			best = cents
		}
	}
	return best, best >= MinAmountCents
}

// StripAmounts removes every amount-looking substring, leaving description text.
func StripAmounts(line string) string {
	line = currencyAmountRe.ReplaceAllString(line, "")
	return decimalAmountRe.ReplaceAllString(line, "")
}

func withinWindow(cents int64) bool {
	return cents >= MinAmountCents && cents <= MaxLineAmountCents
}

// Package normalizer repairs noisy OCR text and locates monetary amounts
// and dates inside free-form lines. All functions are pure: garbage the
// repair tables don't know passes through unchanged.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

// latinToCyrillic maps Latin lookalike glyphs that OCR substitutes into
// Ukrainian text back to their intended Cyrillic characters. Applied only
// to tokens that are already majority-Cyrillic, so English words survive.
var latinToCyrillic = map[rune]rune{
	'a': 'а', 'c': 'с', 'e': 'е', 'i': 'і', 'o': 'о',
	'p': 'р', 'x': 'х', 'y': 'у',
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н',
	'I': 'І', 'K': 'К', 'M': 'М', 'O': 'О', 'P': 'Р',
	'T': 'Т', 'X': 'Х', 'Y': 'У',
}

var (
	// A number OCR split into integer and two-decimal fragments: "100 47 грн"
	// or a trailing "100 47". Rejoined with a decimal point.
	splitNumberRe = regexp.MustCompile(`(?i)(\d+) +(\d{2})( *(?:грн|uah|₴)|\s*$)`)

	// Multiplication-sign variants between numbers, unified to a single "x".
	multiplySignRe = regexp.MustCompile(`(\d[.,]?\d*) *[xXх×*] *(\d)`)

	spacesRe = regexp.MustCompile(`[ \t]+`)
)

// Normalize repairs mis-encoded OCR output: filters junk characters,
// collapses whitespace, undoes known Latin/Cyrillic confusions, rejoins
// split decimal numbers and unifies multiplication signs. Line structure
// is preserved; downstream parsers are line-oriented.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = filterChars(line)
		line = spacesRe.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		line = fixConfusions(line)
		line = splitNumberRe.ReplaceAllString(line, "$1.$2$3")
		line = multiplySignRe.ReplaceAllString(line, "$1 x $2")
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// filterChars keeps word characters, whitespace and the punctuation that
// carries meaning on receipts and statements; everything else is OCR junk.
func filterChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == ' ' || r == '\t':
			return r
		case strings.ContainsRune(`.,:;%№#*xх×-+/='"()`, r):
			return r
		case r == '₴' || r == '$' || r == '€':
			return r
		}
		return -1
	}, s)
}

// fixConfusions rewrites Latin lookalikes inside majority-Cyrillic tokens.
func fixConfusions(line string) string {
	tokens := strings.Split(line, " ")
	for i, tok := range tokens {
		if !mostlyCyrillic(tok) {
			continue
		}
		tokens[i] = strings.Map(func(r rune) rune {
			if repl, ok := latinToCyrillic[r]; ok {
				return repl
			}
			return r
		}, tok)
	}
	return strings.Join(tokens, " ")
}

func mostlyCyrillic(tok string) bool {
	var cyr, lat int
	for _, r := range tok {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyr++
		case unicode.Is(unicode.Latin, r):
			lat++
		}
	}
	return lat > 0 && cyr > lat
}

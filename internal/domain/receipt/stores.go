package receipt

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// knownStores lists canonical store names with the spellings their
// receipts print. Order matters: earlier entries win when a damaged
// header could match several.
var knownStores = []struct {
	name    string
	aliases []string
}{
	{"АТБ", []string{"атб", "атб-маркет", "atb"}},
	{"Сільпо", []string{"сільпо", "силпо", "silpo"}},
	{"Новус", []string{"новус", "novus"}},
	{"Ашан", []string{"ашан", "auchan"}},
	{"Фора", []string{"фора", "fora"}},
	{"ЕКО Маркет", []string{"еко маркет", "еко-маркет", "eko market"}},
	{"Метро", []string{"метро", "metro"}},
	{"Варус", []string{"варус", "varus"}},
	{"Велика Кишеня", []string{"велика кишеня"}},
	{"Копійочка", []string{"копійочка", "копієчка"}},
	{"Аптека АНЦ", []string{"аптека анц", "анц"}},
	{"WOG", []string{"wog", "вог"}},
	{"ОККО", []string{"окко", "okko"}},
}

// storeScanLines limits how deep into the receipt the store name search
// goes; headers live at the top.
const storeScanLines = 5

// maxStoreDistance is the Levenshtein budget for a token to still count
// as a known store spelling.
const maxStoreDistance = 1

// DetectStore finds a known store name in the receipt header lines.
// Exact substring matches win; otherwise each token gets one chance at a
// close fuzzy match. Returns "" when nothing matches.
func DetectStore(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > storeScanLines {
		lines = lines[:storeScanLines]
	}

	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" {
			continue
		}
		for _, store := range knownStores {
			for _, alias := range store.aliases {
				if strings.Contains(lower, alias) {
					return store.name
				}
			}
		}
	}

	// Fuzzy pass, token by token. Short aliases skip it: a one-edit
	// budget on three letters matches far too much.
	for _, line := range lines {
		for _, token := range strings.Fields(strings.ToLower(line)) {
			for _, store := range knownStores {
				for _, alias := range store.aliases {
					if len([]rune(alias)) < 4 || strings.Contains(alias, " ") {
						continue
					}
					if fuzzy.LevenshteinDistance(token, alias) <= maxStoreDistance {
						return store.name
					}
				}
			}
		}
	}

	return ""
}

package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// fuzzyMaxDistance is the Levenshtein budget for a damaged token to still
// count as a pattern. One edit covers the typical OCR substitution.
const fuzzyMaxDistance = 1

// fuzzyMinPatternLen guards against short patterns: one edit on three
// characters matches half the dictionary.
const fuzzyMinPatternLen = 4

// FuzzyMatch compares each description token against every pattern within
// a small edit distance. Much slower than the Aho-Corasick pass, so it
// runs only when that pass found nothing.
func (e *Engine) FuzzyMatch(description string, txType transaction.Type) *Match {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.patterns) == 0 {
		return nil
	}

	tokens := strings.Fields(strings.ToUpper(description))
	var best *Rule
	for _, token := range tokens {
		for idx, pattern := range e.patterns {
			if len([]rune(pattern)) < fuzzyMinPatternLen {
				continue
			}
			if fuzzy.LevenshteinDistance(token, pattern) > fuzzyMaxDistance {
				continue
			}
			for i := range e.rules[idx] {
				rule := &e.rules[idx][i]
				if rule.TxType != "" && rule.TxType != txType {
					continue
				}
				if best == nil || rule.Priority > best.Priority {
					best = rule
				}
			}
		}
	}
	if best == nil {
		return nil
	}

	return &Match{
		Rule:     *best,
		Category: transaction.NewLabel(best.Category),
	}
}

// Package categorization assigns spending categories to transaction
// descriptions. The hot path is an Aho-Corasick multi-pattern matcher
// over keyword rules; a fuzzy pass catches OCR-damaged merchant names.
package categorization

import (
	"strings"
	"sync"

	"github.com/cloudflare/ahocorasick"

	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// Rule binds a keyword pattern to a category. Higher priority wins when
// several patterns match one description.
type Rule struct {
	Pattern  string
	Category string
	Icon     string
	TxType   transaction.Type // empty applies to both directions
	Priority int
}

// Match is the winning rule for a description.
type Match struct {
	Rule     Rule
	Category transaction.Category
}

// Engine matches thousands of keyword patterns in a single pass through
// the description. Rebuilding is cheap enough to do on rule changes.
type Engine struct {
	mu       sync.RWMutex
	matcher  *ahocorasick.Matcher
	patterns []string
	rules    [][]Rule // rules per pattern; duplicates group together
}

// NewEngine builds a matcher from the given rules.
func NewEngine(rules []Rule) *Engine {
	e := &Engine{}
	e.Build(rules)
	return e
}

// Build reconstructs the matcher. Patterns are uppercased so matching is
// case-insensitive for both Cyrillic and Latin.
func (e *Engine) Build(rules []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(rules) == 0 {
		e.matcher = nil
		e.patterns = nil
		e.rules = nil
		return
	}

	patternToIndex := make(map[string]int, len(rules))
	patterns := make([]string, 0, len(rules))
	grouped := make([][]Rule, 0, len(rules))

	for _, rule := range rules {
		pattern := strings.ToUpper(strings.TrimSpace(rule.Pattern))
		if pattern == "" {
			continue
		}
		if idx, ok := patternToIndex[pattern]; ok {
			grouped[idx] = append(grouped[idx], rule)
			continue
		}
		patternToIndex[pattern] = len(patterns)
		patterns = append(patterns, pattern)
		grouped = append(grouped, []Rule{rule})
	}

	e.patterns = patterns
	e.rules = grouped

	if len(patterns) == 0 {
		e.matcher = nil
		return
	}
	bytePatterns := make([][]byte, len(patterns))
	for i, p := range patterns {
		bytePatterns[i] = []byte(p)
	}
	e.matcher = ahocorasick.NewMatcher(bytePatterns)
}

// Match returns the highest-priority rule matching the description for
// the given direction, or nil when nothing matches.
func (e *Engine) Match(description string, txType transaction.Type) *Match {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.matcher == nil {
		return nil
	}

	input := strings.ToUpper(description)
	indexes := e.matcher.Match([]byte(input))
	if len(indexes) == 0 {
		return nil
	}

	var best *Rule
	for _, idx := range indexes {
		if idx < 0 || idx >= len(e.rules) {
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
	if best == nil {
		return nil
	}

	return &Match{
		Rule:     *best,
		Category: transaction.NewLabel(best.Category),
	}
}

// PatternCount reports how many distinct patterns are loaded.
func (e *Engine) PatternCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.patterns)
}

// IsEmpty reports whether the engine has no patterns.
func (e *Engine) IsEmpty() bool {
	return e.PatternCount() == 0
}

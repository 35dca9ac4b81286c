package categorization

import (
	"context"
	"log/slog"

	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// Categorizer is the transaction.Categorizer implementation: exact
// multi-pattern matching first, fuzzy rescue second.
type Categorizer struct {
	engine *Engine
	logger *slog.Logger
}

// NewCategorizer builds a categorizer over the given rules; pass
// DefaultRules() for the built-in Ukrainian set.
func NewCategorizer(rules []Rule, logger *slog.Logger) *Categorizer {
	return &Categorizer{
		engine: NewEngine(rules),
		logger: logger,
	}
}

// Categorize resolves a category for the description. A miss is not an
// error: the zero category tells the caller to use its default.
func (c *Categorizer) Categorize(ctx context.Context, description string, txType transaction.Type) (transaction.Category, error) {
	if err := ctx.Err(); err != nil {
		return transaction.Category{}, err
	}

	if m := c.engine.Match(description, txType); m != nil {
		return m.Category, nil
	}
	if m := c.engine.FuzzyMatch(description, txType); m != nil {
		c.logger.Debug("fuzzy category match",
			slog.String("description", description),
			slog.String("pattern", m.Rule.Pattern),
			slog.String("category", m.Rule.Category))
		return m.Category, nil
	}

	return transaction.Category{}, nil
}

// Reload swaps the rule set at runtime.
func (c *Categorizer) Reload(rules []Rule) {
	c.engine.Build(rules)
}

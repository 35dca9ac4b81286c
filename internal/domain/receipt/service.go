package receipt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/okushnir/kopiyka/internal/domain/normalizer"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

// ErrNoReceiptData is returned when no OCR pass produced a usable total.
var ErrNoReceiptData = errors.New("no usable receipt data recognized")

// Pass names an OCR preprocessing strategy. Photos of crumpled thermal
// paper respond very differently to each, so all are tried.
type Pass string

const (
	PassMild         Pass = "mild"
	PassAggressive   Pass = "aggressive"
	PassConservative Pass = "conservative"
)

// defaultPasses is the trust order; ties in scoring go to earlier passes.
var defaultPasses = []Pass{PassMild, PassAggressive, PassConservative}

// Engine runs OCR over a photo with a given preprocessing pass.
type Engine interface {
	Recognize(ctx context.Context, image []byte, pass Pass) (string, error)
}

// Result is one extracted receipt: the structured parse, the winning
// pass and the normalized transaction derived from it.
type Result struct {
	Receipt ParseResult
	Pass    Pass
	Record  transaction.Record
}

// Service turns receipt photos into transactions via multi-pass OCR.
type Service struct {
	engine      Engine
	categorizer transaction.Categorizer
	logger      *slog.Logger
	passes      []Pass
	now         func() time.Time
}

// NewService wires a receipt extraction service.
func NewService(engine Engine, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
		passes: defaultPasses,
		now:    time.Now,
	}
}

// WithCategorizer adds automatic category assignment.
func (s *Service) WithCategorizer(categorizer transaction.Categorizer) *Service {
	s.categorizer = categorizer
	return s
}

// ExtractImage OCRs the photo once per pass, parses every recognition and
// keeps the best-scoring one. Individual pass failures are logged and
// tolerated; only a fully empty outcome is an error.
func (s *Service) ExtractImage(ctx context.Context, image []byte) (*Result, error) {
	type candidate struct {
		pass   Pass
		parsed ParseResult
	}

	var candidates []candidate
	var parses []ParseResult
	for _, pass := range s.passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := s.engine.Recognize(ctx, image, pass)
		if err != nil {
			s.logger.Warn("ocr pass failed",
				slog.String("pass", string(pass)),
				slog.Any("error", err))
			continue
		}

		parsed := Parse(normalizer.Normalize(text))
		candidates = append(candidates, candidate{pass: pass, parsed: parsed})
		parses = append(parses, parsed)
	}

	best, ok := SelectBest(parses)
	if !ok || best.TotalCents == 0 {
		return nil, ErrNoReceiptData
	}

	winning := candidates[0].pass
	for _, c := range candidates {
		if Score(c.parsed) == Score(best) {
			winning = c.pass
			break
		}
	}

	record, err := s.toRecord(ctx, best)
	if err != nil {
		return nil, err
	}

	s.logger.Info("receipt extracted",
		slog.String("pass", string(winning)),
		slog.String("store", best.StoreName),
		slog.Int("items", len(best.Items)),
		slog.Int64("total_cents", best.TotalCents))

	return &Result{Receipt: best, Pass: winning, Record: record}, nil
}

// toRecord folds the parse into one expense record. Receipts without a
// readable date default to today: the photo was almost certainly taken
// at the register.
func (s *Service) toRecord(ctx context.Context, parsed ParseResult) (transaction.Record, error) {
	date := parsed.Date
	if date.IsZero() {
		date = s.now()
	}

	description := parsed.StoreName
	if description == "" {
		description = "Store purchase"
	}

	rec := transaction.Record{
		Date:        date,
		Time:        parsed.Time,
		AmountCents: parsed.TotalCents,
		Description: description,
		Type:        transaction.TypeExpense,
		Raw:         parsed.RawText,
	}

	cleaned := transaction.Clean(ctx, []transaction.Record{rec}, s.categorizer, s.now())
	if len(cleaned) == 0 {
		return transaction.Record{}, fmt.Errorf("%w: total failed validation", ErrNoReceiptData)
	}
	return cleaned[0], nil
}

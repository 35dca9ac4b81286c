// Package service orchestrates statement extraction: format dispatch,
// validation, categorization and audit storage for uploaded files.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okushnir/kopiyka/internal/domain/statement/parser"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
	"github.com/okushnir/kopiyka/pkg/money"
)

// AuditStore persists uploaded payloads for later inspection. Optional:
// extraction works without one.
type AuditStore interface {
	Store(ctx context.Context, jobID uuid.UUID, filename string, data []byte) error
}

// File is one uploaded statement.
type File struct {
	Name string
	Data []byte
}

// Report is the outcome of extracting one file.
type Report struct {
	JobID        uuid.UUID
	Filename     string
	Records      []transaction.Record
	Skipped      []transaction.SkipReason
	TotalRows    int
	Duration     time.Duration
	TotalExpense *money.Money
	TotalIncome  *money.Money
}

func sumByType(records []transaction.Record) (expense, income *money.Money) {
	expense = money.UAHFromCents(0)
	income = money.UAHFromCents(0)
	for _, r := range records {
		amount := money.UAHFromCents(r.AmountCents)
		if r.Type == transaction.TypeIncome {
			income, _ = income.Add(amount)
		} else {
			expense, _ = expense.Add(amount)
		}
	}
	return expense, income
}

// Service runs statement extraction end to end.
type Service struct {
	dispatcher  *parser.Dispatcher
	categorizer transaction.Categorizer
	store       AuditStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires a statement extraction service. The OCR engine may be
// nil; scanned PDFs then come back unsupported.
func NewService(opts parser.Options, ocr parser.OCREngine, logger *slog.Logger) *Service {
	return &Service{
		dispatcher: parser.NewDispatcher(opts, ocr),
		logger:     logger,
		now:        time.Now,
	}
}

// WithCategorizer adds automatic category assignment.
func (s *Service) WithCategorizer(categorizer transaction.Categorizer) *Service {
	s.categorizer = categorizer
	return s
}

// WithAuditStore adds persistence of uploaded payloads.
func (s *Service) WithAuditStore(store AuditStore) *Service {
	s.store = store
	return s
}

// ExtractFile parses one uploaded statement, validates the records and
// returns the report. Audit storage failures are logged, never fatal.
func (s *Service) ExtractFile(ctx context.Context, filename string, data []byte) (*Report, error) {
	jobID := uuid.New()
	started := s.now()

	if s.store != nil {
		if err := s.store.Store(ctx, jobID, filename, data); err != nil {
			s.logger.Warn("audit store failed",
				slog.String("job_id", jobID.String()),
				slog.String("file", filename),
				slog.Any("error", err))
		}
	}

	result, err := s.dispatcher.Parse(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	records := transaction.Clean(ctx, result.Records, s.categorizer, s.now())
	expense, income := sumByType(records)

	report := &Report{
		JobID:        jobID,
		Filename:     filename,
		Records:      records,
		Skipped:      result.Skipped,
		TotalRows:    result.TotalRows,
		Duration:     s.now().Sub(started),
		TotalExpense: expense,
		TotalIncome:  income,
	}

	s.logger.Info("statement extracted",
		slog.String("job_id", jobID.String()),
		slog.String("file", filename),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("records", len(report.Records)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// ExtractBatch processes several files on a worker pool and returns the
// per-file reports in input order. A failed file yields a nil report and
// contributes to the returned error; the rest still complete.
func (s *Service) ExtractBatch(ctx context.Context, files []File) ([]*Report, error) {
	if len(files) == 0 {
		return nil, nil
	}

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(files) {
		workerCount = len(files)
	}

	type job struct {
		idx  int
		file File
	}

	jobs := make(chan job)
	reports := make([]*Report, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					errs[j.idx] = ctx.Err()
					continue
				}
				report, err := s.ExtractFile(ctx, j.file.Name, j.file.Data)
				reports[j.idx] = report
				errs[j.idx] = err
			}
		}()
	}

	for i, f := range files {
		select {
		case jobs <- job{idx: i, file: f}:
		case <-ctx.Done():
			errs[i] = ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	var firstErr error
	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return reports, fmt.Errorf("%d of %d files failed: %w", failed, len(files), firstErr)
	}
	return reports, nil
}

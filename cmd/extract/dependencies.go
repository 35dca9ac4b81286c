package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/okushnir/kopiyka/internal/domain/categorization"
	"github.com/okushnir/kopiyka/internal/domain/receipt"
	"github.com/okushnir/kopiyka/internal/domain/statement/parser"
	statementservice "github.com/okushnir/kopiyka/internal/domain/statement/service"
	"github.com/okushnir/kopiyka/internal/ocr"
	"github.com/okushnir/kopiyka/pkg/config"
	"github.com/okushnir/kopiyka/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	OCRClient   *ocr.Client
	Categorizer *categorization.Categorizer
	AuditStore  storage.Storage

	StatementService *statementservice.Service
	ReceiptService   *receipt.Service
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.OCRClient = ocr.NewClient(ocr.Config{
		TessdataPrefix: cfg.OCR.TessdataPrefix,
		Languages:      cfg.OCR.Languages,
	}, logger)

	deps.Categorizer = categorization.NewCategorizer(categorization.DefaultRules(), logger)

	if cfg.Storage.AuditEnabled {
		store, err := storage.NewLocalStorage(cfg.Storage.AuditDir)
		if err != nil {
			return nil, fmt.Errorf("failed to init audit storage: %w", err)
		}
		deps.AuditStore = store
	}

	bank, err := parseBank(cfg.Extraction.Bank)
	if err != nil {
		return nil, err
	}

	deps.StatementService = statementservice.NewService(
		parser.Options{Bank: bank}, newStatementOCRAdapter(deps.OCRClient), logger).
		WithCategorizer(deps.Categorizer)
	if deps.AuditStore != nil {
		deps.StatementService = deps.StatementService.WithAuditStore(deps.AuditStore)
	}

	deps.ReceiptService = receipt.NewService(newReceiptOCRAdapter(deps.OCRClient), logger).
		WithCategorizer(deps.Categorizer)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func parseBank(name string) (parser.Bank, error) {
	switch strings.ToLower(name) {
	case "":
		return parser.BankUnknown, nil
	case "privatbank":
		return parser.BankPrivatBank, nil
	case "monobank":
		return parser.BankMonobank, nil
	}
	return parser.BankUnknown, fmt.Errorf("unknown bank %q", name)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

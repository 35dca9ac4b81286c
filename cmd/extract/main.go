// Command extract turns bank statements and receipt photos into
// normalized transactions printed as tab-separated rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	statementservice "github.com/okushnir/kopiyka/internal/domain/statement/service"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
	"github.com/okushnir/kopiyka/pkg/config"
	"github.com/okushnir/kopiyka/pkg/cron"
	"github.com/okushnir/kopiyka/pkg/money"
)

func main() {
	receiptMode := flag.Bool("receipt", false, "treat inputs as receipt photos instead of statements")
	janitorMode := flag.Bool("janitor", false, "run the audit retention sweeper until interrupted")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-receipt|-janitor] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 && !*janitorMode {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("init failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *janitorMode {
		if err := runJanitor(ctx, deps); err != nil {
			logger.Error("janitor failed", "error", err)
			os.Exit(1)
		}
		return
	}

	var run func(ctx context.Context, deps *Dependencies, paths []string) error
	if *receiptMode {
		run = runReceipts
	} else {
		run = runStatements
	}

	if err := run(ctx, deps, flag.Args()); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func runStatements(ctx context.Context, deps *Dependencies, paths []string) error {
	files := make([]statementservice.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, statementservice.File{Name: filepath.Base(path), Data: data})
	}

	reports, err := deps.StatementService.ExtractBatch(ctx, files)
	for _, report := range reports {
		if report == nil {
			continue
		}
		printReport(report)
	}
	return err
}

func printReport(report *statementservice.Report) {
	fmt.Printf("# %s: %d records, %d skipped of %d rows (expense %s, income %s)\n",
		report.Filename, len(report.Records), len(report.Skipped), report.TotalRows,
		report.TotalExpense.Display(), report.TotalIncome.Display())
	for _, rec := range report.Records {
		printRecord(rec)
	}
	for _, skip := range report.Skipped {
		fmt.Printf("# skipped row %d (%s): %s\n", skip.Row, skip.Field, skip.Message)
	}
}

func runJanitor(ctx context.Context, deps *Dependencies) error {
	if deps.AuditStore == nil {
		return fmt.Errorf("janitor mode requires AUDIT_ENABLED")
	}

	retention := time.Duration(deps.Config.Storage.AuditRetentionDays) * 24 * time.Hour
	scheduler := cron.NewScheduler(deps.AuditStore, retention, deps.Logger)
	if err := scheduler.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

func runReceipts(ctx context.Context, deps *Dependencies, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		result, err := deps.ReceiptService.ExtractImage(ctx, data)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}

		fmt.Printf("# %s: %s, %d items, pass %s\n",
			filepath.Base(path), result.Receipt.StoreName, len(result.Receipt.Items), result.Pass)
		for _, item := range result.Receipt.Items {
			fmt.Printf("#   %s\t%s\n", item.Name, money.UAHFromCents(item.PriceCents).Display())
		}
		printRecord(result.Record)
	}
	return nil
}

func printRecord(rec transaction.Record) {
	fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
		rec.Date.Format("2006-01-02"),
		rec.Type,
		money.UAHFromCents(rec.AmountCents).Display(),
		rec.Category.String(),
		rec.Description)
}

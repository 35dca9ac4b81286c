// Package e2etest provides end-to-end tests for the extraction flows.
package e2etest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushnir/kopiyka/internal/domain/categorization"
	"github.com/okushnir/kopiyka/internal/domain/statement/parser"
	"github.com/okushnir/kopiyka/internal/domain/statement/service"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

const testDataDir = "testdata"

func newService(t *testing.T) *service.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewService(parser.Options{}, nil, logger).
		WithCategorizer(categorization.NewCategorizer(categorization.DefaultRules(), logger))
}

// TestUkrainianCSVExtraction walks the full flow for a typical Ukrainian
// bank export: CP1251-agnostic sniffing, semicolon delimiter, comma
// decimals, categorization and validation.
func TestUkrainianCSVExtraction(t *testing.T) {
	data := []byte("Дата;Час;Сума;Опис\n" +
		"19.06.2025;14:32;-32,50;АТБ-Маркет Київ\n" +
		"20.06.2025;09:10;-250,00;UBER *TRIP KYIV\n" +
		"25.06.2025;12:00;25000,00;Зарплата за червень\n")

	report, err := newService(t).ExtractFile(context.Background(), "statement.csv", data)
	require.NoError(t, err)
	require.Len(t, report.Records, 3)

	t.Run("SortedDescending", func(t *testing.T) {
		assert.Equal(t, "Зарплата за червень", report.Records[0].Description)
		assert.Equal(t, "UBER *TRIP KYIV", report.Records[1].Description)
	})

	t.Run("Categorized", func(t *testing.T) {
		byDesc := map[string]transaction.Record{}
		for _, r := range report.Records {
			byDesc[r.Description] = r
		}
		assert.Equal(t, "Groceries", byDesc["АТБ-Маркет Київ"].Category.String())
		assert.Equal(t, "Transport", byDesc["UBER *TRIP KYIV"].Category.String())
		assert.Equal(t, "Salary", byDesc["Зарплата за червень"].Category.String())
	})

	t.Run("Totals", func(t *testing.T) {
		assert.Equal(t, int64(28250), report.TotalExpense.Cents())
		assert.Equal(t, int64(2500000), report.TotalIncome.Cents())
	})
}

// TestPlainTextExtraction covers OCR-style free text going through the
// line parser instead of the tabular path.
func TestPlainTextExtraction(t *testing.T) {
	data := []byte("Виписка за червень\n" +
		"19.06.2025 Сільпо Харків 215.30 грн\n" +
		"20.06.2025 Надходження переказ 1000.00 грн\n" +
		"рядок без транзакції\n")

	report, err := newService(t).ExtractFile(context.Background(), "statement.txt", data)
	require.NoError(t, err)
	require.Len(t, report.Records, 2)

	byDesc := map[string]transaction.Record{}
	for _, r := range report.Records {
		byDesc[r.Description] = r
	}

	silpo, ok := byDesc["Сільпо Харків"]
	require.True(t, ok)
	assert.Equal(t, transaction.TypeExpense, silpo.Type)
	assert.Equal(t, int64(21530), silpo.AmountCents)

	for desc, rec := range byDesc {
		if desc != "Сільпо Харків" {
			assert.Equal(t, transaction.TypeIncome, rec.Type)
		}
	}
}

// TestRealBankExports runs the pipeline against real export files dropped
// into testdata. Skipped when none are present.
func TestRealBankExports(t *testing.T) {
	entries, err := os.ReadDir(testDataDir)
	if os.IsNotExist(err) || len(entries) == 0 {
		t.Skipf("no export files in %s (add real bank exports to run this test)", testDataDir)
	}
	require.NoError(t, err)

	svc := newService(t)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(testDataDir, entry.Name()))
			require.NoError(t, err)

			report, err := svc.ExtractFile(context.Background(), entry.Name(), data)
			require.NoError(t, err)
			assert.NotEmpty(t, report.Records, "expected at least one record from %s", entry.Name())

			for _, rec := range report.Records {
				assert.False(t, rec.Date.IsZero())
				assert.Positive(t, rec.AmountCents)
				assert.NotEmpty(t, rec.Description)
			}
		})
	}
}

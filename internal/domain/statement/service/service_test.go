package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushnir/kopiyka/internal/domain/statement/parser"
	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

var testCSV = []byte("Дата;Сума;Опис\n19.06.2025;-100,47;АТБ-Маркет\n20.06.2025;2500,00;Зарплата\n")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryStore struct {
	mu    sync.Mutex
	files map[uuid.UUID]string
}

func (m *memoryStore) Store(_ context.Context, jobID uuid.UUID, filename string, _ []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[uuid.UUID]string)
	}
	m.files[jobID] = filename
	return nil
}

type labelCategorizer struct{ label string }

func (c *labelCategorizer) Categorize(_ context.Context, _ string, _ transaction.Type) (transaction.Category, error) {
	return transaction.NewLabel(c.label), nil
}

func TestExtractFile(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger())

	report, err := svc.ExtractFile(context.Background(), "statement.csv", testCSV)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.JobID)
	require.Len(t, report.Records, 2)
	// Clean sorts date descending.
	assert.Equal(t, "Зарплата", report.Records[0].Description)
	assert.Equal(t, transaction.TypeIncome, report.Records[0].Type)
	assert.Equal(t, "АТБ-Маркет", report.Records[1].Description)
	assert.Equal(t, int64(10047), report.TotalExpense.Cents())
	assert.Equal(t, int64(250000), report.TotalIncome.Cents())
}

func TestExtractFileUnsupported(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger())

	_, err := svc.ExtractFile(context.Background(), "x.bin", []byte("no transactions in here"))
	assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
}

func TestExtractFileUsesCategorizer(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger()).
		WithCategorizer(&labelCategorizer{label: "Groceries"})

	report, err := svc.ExtractFile(context.Background(), "statement.csv", testCSV)
	require.NoError(t, err)
	require.NotEmpty(t, report.Records)
	assert.Equal(t, "Groceries", report.Records[0].Category.String())
}

func TestExtractFileAuditsUpload(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(parser.Options{}, nil, testLogger()).WithAuditStore(store)

	report, err := svc.ExtractFile(context.Background(), "statement.csv", testCSV)
	require.NoError(t, err)
	assert.Equal(t, "statement.csv", store.files[report.JobID])
}

func TestExtractBatch(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger())

	files := []File{
		{Name: "a.csv", Data: testCSV},
		{Name: "b.csv", Data: testCSV},
		{Name: "c.csv", Data: testCSV},
	}

	reports, err := svc.ExtractBatch(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for i, report := range reports {
		require.NotNil(t, report, "report %d", i)
		assert.Equal(t, files[i].Name, report.Filename)
		assert.Len(t, report.Records, 2)
	}
}

func TestExtractBatchReportsFailures(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger())

	files := []File{
		{Name: "good.csv", Data: testCSV},
		{Name: "bad.bin", Data: []byte("garbage with no structure")},
	}

	reports, err := svc.ExtractBatch(context.Background(), files)
	require.Error(t, err)
	require.Len(t, reports, 2)
	assert.NotNil(t, reports[0])
	assert.Nil(t, reports[1])
}

func TestExtractBatchEmpty(t *testing.T) {
	svc := NewService(parser.Options{}, nil, testLogger())
	reports, err := svc.ExtractBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, reports)
}

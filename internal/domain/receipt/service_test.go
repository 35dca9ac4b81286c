package receipt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushnir/kopiyka/internal/domain/transaction"
)

type fakeEngine struct {
	texts map[Pass]string
	errs  map[Pass]error
}

func (f *fakeEngine) Recognize(_ context.Context, _ []byte, pass Pass) (string, error) {
	if err := f.errs[pass]; err != nil {
		return "", err
	}
	return f.texts[pass], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractImagePicksBestPass(t *testing.T) {
	engine := &fakeEngine{texts: map[Pass]string{
		PassMild:         "СУМА 56.50",
		PassAggressive:   "АТБ-Маркет\n19.06.2025 14:32\nХліб 24.50\nМолоко 32.00\nСУМА 56.50",
		PassConservative: "шум без жодних даних",
	}}

	svc := NewService(engine, testLogger())
	result, err := svc.ExtractImage(context.Background(), []byte("photo"))
	require.NoError(t, err)

	assert.Equal(t, PassAggressive, result.Pass)
	assert.Equal(t, "АТБ", result.Receipt.StoreName)
	assert.Equal(t, int64(5650), result.Record.AmountCents)
	assert.Equal(t, transaction.TypeExpense, result.Record.Type)
	assert.Equal(t, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC), result.Record.Date)
	assert.Equal(t, "АТБ", result.Record.Description)
}

func TestExtractImageToleratesPassErrors(t *testing.T) {
	engine := &fakeEngine{
		texts: map[Pass]string{PassConservative: "АТБ\nСУМА 150.00"},
		errs: map[Pass]error{
			PassMild:       errors.New("tesseract crashed"),
			PassAggressive: errors.New("tesseract crashed"),
		},
	}

	svc := NewService(engine, testLogger())
	result, err := svc.ExtractImage(context.Background(), []byte("photo"))
	require.NoError(t, err)
	assert.Equal(t, PassConservative, result.Pass)
	assert.Equal(t, int64(15000), result.Record.AmountCents)
}

func TestExtractImageNoData(t *testing.T) {
	engine := &fakeEngine{texts: map[Pass]string{
		PassMild:         "шум",
		PassAggressive:   "",
		PassConservative: "ще шум",
	}}

	svc := NewService(engine, testLogger())
	_, err := svc.ExtractImage(context.Background(), []byte("photo"))
	assert.ErrorIs(t, err, ErrNoReceiptData)
}

func TestExtractImageDefaultsDateToToday(t *testing.T) {
	engine := &fakeEngine{texts: map[Pass]string{
		PassMild: "АТБ\nХліб 24.50\nСУМА 24.50",
	}}

	svc := NewService(engine, testLogger())
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	result, err := svc.ExtractImage(context.Background(), []byte("photo"))
	require.NoError(t, err)
	assert.Equal(t, now, result.Record.Date)
}

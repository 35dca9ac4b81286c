package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushnir/kopiyka/pkg/storage"
)

func TestSweepDeletesExpiredPayloads(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	oldJob := uuid.New()
	freshJob := uuid.New()
	require.NoError(t, store.Store(context.Background(), oldJob, "old.csv", []byte("a")))
	require.NoError(t, store.Store(context.Background(), freshJob, "fresh.csv", []byte("b")))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScheduler(store, 30*24*time.Hour, logger)
	// Pretend the sweep runs far in the future so both payloads predate
	// the cutoff.
	s.now = func() time.Time { return time.Now().Add(60 * 24 * time.Hour) }
	s.RunNow()

	files, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSweepKeepsRecentPayloads(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Store(context.Background(), uuid.New(), "fresh.csv", []byte("b")))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScheduler(store, 30*24*time.Hour, logger)
	s.RunNow()

	files, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

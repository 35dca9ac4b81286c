// Package storage persists uploaded statement and receipt payloads so a
// disputed extraction can be replayed against the original bytes.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no payload exists for a job ID.
var ErrNotFound = errors.New("payload not found")

// FileInfo contains metadata about a stored payload.
type FileInfo struct {
	JobID     uuid.UUID `json:"job_id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Storage is the audit backend. Payloads are keyed by extraction job ID.
type Storage interface {
	// Store persists one uploaded payload under its job ID.
	Store(ctx context.Context, jobID uuid.UUID, filename string, data []byte) error

	// Open returns a reader over a stored payload.
	Open(ctx context.Context, jobID uuid.UUID) (io.ReadCloser, *FileInfo, error)

	// List returns metadata for every stored payload, newest first.
	List(ctx context.Context) ([]*FileInfo, error)

	// Delete removes a stored payload and its metadata.
	Delete(ctx context.Context, jobID uuid.UUID) error
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem. Each payload
// lives in a directory named after its job ID next to a metadata file.
type LocalStorage struct {
	basePath string
	now      func() time.Time
}

// NewLocalStorage creates a local filesystem audit store.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, now: time.Now}, nil
}

// Store persists one uploaded payload under its job ID.
func (s *LocalStorage) Store(ctx context.Context, jobID uuid.UUID, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jobDir := filepath.Join(s.basePath, jobID.String())
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}

	storedName := sanitizeFilename(filename)
	filePath := filepath.Join(jobDir, storedName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	info := &FileInfo{
		JobID:     jobID,
		Name:      filename,
		Size:      int64(len(data)),
		Path:      storedName,
		CreatedAt: s.now(),
	}
	if err := s.saveMetadata(jobDir, info); err != nil {
		os.Remove(filePath)
		return err
	}

	return nil
}

// Open returns a reader over a stored payload.
func (s *LocalStorage) Open(ctx context.Context, jobID uuid.UUID) (io.ReadCloser, *FileInfo, error) {
	info, err := s.getInfo(jobID)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(s.basePath, jobID.String(), info.Path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open payload: %w", err)
	}
	return f, info, nil
}

// List returns metadata for every stored payload, newest first.
func (s *LocalStorage) List(ctx context.Context) ([]*FileInfo, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}

	files := make([]*FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		jobID, err := uuid.Parse(entry.Name())
		if err != nil {
			continue
		}
		info, err := s.getInfo(jobID)
		if err != nil {
			continue
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

// Delete removes a stored payload and its metadata.
func (s *LocalStorage) Delete(ctx context.Context, jobID uuid.UUID) error {
	jobDir := filepath.Join(s.basePath, jobID.String())
	if _, err := os.Stat(jobDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if err := os.RemoveAll(jobDir); err != nil {
		return fmt.Errorf("failed to delete payload: %w", err)
	}
	return nil
}

func (s *LocalStorage) getInfo(jobID uuid.UUID) (*FileInfo, error) {
	metaPath := filepath.Join(s.basePath, jobID.String(), metadataFile)

	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var info FileInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &info, nil
}

const metadataFile = ".meta.json"

func (s *LocalStorage) saveMetadata(jobDir string, info *FileInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(jobDir, metadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// sanitizeFilename removes unsafe characters from filenames
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	replaced := replacer.Replace(name)
	if replaced == "" || replaced == metadataFile {
		return "payload"
	}
	return replaced
}

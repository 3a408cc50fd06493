// Package storage persists the dataset record as a JSON file.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"framer-go/domain/dataset"
)

// JSONFileRepository implements dataset.Repository on a single JSON file.
type JSONFileRepository struct {
	path   string
	indent bool
	logger *slog.Logger
}

// Option configures a JSONFileRepository.
type Option func(*JSONFileRepository)

// WithIndent writes human-readable, indented JSON.
func WithIndent() Option {
	return func(r *JSONFileRepository) { r.indent = true }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *JSONFileRepository) { r.logger = logger }
}

// NewJSONFileRepository creates a repository for the file at path.
func NewJSONFileRepository(path string, opts ...Option) *JSONFileRepository {
	r := &JSONFileRepository{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "storage", "path", path)
	return r
}

// Location returns the file path.
func (r *JSONFileRepository) Location() string {
	return r.path
}

// Load reads and decodes the file. Returns dataset.ErrNotFound if it does not exist.
func (r *JSONFileRepository) Load(ctx context.Context) (*dataset.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", r.path, dataset.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	rec := dataset.NewRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", r.path, err)
	}
	r.logger.Debug("Dataset loaded", "images", rec.Len())
	return rec, nil
}

// Save encodes rec and replaces the file atomically, creating parent
// directories as needed.
func (r *JSONFileRepository) Save(ctx context.Context, rec *dataset.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if r.indent {
		var buf []byte
		if buf, err = indent(data); err != nil {
			return fmt.Errorf("failed to indent dataset: %w", err)
		}
		data = buf
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close dataset: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace dataset: %w", err)
	}

	r.logger.Info("Dataset written", "images", rec.Len(), "bytes", len(data))
	return nil
}

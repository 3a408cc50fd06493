package dataset

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no record has been persisted yet.
var ErrNotFound = errors.New("dataset not found")

// Repository defines the interface for dataset persistence operations.
type Repository interface {
	// Load retrieves the persisted record.
	// Returns ErrNotFound if nothing was saved yet.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the persisted record with r.
	Save(ctx context.Context, r *Record) error

	// Location describes where the record is stored, for logging.
	Location() string
}

package repositories

import (
	"context"
	"errors"

	"github.com/ci-research/learninghub-service/internal/models"
)

// ErrNoSnapshot signals that no saved snapshot exists in the slot.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotRepository is the durable local mirror of the application state.
// The whole snapshot is one document in one keyed slot; there is no
// per-entity access.
type SnapshotRepository interface {
	// Load returns the saved snapshot, ErrNoSnapshot when the slot is
	// empty, or a parse error when the stored document is unreadable.
	// Callers treat all failures alike and fall back to seed data.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save overwrites the slot with the given snapshot.
	Save(ctx context.Context, snapshot models.Snapshot) error
}

// IsNotFoundError reports whether err means "nothing saved yet".
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNoSnapshot)
}

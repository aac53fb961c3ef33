package repositories

import (
	"context"
	"sync"

	"github.com/ci-research/learninghub-service/internal/models"
)

// MemorySnapshotRepository keeps the snapshot in process memory. Used in
// tests and available as a throwaway backend.
type MemorySnapshotRepository struct {
	mu    sync.Mutex
	snap  *models.Snapshot
	saves int

	// FailSave makes Save return this error, for exercising the
	// best-effort persistence path.
	FailSave error
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

func (r *MemorySnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil {
		return nil, ErrNoSnapshot
	}
	snap := r.snap.Clone()
	return &snap, nil
}

func (r *MemorySnapshotRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSave != nil {
		return r.FailSave
	}
	snap := snapshot.Clone()
	r.snap = &snap
	r.saves++
	return nil
}

// SaveCount reports how many saves succeeded.
func (r *MemorySnapshotRepository) SaveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

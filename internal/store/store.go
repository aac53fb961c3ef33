// Package store holds the canonical application snapshot and runs the
// commit pipeline: mutation, local persistence, change event. It is the
// single source of truth; services express every legal state transition
// through Mutate and never touch the snapshot directly.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ci-research/learninghub-service/internal/events"
	"github.com/ci-research/learninghub-service/internal/metrics"
	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/repositories"
)

// Store guards the snapshot with a mutex so mutations apply atomically:
// no partially applied operation is ever observable.
type Store struct {
	mu        sync.RWMutex
	snap      models.Snapshot
	repo      repositories.SnapshotRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

// New loads the saved snapshot, falling back to the built-in seed when the
// slot is empty or unreadable. The two cases are deliberately not told
// apart: both mean "start from seed".
func New(ctx context.Context, repo repositories.SnapshotRepository, publisher events.EventPublisher, logger *slog.Logger) *Store {
	snap, err := repo.Load(ctx)
	if err != nil {
		logger.Info("starting from seed snapshot", "reason", err)
		seeded := models.SeedSnapshot()
		snap = &seeded
	}

	return &Store{
		snap:      *snap,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Mutate applies fn to the snapshot under the write lock. When fn returns
// an error the snapshot is left exactly as it was. On success the new
// snapshot is persisted locally and a change event carrying a copy of the
// sync payload is published; neither failure aborts the mutation.
func (s *Store) Mutate(ctx context.Context, operation string, fn func(snap *models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.snap.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	s.snap = working

	s.persistLocked(ctx)
	s.publishLocked(operation)
	metrics.MutationsApplied.WithLabelValues(operation).Inc()

	return nil
}

// ApplyRemote merges a pulled document into the snapshot. The rules are
// the remote contract verbatim: nothing happens unless the pulled course
// list is non-empty; users are replaced only when the pulled user list is
// non-empty; the local session always survives. The merged snapshot is
// persisted but no change event is published, so a pull never triggers a
// push of its own.
func (s *Store) ApplyRemote(ctx context.Context, payload models.SyncPayload) bool {
	if len(payload.Courses) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(payload.Users) > 0 {
		s.snap.Users = payload.Users
	}
	s.snap.Courses = payload.Courses
	s.snap.Enrollments = payload.Enrollments
	if s.snap.Enrollments == nil {
		s.snap.Enrollments = []models.Enrollment{}
	}
	s.snap.Feedback = payload.Feedback
	if s.snap.Feedback == nil {
		s.snap.Feedback = []models.Feedback{}
	}

	s.persistLocked(ctx)
	return true
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// CurrentUser returns a copy of the session user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.CurrentUser == nil {
		return nil
	}
	u := *s.snap.CurrentUser
	return &u
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.snap); err != nil {
		// Local persistence is best-effort: the in-memory state stays
		// authoritative and the next mutation retries the write.
		s.logger.Error("failed to persist snapshot", "error", err)
	}
}

func (s *Store) publishLocked(operation string) {
	if s.publisher == nil {
		return
	}
	event := events.SnapshotChanged{
		Operation:  operation,
		OccurredAt: time.Now(),
		Payload:    s.snap.Payload(),
	}
	if err := s.publisher.PublishSnapshotChanged(event); err != nil {
		s.logger.Error("failed to publish snapshot event", "error", err, "operation", operation)
	}
}

package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ci-research/learninghub-service/internal/events"
	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewFallsBackToSeed(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	st := New(context.Background(), repo, nil, testLogger())

	snap := st.Snapshot()
	seed := models.SeedSnapshot()
	if len(snap.Users) != len(seed.Users) {
		t.Fatalf("expected %d seed users, got %d", len(seed.Users), len(snap.Users))
	}
	if len(snap.Courses) != len(seed.Courses) {
		t.Fatalf("expected %d seed courses, got %d", len(seed.Courses), len(snap.Courses))
	}
	if snap.CurrentUser != nil {
		t.Fatalf("seed snapshot should start logged out, got %v", snap.CurrentUser)
	}
}

func TestNewLoadsSavedSnapshot(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	saved := models.Snapshot{
		Users:       []models.User{{ID: "u1", Name: "Saved User", Role: models.RoleResearcher}},
		Courses:     []models.Course{{ID: "c1", Title: "Saved Course"}},
		Enrollments: []models.Enrollment{},
		Feedback:    []models.Feedback{},
	}
	if err := repo.Save(context.Background(), saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	st := New(context.Background(), repo, nil, testLogger())
	snap := st.Snapshot()
	if len(snap.Users) != 1 || snap.Users[0].ID != "u1" {
		t.Fatalf("expected saved users, got %+v", snap.Users)
	}
}

func TestMutatePersistsAndPublishes(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	st := New(context.Background(), repo, publisher, testLogger())

	err := st.Mutate(context.Background(), "add_course", func(snap *models.Snapshot) error {
		snap.Courses = append(snap.Courses, models.Course{ID: "new", Title: "New Course"})
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if st.Snapshot().CourseByID("new") == nil {
		t.Fatal("mutation not visible in snapshot")
	}

	persisted, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load after mutate: %v", err)
	}
	if persisted.CourseByID("new") == nil {
		t.Fatal("mutation not persisted")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	if published[0].Operation != "add_course" {
		t.Fatalf("unexpected operation %q", published[0].Operation)
	}
}

func TestMutateErrorLeavesSnapshotUntouched(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	st := New(context.Background(), repo, publisher, testLogger())

	before := st.Snapshot()
	boom := errors.New("precondition failed")

	err := st.Mutate(context.Background(), "add_course", func(snap *models.Snapshot) error {
		snap.Courses = nil // would be destructive if committed
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected precondition error, got %v", err)
	}

	after := st.Snapshot()
	if len(after.Courses) != len(before.Courses) {
		t.Fatal("failed mutation modified the snapshot")
	}
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Fatal("failed mutation published an event")
	}
}

func TestMutateSurvivesSaveFailure(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	repo.FailSave = errors.New("disk full")
	st := New(context.Background(), repo, nil, testLogger())

	err := st.Mutate(context.Background(), "add_course", func(snap *models.Snapshot) error {
		snap.Courses = append(snap.Courses, models.Course{ID: "new"})
		return nil
	})
	if err != nil {
		t.Fatalf("mutate should succeed despite save failure, got %v", err)
	}
	if st.Snapshot().CourseByID("new") == nil {
		t.Fatal("in-memory state lost after save failure")
	}
}

func TestApplyRemoteIgnoresEmptyCourses(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	st := New(context.Background(), repo, nil, testLogger())
	before := st.Snapshot()

	applied := st.ApplyRemote(context.Background(), models.SyncPayload{
		Users:   []models.User{{ID: "ghost"}},
		Courses: nil,
	})
	if applied {
		t.Fatal("payload without courses should not apply")
	}
	after := st.Snapshot()
	if len(after.Users) != len(before.Users) {
		t.Fatal("empty payload modified users")
	}
}

func TestApplyRemoteKeepsUsersWhenPulledListEmpty(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	st := New(context.Background(), repo, nil, testLogger())
	localUsers := len(st.Snapshot().Users)

	applied := st.ApplyRemote(context.Background(), models.SyncPayload{
		Courses: []models.Course{{ID: "remote-1", Title: "Remote Course"}},
	})
	if !applied {
		t.Fatal("payload with courses should apply")
	}

	snap := st.Snapshot()
	if len(snap.Users) != localUsers {
		t.Fatalf("local users should survive an empty pulled user list, got %d", len(snap.Users))
	}
	if len(snap.Courses) != 1 || snap.Courses[0].ID != "remote-1" {
		t.Fatalf("courses should be replaced wholesale, got %+v", snap.Courses)
	}
	if snap.Enrollments == nil || snap.Feedback == nil {
		t.Fatal("missing collections should come back empty, not nil")
	}
}

func TestApplyRemotePreservesSessionAndStaysQuiet(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	st := New(context.Background(), repo, publisher, testLogger())

	if err := st.Mutate(context.Background(), "login", func(snap *models.Snapshot) error {
		u := snap.Users[0]
		snap.CurrentUser = &u
		return nil
	}); err != nil {
		t.Fatalf("login mutation: %v", err)
	}
	eventsBefore := len(publisher.GetPublishedEvents())

	st.ApplyRemote(context.Background(), models.SyncPayload{
		Users:   []models.User{{ID: "r1", Name: "Remote"}},
		Courses: []models.Course{{ID: "rc1"}},
	})

	if st.CurrentUser() == nil {
		t.Fatal("pull must not end the local session")
	}
	if got := len(publisher.GetPublishedEvents()); got != eventsBefore {
		t.Fatalf("pull published %d extra events", got-eventsBefore)
	}
}

func TestSnapshotReturnsDeepCopy(t *testing.T) {
	repo := repositories.NewMemorySnapshotRepository()
	st := New(context.Background(), repo, nil, testLogger())

	snap := st.Snapshot()
	snap.Users[0].Points = -999

	if st.Snapshot().Users[0].Points == -999 {
		t.Fatal("Snapshot leaked a mutable reference")
	}
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/repositories"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore builds a store on the seed snapshot backed by an in-memory
// repository.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(context.Background(), repositories.NewMemorySnapshotRepository(), nil, testLogger())
}

// loginAs opens a session for one of the seed accounts.
func loginAs(t *testing.T, st *store.Store, email string) *models.User {
	t.Helper()
	auth := NewAuthService(st, testLogger(), validator.New())
	user, err := auth.Login(context.Background(), &LoginRequest{Email: email})
	if err != nil {
		t.Fatalf("login as %s: %v", email, err)
	}
	return user
}

// pointsOf reads a user's current point total from the store.
func pointsOf(t *testing.T, st *store.Store, userID string) int {
	t.Helper()
	snap := st.Snapshot()
	u := snap.UserByID(userID)
	if u == nil {
		t.Fatalf("user %s not found", userID)
	}
	return u.Points
}

// seedAdmins fills the users list with exactly n admins (plus the seed
// researchers), for exercising the promotion ceiling.
func seedAdmins(t *testing.T, st *store.Store, n int) {
	t.Helper()
	err := st.Mutate(context.Background(), "test_fixture", func(snap *models.Snapshot) error {
		users := make([]models.User, 0, n)
		for i := 0; i < n; i++ {
			users = append(users, models.User{
				ID:    fmt.Sprintf("adm-%d", i),
				Name:  fmt.Sprintf("Admin %d", i),
				Email: fmt.Sprintf("admin%d@research.ci", i),
				Role:  models.RoleAdmin,
			})
		}
		users = append(users, models.User{
			ID:    "res-1",
			Name:  "Plain Researcher",
			Email: "plain@research.ci",
			Role:  models.RoleResearcher,
		})
		snap.Users = users
		u := users[0]
		snap.CurrentUser = &u
		return nil
	})
	if err != nil {
		t.Fatalf("seed admins: %v", err)
	}
}

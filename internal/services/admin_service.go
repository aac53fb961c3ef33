package services

import (
	"context"
	"log/slog"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
)

type adminService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewAdminService(st *store.Store, logger *slog.Logger) AdminService {
	return &adminService{
		store:  st,
		logger: logger,
	}
}

// PromoteUser grants the ADMIN role, refusing once the ceiling is
// reached. The ceiling applies only here: loaded or pulled data is never
// re-checked against it.
func (s *adminService) PromoteUser(ctx context.Context, userID string) error {
	err := s.store.Mutate(ctx, "promote_user", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}
		if !current.IsAdmin() {
			return ErrAdminRequired
		}
		if snap.AdminCount() >= models.MaxAdmins {
			return ErrAdminLimitReached
		}

		target := snap.UserByID(userID)
		if target == nil {
			return ErrUserNotFound
		}
		target.Role = models.RoleAdmin
		if snap.CurrentUser.ID == userID {
			snap.CurrentUser.Role = models.RoleAdmin
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("user promoted", "user_id", userID)
	return nil
}

// DemoteUser unconditionally sets the RESEARCHER role. Demoting the last
// remaining admin is permitted; it locks administration out until a
// snapshot with an admin is restored, so it is logged loudly.
func (s *adminService) DemoteUser(ctx context.Context, userID string) error {
	var lastAdmin bool
	err := s.store.Mutate(ctx, "demote_user", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}
		if !current.IsAdmin() {
			return ErrAdminRequired
		}

		target := snap.UserByID(userID)
		if target == nil {
			return ErrUserNotFound
		}

		lastAdmin = target.Role == models.RoleAdmin && snap.AdminCount() == 1
		target.Role = models.RoleResearcher
		if snap.CurrentUser.ID == userID {
			snap.CurrentUser.Role = models.RoleResearcher
		}
		return nil
	})
	if err != nil {
		return err
	}

	if lastAdmin {
		s.logger.Warn("last admin demoted, no admin accounts remain", "user_id", userID)
	}
	s.logger.Info("user demoted", "user_id", userID)
	return nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	snap := s.store.Snapshot()
	return snap.Users, nil
}

// Stats aggregates the department view shown on the admin dashboard.
func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	snap := s.store.Snapshot()

	completions := 0
	for _, e := range snap.Enrollments {
		if e.Status == models.StatusFullyCompleted {
			completions++
		}
	}

	stats := &AdminStats{
		TotalUsers:       len(snap.Users),
		TotalCourses:     len(snap.Courses),
		TotalEnrollments: len(snap.Enrollments),
		TotalCompletions: completions,
		AdminCount:       snap.AdminCount(),
		AdminLimit:       models.MaxAdmins,
	}
	if stats.TotalUsers > 0 {
		stats.ParticipationRate = float64(stats.TotalEnrollments) / float64(stats.TotalUsers) * 100
		stats.AvgCoursesPerUser = float64(stats.TotalEnrollments) / float64(stats.TotalUsers)
	}

	return stats, nil
}

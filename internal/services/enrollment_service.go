package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

type enrollmentService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(st *store.Store, logger *slog.Logger, v *validator.Validator) EnrollmentService {
	return &enrollmentService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// UpdateEnrollment upserts the session user's enrollment for a course:
// one record per (user, course), updated in place on repeat calls.
// Completion points are awarded exactly on the transition into
// FULLY_COMPLETED from any other state; re-marking a completed course
// awards nothing further.
func (s *enrollmentService) UpdateEnrollment(ctx context.Context, courseID string, req *EnrollmentUpdateRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	status := models.EnrollmentStatus(req.Status)

	var result models.Enrollment
	err := s.store.Mutate(ctx, "update_enrollment", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}
		if snap.CourseByID(courseID) == nil {
			return ErrCourseNotFound
		}

		var existing *models.Enrollment
		for i := range snap.Enrollments {
			e := &snap.Enrollments[i]
			if e.CourseID == courseID && e.UserID == current.ID {
				existing = e
				break
			}
		}

		bump := 0
		if status == models.StatusFullyCompleted &&
			(existing == nil || existing.Status != models.StatusFullyCompleted) {
			bump = PointsCourseCompleted
		}

		if existing != nil {
			existing.Status = status
			existing.UpdatedAt = time.Now()
			result = *existing
		} else {
			result = models.Enrollment{
				ID:        uuid.NewString(),
				UserID:    current.ID,
				CourseID:  courseID,
				Status:    status,
				UpdatedAt: time.Now(),
			}
			snap.Enrollments = append(snap.Enrollments, result)
		}

		awardPoints(snap, current.ID, bump)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("enrollment updated", "course_id", courseID, "status", status)
	return &result, nil
}

// MyLearning splits the session user's enrollments into in-progress and
// completed buckets; history lists everything, most recently updated
// first.
func (s *enrollmentService) MyLearning(ctx context.Context) (*LearningResponse, error) {
	snap := s.store.Snapshot()
	if snap.CurrentUser == nil {
		return nil, ErrNotAuthenticated
	}

	mine := make([]LearningItem, 0)
	for _, e := range snap.Enrollments {
		if e.UserID != snap.CurrentUser.ID {
			continue
		}
		mine = append(mine, LearningItem{
			Enrollment: e,
			Course:     snap.CourseByID(e.CourseID),
		})
	}

	resp := &LearningResponse{
		InProgress: []LearningItem{},
		Completed:  []LearningItem{},
		History:    make([]LearningItem, len(mine)),
	}
	copy(resp.History, mine)
	sort.SliceStable(resp.History, func(i, j int) bool {
		return resp.History[i].Enrollment.UpdatedAt.After(resp.History[j].Enrollment.UpdatedAt)
	})

	for _, item := range mine {
		switch item.Enrollment.Status {
		case models.StatusInProgress, models.StatusPartiallyCompleted:
			resp.InProgress = append(resp.InProgress, item)
		case models.StatusFullyCompleted:
			resp.Completed = append(resp.Completed, item)
		}
	}

	return resp, nil
}

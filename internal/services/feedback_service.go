package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

type feedbackService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeedbackService(st *store.Store, logger *slog.Logger, v *validator.Validator) FeedbackService {
	return &feedbackService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// Add records a rating and comment from the session user and awards the
// feedback points. There is intentionally no uniqueness check: a user may
// leave several entries on the same course.
func (s *feedbackService) Add(ctx context.Context, courseID string, req *FeedbackCreateRequest) (*models.Feedback, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var created models.Feedback
	err := s.store.Mutate(ctx, "add_feedback", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}
		if snap.CourseByID(courseID) == nil {
			return ErrCourseNotFound
		}

		created = models.Feedback{
			ID:        uuid.NewString(),
			UserID:    current.ID,
			CourseID:  courseID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		}
		snap.Feedback = append(snap.Feedback, created)
		awardPoints(snap, current.ID, PointsFeedbackLeft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("feedback added", "course_id", courseID, "rating", created.Rating)
	return &created, nil
}

func (s *feedbackService) ListByCourse(ctx context.Context, courseID string) ([]models.Feedback, error) {
	snap := s.store.Snapshot()
	if snap.CourseByID(courseID) == nil {
		return nil, ErrCourseNotFound
	}

	out := make([]models.Feedback, 0)
	for _, f := range snap.Feedback {
		if f.CourseID == courseID {
			out = append(out, f)
		}
	}
	return out, nil
}

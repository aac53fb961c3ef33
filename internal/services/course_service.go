package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

type courseService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(st *store.Store, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// Add records a recommendation by the session user and awards them the
// recommendation points. Newest courses go to the front of the catalog.
func (s *courseService) Add(ctx context.Context, req *CourseCreateRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var created models.Course
	err := s.store.Mutate(ctx, "add_course", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}

		created = models.Course{
			ID:            uuid.NewString(),
			Title:         req.Title,
			Description:   req.Description,
			Link:          req.Link,
			Type:          models.CourseType(req.Type),
			Category:      req.Category,
			RecommendedBy: current.ID,
			CreatedAt:     time.Now(),
			Tags:          append([]string(nil), req.Tags...),
		}
		snap.Courses = append([]models.Course{created}, snap.Courses...)
		awardPoints(snap, current.ID, PointsCourseAdded)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course added", "course_id", created.ID, "title", created.Title)
	return &created, nil
}

// Remove deletes a course and cascades to every enrollment and feedback
// entry referencing it. Admins only.
func (s *courseService) Remove(ctx context.Context, courseID string) error {
	err := s.store.Mutate(ctx, "remove_course", func(snap *models.Snapshot) error {
		current, err := requireSession(snap)
		if err != nil {
			return err
		}
		if !current.IsAdmin() {
			return ErrAdminRequired
		}
		if snap.CourseByID(courseID) == nil {
			return ErrCourseNotFound
		}

		courses := snap.Courses[:0]
		for _, c := range snap.Courses {
			if c.ID != courseID {
				courses = append(courses, c)
			}
		}
		snap.Courses = courses

		enrollments := snap.Enrollments[:0]
		for _, e := range snap.Enrollments {
			if e.CourseID != courseID {
				enrollments = append(enrollments, e)
			}
		}
		snap.Enrollments = enrollments

		feedback := snap.Feedback[:0]
		for _, f := range snap.Feedback {
			if f.CourseID != courseID {
				feedback = append(feedback, f)
			}
		}
		snap.Feedback = feedback

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("course removed", "course_id", courseID)
	return nil
}

// Catalog filters by search term and category, then orders by newest
// first or by mean feedback rating.
func (s *courseService) Catalog(ctx context.Context, query CatalogQuery) (*CatalogResponse, error) {
	snap := s.store.Snapshot()

	search := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := make([]models.Course, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		if query.Category != "" && query.Category != "All" && c.Category != query.Category {
			continue
		}
		filtered = append(filtered, c)
	}

	if query.SortBy == "rating" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return meanOrZero(snap.Feedback, filtered[i].ID) > meanOrZero(snap.Feedback, filtered[j].ID)
		})
	} else {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	items := make([]CatalogCourse, 0, len(filtered))
	for _, c := range filtered {
		avg, count := averageRating(snap.Feedback, c.ID)

		item := CatalogCourse{
			Course:          c,
			AvgRating:       avg,
			FeedbackCount:   count,
			RecommenderName: "Unknown",
		}
		if rec := snap.UserByID(c.RecommendedBy); rec != nil {
			item.RecommenderName = rec.Name
		}
		if snap.CurrentUser != nil {
			for i := range snap.Enrollments {
				e := snap.Enrollments[i]
				if e.CourseID == c.ID && e.UserID == snap.CurrentUser.ID {
					status := e.Status
					item.MyStatus = &status
					break
				}
			}
		}
		items = append(items, item)
	}

	return &CatalogResponse{Courses: items, Total: len(items)}, nil
}

func (s *courseService) Categories() []string {
	return append([]string(nil), models.Categories...)
}

func meanOrZero(feedback []models.Feedback, courseID string) float64 {
	avg, _ := averageRating(feedback, courseID)
	if avg == nil {
		return 0
	}
	return *avg
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/validator"
)

func validCourseRequest() *CourseCreateRequest {
	return &CourseCreateRequest{
		Title:       "Statistics Refresher",
		Description: "Hypothesis testing from first principles.",
		Link:        "https://example.com/stats",
		Type:        string(models.CourseOnline),
		Category:    "Data Analysis",
		Tags:        []string{"stats"},
	}
}

func TestAddCourseRequiresSession(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())

	_, err := svc.Add(context.Background(), validCourseRequest())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if len(st.Snapshot().Courses) != 2 {
		t.Fatal("failed add changed the catalog")
	}
}

func TestAddCourseAwardsRecommendationPoints(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())
	bob := loginAs(t, st, "bob@research.ci")
	before := pointsOf(t, st, bob.ID)

	course, err := svc.Add(context.Background(), validCourseRequest())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if course.RecommendedBy != bob.ID {
		t.Fatalf("recommender should be the session user, got %s", course.RecommendedBy)
	}

	snap := st.Snapshot()
	if snap.Courses[0].ID != course.ID {
		t.Fatal("new course should lead the catalog")
	}
	if got := pointsOf(t, st, bob.ID); got != before+PointsCourseAdded {
		t.Fatalf("expected %d points, got %d", before+PointsCourseAdded, got)
	}
	if session := st.CurrentUser(); session.Points != before+PointsCourseAdded {
		t.Fatalf("session copy missed the award, got %d", session.Points)
	}
}

func TestRemoveCourseRequiresAdmin(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())
	loginAs(t, st, "bob@research.ci")

	err := svc.Remove(context.Background(), "c1")
	if !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if st.Snapshot().CourseByID("c1") == nil {
		t.Fatal("denied removal deleted the course")
	}
}

func TestRemoveCourseUnknownID(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())
	loginAs(t, st, "alice@research.ci")

	err := svc.Remove(context.Background(), "missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestRemoveCourseCascades(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())
	loginAs(t, st, "alice@research.ci")

	// Enrollments and feedback on both courses; only c1's rows may go.
	err := st.Mutate(context.Background(), "test_fixture", func(snap *models.Snapshot) error {
		snap.Enrollments = []models.Enrollment{
			{ID: "e1", UserID: "2", CourseID: "c1", Status: models.StatusInProgress},
			{ID: "e2", UserID: "3", CourseID: "c2", Status: models.StatusFullyCompleted},
		}
		snap.Feedback = []models.Feedback{
			{ID: "f1", UserID: "2", CourseID: "c1", Rating: 4},
			{ID: "f2", UserID: "3", CourseID: "c2", Rating: 5},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	if err := svc.Remove(context.Background(), "c1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	snap := st.Snapshot()
	if snap.CourseByID("c1") != nil {
		t.Fatal("course not removed")
	}
	if len(snap.Enrollments) != 1 || snap.Enrollments[0].ID != "e2" {
		t.Fatalf("cascade mishandled enrollments: %+v", snap.Enrollments)
	}
	if len(snap.Feedback) != 1 || snap.Feedback[0].ID != "f2" {
		t.Fatalf("cascade mishandled feedback: %+v", snap.Feedback)
	}
}

func TestCatalogSearchAndCategoryFilter(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())

	tests := []struct {
		name    string
		query   CatalogQuery
		wantIDs []string
	}{
		{
			name:    "no filter returns everything",
			query:   CatalogQuery{},
			wantIDs: []string{"c1", "c2"},
		},
		{
			name:    "search matches title",
			query:   CatalogQuery{Search: "python"},
			wantIDs: []string{"c2"},
		},
		{
			name:    "search matches description",
			query:   CatalogQuery{Search: "diffusion"},
			wantIDs: []string{"c1"},
		},
		{
			name:    "category filter",
			query:   CatalogQuery{Category: "Programming"},
			wantIDs: []string{"c2"},
		},
		{
			name:    "All category passes through",
			query:   CatalogQuery{Category: "All"},
			wantIDs: []string{"c1", "c2"},
		},
		{
			name:    "no match",
			query:   CatalogQuery{Search: "quantum"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Catalog(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("catalog: %v", err)
			}
			if resp.Total != len(tt.wantIDs) {
				t.Fatalf("expected %d courses, got %d", len(tt.wantIDs), resp.Total)
			}
			got := make(map[string]bool, len(resp.Courses))
			for _, c := range resp.Courses {
				got[c.ID] = true
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Fatalf("missing course %s in %v", id, resp.Courses)
				}
			}
		})
	}
}

func TestCatalogSortByRating(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())

	err := st.Mutate(context.Background(), "test_fixture", func(snap *models.Snapshot) error {
		snap.Feedback = []models.Feedback{
			{ID: "f1", UserID: "2", CourseID: "c1", Rating: 3},
			{ID: "f2", UserID: "3", CourseID: "c2", Rating: 5},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	resp, err := svc.Catalog(context.Background(), CatalogQuery{SortBy: "rating"})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if resp.Courses[0].ID != "c2" {
		t.Fatalf("highest rated course should lead, got %s", resp.Courses[0].ID)
	}
	if resp.Courses[0].AvgRating == nil || *resp.Courses[0].AvgRating != 5 {
		t.Fatalf("unexpected avg rating %v", resp.Courses[0].AvgRating)
	}
	if resp.Courses[0].FeedbackCount != 1 {
		t.Fatalf("unexpected feedback count %d", resp.Courses[0].FeedbackCount)
	}
}

func TestCatalogReportsSessionStatus(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())
	bob := loginAs(t, st, "bob@research.ci")

	err := st.Mutate(context.Background(), "test_fixture", func(snap *models.Snapshot) error {
		snap.Enrollments = []models.Enrollment{
			{ID: "e1", UserID: bob.ID, CourseID: "c1", Status: models.StatusInProgress},
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	resp, err := svc.Catalog(context.Background(), CatalogQuery{})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, c := range resp.Courses {
		switch c.ID {
		case "c1":
			if c.MyStatus == nil || *c.MyStatus != models.StatusInProgress {
				t.Fatalf("expected IN_PROGRESS on c1, got %v", c.MyStatus)
			}
		case "c2":
			if c.MyStatus != nil {
				t.Fatalf("expected no status on c2, got %v", c.MyStatus)
			}
		}
	}
}

func TestCategoriesReturnsSuggestionList(t *testing.T) {
	st := newTestStore(t)
	svc := NewCourseService(st, testLogger(), validator.New())

	got := svc.Categories()
	if len(got) != len(models.Categories) {
		t.Fatalf("expected %d categories, got %d", len(models.Categories), len(got))
	}
}

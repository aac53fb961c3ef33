package services

import (
	"context"
	"testing"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/validator"
)

// One researcher recommends a course, completes it and reviews it: the
// three awards accumulate on both the user record and the session copy.
func TestPointsAccumulateAcrossActivities(t *testing.T) {
	st := newTestStore(t)
	v := validator.New()
	courses := NewCourseService(st, testLogger(), v)
	enrollments := NewEnrollmentService(st, testLogger(), v)
	feedback := NewFeedbackService(st, testLogger(), v)

	bob := loginAs(t, st, "bob@research.ci")
	start := bob.Points

	course, err := courses.Add(context.Background(), &CourseCreateRequest{
		Title:    "MLOps in Practice",
		Link:     "https://example.com/mlops",
		Type:     string(models.CourseOnline),
		Category: "Machine Learning",
	})
	if err != nil {
		t.Fatalf("add course: %v", err)
	}

	if _, err := enrollments.UpdateEnrollment(context.Background(), course.ID, &EnrollmentUpdateRequest{
		Status: string(models.StatusFullyCompleted),
	}); err != nil {
		t.Fatalf("complete course: %v", err)
	}

	if _, err := feedback.Add(context.Background(), course.ID, &FeedbackCreateRequest{
		Rating:  5,
		Comment: "Worth every minute.",
	}); err != nil {
		t.Fatalf("add feedback: %v", err)
	}

	want := start + PointsCourseAdded + PointsCourseCompleted + PointsFeedbackLeft
	if got := pointsOf(t, st, bob.ID); got != want {
		t.Fatalf("expected %d points after the full flow, got %d", want, got)
	}
	if session := st.CurrentUser(); session.Points != want {
		t.Fatalf("session copy out of step: %d != %d", session.Points, want)
	}
}

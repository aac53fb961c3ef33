package models

import "time"

type EnrollmentStatus string

const (
	StatusNotStarted         EnrollmentStatus = "NOT_STARTED"
	StatusInProgress         EnrollmentStatus = "IN_PROGRESS"
	StatusPartiallyCompleted EnrollmentStatus = "PARTIALLY_COMPLETED"
	StatusFullyCompleted     EnrollmentStatus = "FULLY_COMPLETED"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusPartiallyCompleted, StatusFullyCompleted:
		return true
	}
	return false
}

// Enrollment tracks one user's progress on one course. At most one
// enrollment exists per (user, course) pair; writes upsert.
type Enrollment struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	CourseID  string           `json:"courseId"`
	Status    EnrollmentStatus `json:"status"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

package models

import "time"

// Feedback is immutable once created and removed only when its course is
// deleted. Multiple entries per (user, course) are permitted.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

package validator

// LoginRequest carries the only credential this system has: an email.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest creates a new researcher account.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// CourseCreateRequest carries caller-supplied course fields; the server
// assigns the identifier, timestamp and recommending user.
type CourseCreateRequest struct {
	Title       string   `json:"title" validate:"required,course_title"`
	Description string   `json:"description" validate:"max=2000"`
	Link        string   `json:"link" validate:"required,url"`
	Type        string   `json:"type" validate:"required,course_type"`
	Category    string   `json:"category" validate:"required,max=100"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// EnrollmentUpdateRequest sets the caller's progress on a course.
type EnrollmentUpdateRequest struct {
	Status string `json:"status" validate:"required,enrollment_status"`
}

// FeedbackCreateRequest leaves a rating and comment on a course.
type FeedbackCreateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

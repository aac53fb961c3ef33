package services

import (
	"context"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/validator"
)

// Point awards per mutation. Completion points are granted once per
// (user, course); the other two are unconditional.
const (
	PointsCourseAdded     = 20
	PointsCourseCompleted = 50
	PointsFeedbackLeft    = 5
)

// Use request DTOs from the validator package.
type LoginRequest = validator.LoginRequest
type RegisterRequest = validator.RegisterRequest
type CourseCreateRequest = validator.CourseCreateRequest
type EnrollmentUpdateRequest = validator.EnrollmentUpdateRequest
type FeedbackCreateRequest = validator.FeedbackCreateRequest

// ===== AUTH =====

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) *models.User
}

// ===== COURSES =====

// CatalogQuery filters and orders the course catalog.
type CatalogQuery struct {
	Search   string
	Category string // empty or "All" means no category filter
	SortBy   string // "latest" (default) or "rating"
}

type CatalogCourse struct {
	models.Course
	AvgRating       *float64                 `json:"avg_rating"`
	FeedbackCount   int                      `json:"feedback_count"`
	RecommenderName string                   `json:"recommender_name"`
	MyStatus        *models.EnrollmentStatus `json:"my_status"`
}

type CatalogResponse struct {
	Courses []CatalogCourse `json:"courses"`
	Total   int             `json:"total"`
}

type CourseService interface {
	Add(ctx context.Context, req *CourseCreateRequest) (*models.Course, error)
	Remove(ctx context.Context, courseID string) error
	Catalog(ctx context.Context, query CatalogQuery) (*CatalogResponse, error)
	Categories() []string
}

// ===== ENROLLMENTS =====

type LearningItem struct {
	Enrollment models.Enrollment `json:"enrollment"`
	Course     *models.Course    `json:"course"`
}

type LearningResponse struct {
	InProgress []LearningItem `json:"in_progress"`
	Completed  []LearningItem `json:"completed"`
	History    []LearningItem `json:"history"`
}

type EnrollmentService interface {
	UpdateEnrollment(ctx context.Context, courseID string, req *EnrollmentUpdateRequest) (*models.Enrollment, error)
	MyLearning(ctx context.Context) (*LearningResponse, error)
}

// ===== FEEDBACK =====

type FeedbackService interface {
	Add(ctx context.Context, courseID string, req *FeedbackCreateRequest) (*models.Feedback, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Feedback, error)
}

// ===== LEADERBOARD =====

type RankedUser struct {
	models.User
	Count int `json:"count,omitempty"`
}

type LeaderboardResponse struct {
	TopByPoints     []RankedUser `json:"top_by_points"`
	TopRecommenders []RankedUser `json:"top_recommenders"`
	TopCompleters   []RankedUser `json:"top_completers"`
}

type LeaderboardService interface {
	Leaderboard(ctx context.Context) (*LeaderboardResponse, error)
}

// ===== ADMIN =====

type AdminStats struct {
	TotalUsers        int     `json:"total_users"`
	TotalCourses      int     `json:"total_courses"`
	TotalEnrollments  int     `json:"total_enrollments"`
	TotalCompletions  int     `json:"total_completions"`
	AdminCount        int     `json:"admin_count"`
	AdminLimit        int     `json:"admin_limit"`
	ParticipationRate float64 `json:"participation_rate"`
	AvgCoursesPerUser float64 `json:"avg_courses_per_user"`
}

type AdminService interface {
	PromoteUser(ctx context.Context, userID string) error
	DemoteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	Stats(ctx context.Context) (*AdminStats, error)
}

// ===== EXPORT =====

type ExportService interface {
	SnapshotJSON(ctx context.Context) ([]byte, error)
	StatsWorkbook(ctx context.Context) ([]byte, error)
}

// ===== MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Enrollment() EnrollmentService
	Feedback() FeedbackService
	Leaderboard() LeaderboardService
	Admin() AdminService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

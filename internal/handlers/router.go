package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ci-research/learninghub-service/internal/cloudsync"
	"github.com/ci-research/learninghub-service/internal/metrics"
	"github.com/ci-research/learninghub-service/internal/services"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	courseHandler      *CourseHandler
	enrollmentHandler  *EnrollmentHandler
	feedbackHandler    *FeedbackHandler
	leaderboardHandler *LeaderboardHandler
	adminHandler       *AdminHandler
	syncHandler        *SyncHandler
	store              *store.Store
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	st *store.Store,
	syncer *cloudsync.Syncer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler:      NewCourseHandler(serviceManager.Course(), logger),
		enrollmentHandler:  NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		feedbackHandler:    NewFeedbackHandler(serviceManager.Feedback(), logger),
		leaderboardHandler: NewLeaderboardHandler(serviceManager.Leaderboard(), logger),
		adminHandler:       NewAdminHandler(serviceManager.Admin(), serviceManager.Export(), logger),
		syncHandler:        NewSyncHandler(syncer, st, logger),
		store:              st,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/healthz", HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Auth routes, open to everyone
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/session", hm.authHandler.Session)
		}

		// Catalog browsing is open; contributing requires a session
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/categories", hm.courseHandler.ListCategories)
			courses.GET("/:course_id/feedback", hm.feedbackHandler.ListFeedback)

			courses.POST("", SessionMiddleware(hm.store), hm.courseHandler.CreateCourse)
			courses.POST("/:course_id/feedback", SessionMiddleware(hm.store), hm.feedbackHandler.CreateFeedback)
			courses.DELETE("/:course_id", AdminMiddleware(hm.store), hm.courseHandler.DeleteCourse)
		}

		enrollments := v1.Group("/enrollments", SessionMiddleware(hm.store))
		{
			enrollments.PUT("/:course_id", hm.enrollmentHandler.UpdateEnrollment)
		}

		v1.GET("/my-learning", SessionMiddleware(hm.store), hm.enrollmentHandler.MyLearning)
		v1.GET("/leaderboard", hm.leaderboardHandler.GetLeaderboard)

		// Admin routes
		admin := v1.Group("/admin", AdminMiddleware(hm.store))
		{
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.POST("/users/:id/promote", hm.adminHandler.PromoteUser)
			admin.POST("/users/:id/demote", hm.adminHandler.DemoteUser)
			admin.GET("/stats", hm.adminHandler.GetStats)

			admin.GET("/export/json", hm.adminHandler.ExportJSON)
			admin.GET("/export/xlsx", hm.adminHandler.ExportWorkbook)

			admin.GET("/sync/status", hm.syncHandler.GetStatus)
			admin.POST("/sync/push", hm.syncHandler.TriggerPush)
			admin.POST("/sync/pull", hm.syncHandler.TriggerPull)
		}
	}
}

// HealthCheck endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "learninghub-service",
	})
}

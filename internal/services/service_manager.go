package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ci-research/learninghub-service/internal/cache"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	store     *store.Store
	cache     *cache.CacheHelper
	logger    *slog.Logger
	validator *validator.Validator

	authService        AuthService
	courseService      CourseService
	enrollmentService  EnrollmentService
	feedbackService    FeedbackService
	leaderboardService LeaderboardService
	adminService       AdminService
	exportService      ExportService

	initialized bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(st *store.Store, cacheHelper *cache.CacheHelper, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		store:     st,
		cache:     cacheHelper,
		logger:    logger,
		validator: v,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.store, sm.logger, sm.validator)
	sm.courseService = NewCourseService(sm.store, sm.logger, sm.validator)
	sm.enrollmentService = NewEnrollmentService(sm.store, sm.logger, sm.validator)
	sm.feedbackService = NewFeedbackService(sm.store, sm.logger, sm.validator)
	sm.leaderboardService = NewLeaderboardService(sm.store, sm.cache, sm.logger)
	sm.adminService = NewAdminService(sm.store, sm.logger)
	sm.exportService = NewExportService(sm.store, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	sm.initialized = false
	sm.logger.Info("Service manager shut down")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.enrollmentService
}

func (sm *serviceManager) Feedback() FeedbackService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.feedbackService
}

func (sm *serviceManager) Leaderboard() LeaderboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.leaderboardService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.adminService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

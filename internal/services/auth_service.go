package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/store"
	"github.com/ci-research/learninghub-service/internal/validator"
)

type authService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(st *store.Store, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		store:     st,
		logger:    logger,
		validator: v,
	}
}

// Login matches the email case-insensitively and opens a session. There
// is no password or credential check of any kind in this system.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var logged models.User
	err := s.store.Mutate(ctx, "login", func(snap *models.Snapshot) error {
		for i := range snap.Users {
			if strings.EqualFold(snap.Users[i].Email, req.Email) {
				u := snap.Users[i]
				snap.CurrentUser = &u
				logged = u
				return nil
			}
		}
		return ErrInvalidEmail
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", logged.ID)
	return &logged, nil
}

// Register creates a researcher account with zero points and opens a
// session for it. Duplicate emails are rejected here, not left to the
// caller.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var created models.User
	err := s.store.Mutate(ctx, "register", func(snap *models.Snapshot) error {
		for i := range snap.Users {
			if strings.EqualFold(snap.Users[i].Email, req.Email) {
				return ErrEmailTaken
			}
		}

		created = models.User{
			ID:         uuid.NewString(),
			Name:       req.Name,
			Email:      req.Email,
			Role:       models.RoleResearcher,
			Points:     0,
			JoinedDate: time.Now(),
		}
		snap.Users = append(snap.Users, created)
		u := created
		snap.CurrentUser = &u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return &created, nil
}

// Logout clears the session and nothing else.
func (s *authService) Logout(ctx context.Context) error {
	return s.store.Mutate(ctx, "logout", func(snap *models.Snapshot) error {
		snap.CurrentUser = nil
		return nil
	})
}

func (s *authService) Session(ctx context.Context) *models.User {
	return s.store.CurrentUser()
}

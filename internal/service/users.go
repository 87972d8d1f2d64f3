package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/filmshelf/filmshelf/internal/domain"
	domainerrors "github.com/filmshelf/filmshelf/internal/errors"
	"github.com/filmshelf/filmshelf/internal/store"
	"github.com/filmshelf/filmshelf/internal/validation"
)

// UserService manages catalog owners and session selection.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateUser registers a new username. Surrounding whitespace is trimmed.
func (s *UserService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	req := domain.NewUserRequest{Username: domain.NormalizeUsername(username)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return nil, domainerrors.AlreadyExistsf("user %q already exists", req.Username)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create user")
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListUsers returns every user ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

// SelectUser starts a session for an existing username.
func (s *UserService) SelectUser(ctx context.Context, username string) (domain.Session, error) {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.NewSession(user), nil
}

// DeleteUser removes a user together with all of their movies.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return domainerrors.NotFoundf("user %q not found", user.Username)
		}
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete user")
	}

	s.logger.Info("user deleted", "user_id", user.ID, "username", user.Username)
	return nil
}

func (s *UserService) getUser(ctx context.Context, username string) (*domain.User, error) {
	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, domainerrors.Validation("username is required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFoundf("user %q not found", username)
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to look up user")
	}
	return user, nil
}

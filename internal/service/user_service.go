package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"helpdesk/internal/cache"
	apperrors "helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateUserInput is a partial admin update; nil fields are untouched. Role
// changes happen only here: the admin edit path is the single exception to
// role immutability.
type UpdateUserInput struct {
	Email    *string
	Role     *model.Role
	Password *string
}

// UserService exposes the admin-facing user management operations.
type UserService interface {
	CreateUser(ctx context.Context, username, email, password string, role model.Role) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	auth  AuthService
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, auth AuthService, cache *cache.Client) UserService {
	return &userService{repo: repo, auth: auth, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// CreateUser provisions a user with an explicit role. The registration path
// reuses this through AuthService with the role pinned to client.
func (s *userService) CreateUser(ctx context.Context, username, email, password string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}
	user, err := s.auth.Register(ctx, username, email, password, role)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies an admin edit, including the role and a password reset.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperrors.NewValidationError("role", "unknown role")
		}
		user.Role = *in.Role
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

// DeleteUser removes a user; their tickets, comments, and notifications go
// with them while tickets assigned to them lose only the assignee.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

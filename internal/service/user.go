package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/event"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/pagination"
)

const minPasswordLength = 8

// UserService implements the business logic for user operations.
type UserService struct {
	repo     repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateUserInput holds the parameters for creating a user.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// UpdateUserInput holds the parameters for updating a user.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *string
}

// CreateUser creates a new user with a bcrypt password hash. The plaintext
// password is never stored.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid role %q", role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserCreated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.created event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)

	return user, nil
}

// GetUser retrieves a user by their ID, with their order count.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email, with their order count.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// ListUsers returns a page of users with pagination metadata.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, *pagination.Meta, error) {
	params := pagination.Params{Page: page, Limit: limit}.Normalize()

	users, total, err := s.repo.List(ctx, params.Page, params.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}

	meta := pagination.NewMeta(params, total)
	return users, &meta, nil
}

// UpdateUser applies partial updates to an existing user. A new password is
// re-hashed before storage.
func (s *UserService) UpdateUser(ctx context.Context, id string, input *UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	if input.Email != nil {
		if *input.Email == "" {
			return nil, apperrors.InvalidInput("email must not be empty")
		}
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		user.Name = *input.Name
	}

	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if input.Role != nil {
		if !domain.IsValidRole(*input.Role) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid role %q", *input.Role))
		}
		user.Role = *input.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// DeleteUser removes a user by their ID.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id),
	)

	return nil
}

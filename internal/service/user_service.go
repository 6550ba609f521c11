package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

type CreateUserInput struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     domain.Role
}

// UpdateUserInput carries the fields to change. Nil fields are left alone.
type UpdateUserInput struct {
	Name     *string `validate:"omitempty,min=3"`
	Email    *string `validate:"omitempty,email"`
	Role     *domain.Role
	Password *string `validate:"omitempty,min=6"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and stores a new user. The role defaults to
// domain.RoleUser.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := checkInput(input); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if err := s.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UUID:         uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// ensureEmailFree fails with domain.ErrConflict when email belongs to a user
// other than ownerID.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, ownerID uint) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking email: %w", err)
	case existing.ID != ownerID:
		return fmt.Errorf("%w: email already in use", domain.ErrConflict)
	}
	return nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) FindByPublicID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByUUID(ctx, id)
}

// ListByRole returns the 1-indexed page of users holding role. An empty role
// lists everyone.
func (s *UserService) ListByRole(ctx context.Context, page int, role domain.Role) (*domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if role != "" && !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	offset := (page - 1) * domain.UserPageSize
	users, total, err := s.userRepo.ListByRole(ctx, role, domain.UserPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return &domain.UserPage{
		Users:      users,
		TotalCount: total,
		Page:       page,
	}, nil
}

// Update applies input to the user identified by id. The stored digest only
// changes when a password is supplied that does not already match it.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		email := *input.Email
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Password != nil && !s.hasher.Verify(*input.Password, user.PasswordHash) {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = digest
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.DeleteByUUID(ctx, id)
}

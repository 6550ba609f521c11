package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
)

type AuthService struct {
	users  *UserService
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewAuthService(users *UserService, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login checks the credentials and issues a session token. Unknown emails
// and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Subject{ID: user.UUID, Role: user.Role})
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Register creates a regular user. Callers are expected to have checked that
// the principal may create users.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.users.Create(ctx, CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     domain.RoleUser,
	})
}

// SeedAdmin creates the first administrator. If a user with email already
// exists it is returned untouched and created is false.
func (s *AuthService) SeedAdmin(ctx context.Context, input RegisterInput) (user *domain.User, created bool, err error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("looking up seed admin: %w", err)
	}

	user, err = s.users.Create(ctx, CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

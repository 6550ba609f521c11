package service_test

import (
	"context"
	"testing"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/service"
	"github.com/dom/members-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		AsAdmin().
		Build(t, db)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "login@example.com", password: password},
		{name: "email is case insensitive", email: "Login@Example.com", password: password},
		{name: "wrong password", email: "login@example.com", password: "not-the-password", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: password, wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := services.Auth.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.UUID, result.User.UUID)

			subject, err := services.Tokens.Verify(result.Token)
			require.NoError(t, err)
			assert.Equal(t, user.UUID, subject.ID)
			assert.Equal(t, domain.RoleAdmin, subject.Role)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	services, _ := newServices(t)
	ctx := context.Background()

	user, err := services.Auth.Register(ctx, service.RegisterInput{
		Name:     "Registered",
		Email:    "registered@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	_, err = services.Auth.Register(ctx, service.RegisterInput{
		Name:     "Again",
		Email:    "registered@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	result, err := services.Auth.Login(ctx, "registered@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.UUID, result.User.UUID)
}

func TestAuthService_SeedAdmin(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()

	input := service.RegisterInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "admin-password",
	}

	first, created, err := services.Auth.SeedAdmin(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RoleAdmin, first.Role)

	second, created, err := services.Auth.SeedAdmin(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.UUID, second.UUID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthService_SeedAdminValidatesInput(t *testing.T) {
	services, db := newServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input service.RegisterInput
	}{
		{name: "empty name", input: service.RegisterInput{Name: "", Email: "admin@example.com", Password: "admin-password"}},
		{name: "malformed email", input: service.RegisterInput{Name: "Admin", Email: "not-an-email", Password: "admin-password"}},
		{name: "password too short to log in with", input: service.RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "adm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, created, err := services.Auth.SeedAdmin(ctx, tt.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.False(t, created)
			assert.Nil(t, user)
		})
	}

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

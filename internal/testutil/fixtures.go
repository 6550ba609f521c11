package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleUser,
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	return b.WithRole(domain.RoleAdmin)
}

// Build creates the user in the database and returns the user with the raw
// password. Digests use the minimum bcrypt cost to keep tests fast.
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		UUID:         uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// LoginResponse matches the API login response
type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

// BuildAndAuthenticate creates the user and logs in through the API,
// returning the user and its session token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB)
	return user, Login(t, ts, user.Email, password)
}

// Login posts credentials and returns the issued token.
func Login(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status code: %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return loginResp.Token
}

// IssueToken signs a token for user without going through login.
func IssueToken(t *testing.T, ts *TestServer, user *domain.User) string {
	t.Helper()

	token, err := ts.Services.Tokens.Issue(auth.Subject{ID: user.UUID, Role: user.Role})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// ModuleBuilder creates test modules with a builder pattern
type ModuleBuilder struct {
	title       string
	description string
	coverURL    string
}

func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{
		title:       fmt.Sprintf("Module %s", uuid.New().String()[:8]),
		description: "A module used by the test suite",
		coverURL:    "https://cdn.example.com/cover.png",
	}
}

func (b *ModuleBuilder) WithTitle(title string) *ModuleBuilder {
	b.title = title
	return b
}

func (b *ModuleBuilder) Build(t *testing.T, db *gorm.DB) *domain.Module {
	t.Helper()

	module := &domain.Module{
		Title:       b.title,
		Description: b.description,
		CoverURL:    b.coverURL,
	}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("failed to create module: %v", err)
	}
	return module
}

// LessonBuilder creates test lessons with a builder pattern
type LessonBuilder struct {
	module   *domain.Module
	title    string
	platform domain.Platform
}

func NewLessonBuilder() *LessonBuilder {
	return &LessonBuilder{
		title:    fmt.Sprintf("Lesson %s", uuid.New().String()[:8]),
		platform: domain.PlatformYouTube,
	}
}

func (b *LessonBuilder) WithModule(module *domain.Module) *LessonBuilder {
	b.module = module
	return b
}

func (b *LessonBuilder) WithPlatform(platform domain.Platform) *LessonBuilder {
	b.platform = platform
	return b
}

// Build creates the lesson, creating a parent module first if none was set.
func (b *LessonBuilder) Build(t *testing.T, db *gorm.DB) *domain.Lesson {
	t.Helper()

	if b.module == nil {
		b.module = NewModuleBuilder().Build(t, db)
	}

	lesson := &domain.Lesson{
		Title:       b.title,
		Description: "A lesson used by the test suite",
		Video:       "https://video.example.com/watch/1",
		Platform:    b.platform,
		ModuleID:    b.module.ID,
	}
	if err := db.Omit("Module").Create(lesson).Error; err != nil {
		t.Fatalf("failed to create lesson: %v", err)
	}
	return lesson
}

// BannerBuilder creates test banners with a builder pattern
type BannerBuilder struct {
	title string
}

func NewBannerBuilder() *BannerBuilder {
	return &BannerBuilder{title: fmt.Sprintf("Banner %s", uuid.New().String()[:8])}
}

func (b *BannerBuilder) WithTitle(title string) *BannerBuilder {
	b.title = title
	return b
}

func (b *BannerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Banner {
	t.Helper()

	banner := &domain.Banner{
		Title:    b.title,
		Link:     "https://example.com/promo",
		ImageURL: "https://cdn.example.com/banner.png",
	}
	if err := db.Create(banner).Error; err != nil {
		t.Fatalf("failed to create banner: %v", err)
	}
	return banner
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req with the default client and fails the test on transport errors.
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() {
		resp.Body.Close()
	})
	return resp
}

package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/members-api/internal/api"
	"github.com/dom/members-api/internal/api/middleware"
	"github.com/dom/members-api/internal/config"
	"github.com/dom/members-api/internal/logging"
	"github.com/dom/members-api/internal/repository"
	"github.com/dom/members-api/internal/repository/gormstore"
	"github.com/dom/members-api/internal/service"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// NewTestStore opens a private in-memory SQLite store with foreign keys on.
// The database lives as long as its single pooled connection.
func NewTestStore(t *testing.T) *gormstore.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	store, err := gormstore.Open(gormstore.Options{
		Driver:         gormstore.DriverSQLite,
		DSN:            dsn,
		MaxOpenConns:   1,
		MaxIdleConns:   1,
		AcquireTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	Store     *gormstore.Store
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL container and opens a migrated store on it.
// It skips under -short.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_members"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	store, err := gormstore.Open(gormstore.Options{
		Driver:         gormstore.DriverPostgres,
		DSN:            dsn,
		MaxOpenConns:   5,
		AcquireTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open postgres store: %v", err)
	}

	testDB.Store = store
	testDB.DB = store.DB()
	testDB.DSN = dsn
	return testDB
}

// Cleanup closes the store and terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Store != nil {
		tdb.Store.Close()
	}
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	err := tdb.DB.Exec("TRUNCATE TABLE watched_lessons, lessons, modules, banners, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		MaxBodyBytes:       100 * 1024,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "error",
		LogFormat:          "text",
		DBDriver:           gormstore.DriverSQLite,
		DBMaxOpenConns:     1,
		DBMaxIdleConns:     1,
		DBAcquireTimeout:   5 * time.Second,
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpiration:      time.Hour,
		LoginRateLimit:     10,
		LoginRateWindow:    time.Minute,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Store    *gormstore.Store
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by an in-memory store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithExtras(t, api.Extras{})
}

// NewThrottledTestServer is NewTestServer with login throttling enabled.
func NewThrottledTestServer(t *testing.T, limiter *middleware.LoginLimiter) *TestServer {
	t.Helper()
	return NewTestServerWithExtras(t, api.Extras{Limiter: limiter})
}

func NewTestServerWithExtras(t *testing.T, extras api.Extras) *TestServer {
	t.Helper()

	store := NewTestStore(t)
	cfg := TestConfig()

	repos := store.Repositories()
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, store, cfg, logging.Discard(), extras)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    store,
		DB:       store.DB(),
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s%s%s", ts.Server.URL, api.APIPrefix, path)
}

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dom/members-api/internal/config"
	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	// AcquireTimeout bounds every store operation, including the wait for a
	// free pooled connection.
	AcquireTimeout time.Duration
	Logger         logger.Interface
}

// OptionsFromConfig maps the DB_* settings onto Options.
func OptionsFromConfig(cfg *config.Config, gormLogger logger.Interface) Options {
	return Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		AcquireTimeout:  cfg.DBAcquireTimeout,
		Logger:          gormLogger,
	}
}

// Store owns the connection pool. It is created by Open and must be released
// with Close.
type Store struct {
	db             *gorm.DB
	acquireTimeout time.Duration
}

// Open connects, sizes the pool and migrates the schema.
func Open(opts Options) (*Store, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	timeout := opts.AcquireTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Store{db: db, acquireTimeout: timeout}
	if opts.Driver == DriverSQLite {
		if err := s.checkForeignKeys(); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}
	if err := s.Migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// sqliteDSN forces foreign key enforcement on every connection the driver
// opens. Cascades and lesson to module references depend on it.
func sqliteDSN(dsn string) string {
	path, query, _ := strings.Cut(dsn, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
	}
	params.Del("_fk")
	params.Set("_foreign_keys", "on")
	return path + "?" + params.Encode()
}

func (s *Store) checkForeignKeys() error {
	var enabled int
	if err := s.db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		return fmt.Errorf("reading sqlite foreign_keys: %w", err)
	}
	if enabled != 1 {
		return errors.New("sqlite foreign key enforcement is off")
	}
	return nil
}

// Migrate creates or alters the tables. Parents are listed before children so
// foreign keys resolve.
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.Module{},
		&domain.Lesson{},
		&domain.Banner{},
		&domain.WatchedLesson{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Close drains the pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.acquireTimeout)
	defer cancel()
	return translate(sqlDB.PingContext(ctx))
}

// DB exposes the underlying handle for fixtures and maintenance tasks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// session detaches the operation from request cancellation and bounds it by
// the acquire timeout instead.
func (s *Store) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.acquireTimeout)
	return s.db.WithContext(ctx), cancel
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:          NewUserRepository(s),
		Module:        NewModuleRepository(s),
		Lesson:        NewLessonRepository(s),
		Banner:        NewBannerRepository(s),
		WatchedLesson: NewWatchedLessonRepository(s),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate key", domain.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced row missing", domain.ErrNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	default:
		return err
	}
}

package repository

import (
	"context"

	"github.com/dom/members-api/internal/domain"
	"github.com/google/uuid"
)

// Implementations return domain.ErrNotFound for missing rows,
// domain.ErrConflict for uniqueness violations and domain.ErrStoreUnavailable
// when no connection could be acquired in time.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	DeleteByUUID(ctx context.Context, id uuid.UUID) error
}

type ModuleRepository interface {
	Create(ctx context.Context, module *domain.Module) error
	GetByID(ctx context.Context, id uint) (*domain.Module, error)
	GetAll(ctx context.Context) ([]*domain.Module, error)
	Update(ctx context.Context, module *domain.Module) error
	Delete(ctx context.Context, id uint) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	GetByID(ctx context.Context, id uint) (*domain.Lesson, error)
	GetByModuleID(ctx context.Context, moduleID uint) ([]*domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id uint) error
}

type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id uint) (*domain.Banner, error)
	GetAll(ctx context.Context) ([]*domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id uint) error
}

type WatchedLessonRepository interface {
	Create(ctx context.Context, watched *domain.WatchedLesson) error
	GetByUserID(ctx context.Context, userID uint) ([]*domain.WatchedLesson, error)
}

type Repositories struct {
	User          UserRepository
	Module        ModuleRepository
	Lesson        LessonRepository
	Banner        BannerRepository
	WatchedLesson WatchedLessonRepository
}

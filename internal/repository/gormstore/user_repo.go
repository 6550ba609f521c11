package gormstore

import (
	"context"

	"github.com/dom/members-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *userRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Create(user).Error)
}

func (r *userRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	var user domain.User
	if err := db.First(&user, "uuid = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	var user domain.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListByRole returns one page of users ordered by id and the total number of
// matching rows. An empty role matches every user.
func (r *userRepository) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, int64, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	filtered := func() *gorm.DB {
		q := db.Model(&domain.User{})
		if role != "" {
			q = q.Where("role = ?", role)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	users := []*domain.User{}
	err := filtered().
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Save(user).Error)
}

func (r *userRepository) DeleteByUUID(ctx context.Context, id uuid.UUID) error {
	db, cancel := r.store.session(ctx)
	defer cancel()

	res := db.Delete(&domain.User{}, "uuid = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

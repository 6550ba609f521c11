package gormstore

import (
	"context"

	"github.com/dom/members-api/internal/domain"
)

type lessonRepository struct {
	store *Store
}

func NewLessonRepository(store *Store) *lessonRepository {
	return &lessonRepository{store: store}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Omit("Module").Create(lesson).Error)
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	var lesson domain.Lesson
	if err := db.First(&lesson, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &lesson, nil
}

func (r *lessonRepository) GetByModuleID(ctx context.Context, moduleID uint) ([]*domain.Lesson, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	lessons := []*domain.Lesson{}
	err := db.
		Where("module_id = ?", moduleID).
		Order("id ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, translate(err)
	}
	return lessons, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Omit("Module").Save(lesson).Error)
}

func (r *lessonRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.store.session(ctx)
	defer cancel()

	res := db.Delete(&domain.Lesson{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

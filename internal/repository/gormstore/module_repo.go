package gormstore

import (
	"context"

	"github.com/dom/members-api/internal/domain"
)

type moduleRepository struct {
	store *Store
}

func NewModuleRepository(store *Store) *moduleRepository {
	return &moduleRepository{store: store}
}

func (r *moduleRepository) Create(ctx context.Context, module *domain.Module) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Create(module).Error)
}

func (r *moduleRepository) GetByID(ctx context.Context, id uint) (*domain.Module, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	var module domain.Module
	if err := db.First(&module, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &module, nil
}

func (r *moduleRepository) GetAll(ctx context.Context) ([]*domain.Module, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	modules := []*domain.Module{}
	if err := db.Order("id ASC").Find(&modules).Error; err != nil {
		return nil, translate(err)
	}
	return modules, nil
}

func (r *moduleRepository) Update(ctx context.Context, module *domain.Module) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Save(module).Error)
}

// Delete removes the module; its lessons go with it through the foreign key.
func (r *moduleRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.store.session(ctx)
	defer cancel()

	res := db.Delete(&domain.Module{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

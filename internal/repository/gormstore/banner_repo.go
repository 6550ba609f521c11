package gormstore

import (
	"context"

	"github.com/dom/members-api/internal/domain"
)

type bannerRepository struct {
	store *Store
}

func NewBannerRepository(store *Store) *bannerRepository {
	return &bannerRepository{store: store}
}

func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Create(banner).Error)
}

func (r *bannerRepository) GetByID(ctx context.Context, id uint) (*domain.Banner, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	var banner domain.Banner
	if err := db.First(&banner, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &banner, nil
}

func (r *bannerRepository) GetAll(ctx context.Context) ([]*domain.Banner, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	banners := []*domain.Banner{}
	if err := db.Order("id ASC").Find(&banners).Error; err != nil {
		return nil, translate(err)
	}
	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Save(banner).Error)
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	db, cancel := r.store.session(ctx)
	defer cancel()

	res := db.Delete(&domain.Banner{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

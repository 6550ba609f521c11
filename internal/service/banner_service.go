package service

import (
	"context"
	"fmt"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
)

type BannerService struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

type BannerInput struct {
	Title    string
	Link     string
	ImageURL string
}

type BannerUpdate struct {
	Title    *string
	Link     *string
	ImageURL *string
}

func (s *BannerService) Create(ctx context.Context, input BannerInput) (*domain.Banner, error) {
	banner := &domain.Banner{
		Title:    input.Title,
		Link:     input.Link,
		ImageURL: input.ImageURL,
	}
	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("creating banner: %w", err)
	}
	return banner, nil
}

func (s *BannerService) Get(ctx context.Context, id uint) (*domain.Banner, error) {
	return s.bannerRepo.GetByID(ctx, id)
}

func (s *BannerService) ListAll(ctx context.Context) ([]*domain.Banner, error) {
	return s.bannerRepo.GetAll(ctx)
}

func (s *BannerService) Update(ctx context.Context, id uint, input BannerUpdate) (*domain.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		banner.Title = *input.Title
	}
	if input.Link != nil {
		banner.Link = *input.Link
	}
	if input.ImageURL != nil {
		banner.ImageURL = *input.ImageURL
	}

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("updating banner: %w", err)
	}
	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id uint) error {
	return s.bannerRepo.Delete(ctx, id)
}

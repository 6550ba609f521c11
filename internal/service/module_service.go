package service

import (
	"context"
	"fmt"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
)

type ModuleService struct {
	moduleRepo repository.ModuleRepository
	lessonRepo repository.LessonRepository
}

func NewModuleService(moduleRepo repository.ModuleRepository, lessonRepo repository.LessonRepository) *ModuleService {
	return &ModuleService{
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

type ModuleInput struct {
	Title         string
	Description   string
	CoverURL      string
	VideoCoverURL *string
}

type ModuleUpdate struct {
	Title         *string
	Description   *string
	CoverURL      *string
	VideoCoverURL *string
}

func (s *ModuleService) Create(ctx context.Context, input ModuleInput) (*domain.Module, error) {
	module := &domain.Module{
		Title:         input.Title,
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		VideoCoverURL: input.VideoCoverURL,
	}
	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, fmt.Errorf("creating module: %w", err)
	}
	return module, nil
}

func (s *ModuleService) Get(ctx context.Context, id uint) (*domain.Module, error) {
	return s.moduleRepo.GetByID(ctx, id)
}

func (s *ModuleService) ListAll(ctx context.Context) ([]*domain.Module, error) {
	return s.moduleRepo.GetAll(ctx)
}

func (s *ModuleService) Update(ctx context.Context, id uint, input ModuleUpdate) (*domain.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		module.Title = *input.Title
	}
	if input.Description != nil {
		module.Description = *input.Description
	}
	if input.CoverURL != nil {
		module.CoverURL = *input.CoverURL
	}
	if input.VideoCoverURL != nil {
		module.VideoCoverURL = input.VideoCoverURL
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, fmt.Errorf("updating module: %w", err)
	}
	return module, nil
}

// Delete removes the module together with all of its lessons.
func (s *ModuleService) Delete(ctx context.Context, id uint) error {
	return s.moduleRepo.Delete(ctx, id)
}

// ListLessons returns the module's lessons. A module without lessons yields
// an empty slice; a missing module yields domain.ErrNotFound.
func (s *ModuleService) ListLessons(ctx context.Context, id uint) ([]*domain.Lesson, error) {
	if _, err := s.moduleRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.lessonRepo.GetByModuleID(ctx, id)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
)

type LessonService struct {
	lessonRepo repository.LessonRepository
	moduleRepo repository.ModuleRepository
}

func NewLessonService(lessonRepo repository.LessonRepository, moduleRepo repository.ModuleRepository) *LessonService {
	return &LessonService{
		lessonRepo: lessonRepo,
		moduleRepo: moduleRepo,
	}
}

type LessonInput struct {
	Title       string
	Description string
	Video       string
	Platform    domain.Platform
	ModuleID    uint
}

type LessonUpdate struct {
	Title       *string
	Description *string
	Video       *string
	Platform    *domain.Platform
	ModuleID    *uint
}

func (s *LessonService) Create(ctx context.Context, input LessonInput) (*domain.Lesson, error) {
	if !input.Platform.IsValid() {
		return nil, fmt.Errorf("%w: unknown platform %q", domain.ErrValidation, input.Platform)
	}
	if err := s.requireModule(ctx, input.ModuleID); err != nil {
		return nil, err
	}

	lesson := &domain.Lesson{
		Title:       input.Title,
		Description: input.Description,
		Video:       input.Video,
		Platform:    input.Platform,
		ModuleID:    input.ModuleID,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("creating lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) requireModule(ctx context.Context, moduleID uint) error {
	_, err := s.moduleRepo.GetByID(ctx, moduleID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("module %d: %w", moduleID, domain.ErrNotFound)
	}
	return err
}

func (s *LessonService) Get(ctx context.Context, id uint) (*domain.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

func (s *LessonService) Update(ctx context.Context, id uint, input LessonUpdate) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Description != nil {
		lesson.Description = *input.Description
	}
	if input.Video != nil {
		lesson.Video = *input.Video
	}
	if input.Platform != nil {
		if !input.Platform.IsValid() {
			return nil, fmt.Errorf("%w: unknown platform %q", domain.ErrValidation, *input.Platform)
		}
		lesson.Platform = *input.Platform
	}
	if input.ModuleID != nil && *input.ModuleID != lesson.ModuleID {
		if err := s.requireModule(ctx, *input.ModuleID); err != nil {
			return nil, err
		}
		lesson.ModuleID = *input.ModuleID
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("updating lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) Delete(ctx context.Context, id uint) error {
	return s.lessonRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/repository"
)

// WatchService keeps the per-user history of viewed lessons.
type WatchService struct {
	watchedRepo repository.WatchedLessonRepository
	lessonRepo  repository.LessonRepository
	now         func() time.Time
}

func NewWatchService(watchedRepo repository.WatchedLessonRepository, lessonRepo repository.LessonRepository) *WatchService {
	return &WatchService{
		watchedRepo: watchedRepo,
		lessonRepo:  lessonRepo,
		now:         time.Now,
	}
}

// MarkWatched appends a history entry. Watching the same lesson twice
// records two entries.
func (s *WatchService) MarkWatched(ctx context.Context, userID, lessonID uint) (*domain.WatchedLesson, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}

	watched := &domain.WatchedLesson{
		UserID:    userID,
		LessonID:  lessonID,
		WatchedAt: s.now().UTC(),
	}
	if err := s.watchedRepo.Create(ctx, watched); err != nil {
		return nil, fmt.Errorf("recording watched lesson: %w", err)
	}
	return watched, nil
}

// ListWatched returns the user's history, most recent first.
func (s *WatchService) ListWatched(ctx context.Context, userID uint) ([]*domain.WatchedLesson, error) {
	return s.watchedRepo.GetByUserID(ctx, userID)
}

package gormstore

import (
	"context"

	"github.com/dom/members-api/internal/domain"
)

type watchedLessonRepository struct {
	store *Store
}

func NewWatchedLessonRepository(store *Store) *watchedLessonRepository {
	return &watchedLessonRepository{store: store}
}

func (r *watchedLessonRepository) Create(ctx context.Context, watched *domain.WatchedLesson) error {
	db, cancel := r.store.session(ctx)
	defer cancel()
	return translate(db.Omit("User", "Lesson").Create(watched).Error)
}

func (r *watchedLessonRepository) GetByUserID(ctx context.Context, userID uint) ([]*domain.WatchedLesson, error) {
	db, cancel := r.store.session(ctx)
	defer cancel()

	watched := []*domain.WatchedLesson{}
	err := db.
		Where("user_id = ?", userID).
		Order("watched_at DESC, id DESC").
		Find(&watched).Error
	if err != nil {
		return nil, translate(err)
	}
	return watched, nil
}

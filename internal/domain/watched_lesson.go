package domain

import "time"

// WatchedLesson records that a user viewed a lesson. Rows are only ever
// appended; they disappear with either parent.
type WatchedLesson struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	LessonID  uint      `json:"lessonId" gorm:"not null;index"`
	WatchedAt time.Time `json:"watchedAt" gorm:"not null"`

	// Relations
	User   *User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Lesson *Lesson `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

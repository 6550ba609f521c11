package domain

import "time"

type Module struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	CoverURL      string    `json:"cover_url" gorm:"size:2048;not null"`
	VideoCoverURL *string   `json:"video_cover_url" gorm:"size:2048"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

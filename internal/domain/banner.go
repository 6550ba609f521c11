package domain

import "time"

type Banner struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Link      string    `json:"link" gorm:"size:2048;not null"`
	ImageURL  string    `json:"image_url" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

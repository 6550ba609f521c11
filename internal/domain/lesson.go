package domain

import "time"

// Platform identifies where a lesson video is hosted
type Platform string

const (
	PlatformAWS     Platform = "AWS"
	PlatformVimeo   Platform = "Vimeo"
	PlatformPanda   Platform = "Panda"
	PlatformYouTube Platform = "YouTube"
)

// IsValid checks if a platform is one of the supported hosts
func (p Platform) IsValid() bool {
	switch p {
	case PlatformAWS, PlatformVimeo, PlatformPanda, PlatformYouTube:
		return true
	}
	return false
}

type Lesson struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Video       string    `json:"video" gorm:"size:2048;not null"`
	Platform    Platform  `json:"platform" gorm:"type:varchar(16);not null"`
	ModuleID    uint      `json:"moduleId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Module *Module `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

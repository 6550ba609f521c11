package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UUID         uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(8);not null;default:'user'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the only shape in which a user leaves the service boundary.
type PublicUser struct {
	UUID      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		UUID:      u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUsers converts a slice of users for listing responses
func PublicUsers(users []*User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// UserPage is one page of a role-filtered user listing.
type UserPage struct {
	Users      []*User
	TotalCount int64
	Page       int
}

// UserPageSize is the fixed number of users per listing page.
const UserPageSize = 15

// TotalPages returns ceil(TotalCount / UserPageSize).
func (p UserPage) TotalPages() int {
	return int((p.TotalCount + UserPageSize - 1) / UserPageSize)
}

package models

import (
	"time"
)

// User is a read-only snapshot of an account owned by the user subsystem.
// The feed engine references users by id and never mutates them.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
	}
}

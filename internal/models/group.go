package models

import (
	"time"
)

type GroupRole string

const (
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

// Group is referenced by the feed engine, never owned by it. Membership and
// lifecycle are managed by the group subsystem.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:255" json:"description"`
	ImageURL     string    `json:"image_url"`
	OwnerID      uint      `gorm:"not null;index" json:"owner_id"`
	Owner        User      `gorm:"foreignKey:OwnerID" json:"owner"`
	DurationDays int       `json:"duration_days"`
	StartDate    time.Time `json:"start_date"`
	IsPrivate    bool      `gorm:"default:false" json:"is_private"`
}

type GroupMember struct {
	GroupID  uint      `gorm:"primaryKey" json:"group_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	Role     GroupRole `gorm:"type:varchar(20);default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

type GroupResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	OwnerID      uint      `json:"owner_id"`
	DurationDays int       `json:"duration_days"`
	StartDate    time.Time `json:"start_date"`
}

func (g *Group) ToResponse() GroupResponse {
	return GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		ImageURL:     g.ImageURL,
		OwnerID:      g.OwnerID,
		DurationDays: g.DurationDays,
		StartDate:    g.StartDate,
	}
}

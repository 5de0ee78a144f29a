package models

import (
	"time"
)

// CheckinMetrics is embedded into the checkins table, grouped as one object
// on the Go side.
type CheckinMetrics struct {
	DistanceKm  *float64 `gorm:"column:metric_distance_km" json:"distance_km"`
	DurationMin *int     `gorm:"column:metric_duration_min" json:"duration_min"`
	Steps       *int     `gorm:"column:metric_steps" json:"steps"`
}

// Checkin is an activity record posted by a member into a group. Created
// once, immutable thereafter; never deleted in normal operation.
type Checkin struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GroupID uint  `gorm:"not null;index" json:"group_id"`
	UserID  uint  `gorm:"not null;index" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID" json:"user"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	PhotoURL    string `json:"photo_url"`

	Metrics CheckinMetrics `gorm:"embedded" json:"metrics"`
}

type CheckinResponse struct {
	ID          uint           `json:"id"`
	GroupID     uint           `json:"group_id"`
	UserID      uint           `json:"user_id"`
	User        UserResponse   `json:"user"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PhotoURL    string         `json:"photo_url"`
	Metrics     CheckinMetrics `json:"metrics"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (c *Checkin) ToResponse() CheckinResponse {
	return CheckinResponse{
		ID:          c.ID,
		GroupID:     c.GroupID,
		UserID:      c.UserID,
		User:        c.User.ToResponse(),
		Title:       c.Title,
		Description: c.Description,
		PhotoURL:    c.PhotoURL,
		Metrics:     c.Metrics,
		CreatedAt:   c.CreatedAt,
	}
}

package models

import (
	"time"
)

type CommentKind string

const (
	KindComment  CommentKind = "comment"
	KindReaction CommentKind = "reaction"
)

// Comment is either a text comment or an emoji reaction on a check-in. The
// variant is decided once at creation via Kind, so a row never carries both
// content and emoji. Reactions are unique per (checkin, user, emoji) among
// live rows; rows are hard-deleted on removal so a re-reaction creates a
// fresh row with a new id.
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CheckinID uint `gorm:"not null;index" json:"checkin_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`
	User      User `gorm:"foreignKey:UserID" json:"user"`

	Kind    CommentKind `gorm:"type:varchar(20);not null;default:'comment'" json:"kind"`
	Content string      `gorm:"type:text" json:"content,omitempty"`
	Emoji   string      `gorm:"size:16" json:"emoji,omitempty"`
}

// NewComment builds the text variant.
func NewComment(checkinID, userID uint, content string) *Comment {
	return &Comment{
		CheckinID: checkinID,
		UserID:    userID,
		Kind:      KindComment,
		Content:   content,
	}
}

// NewReaction builds the emoji variant.
func NewReaction(checkinID, userID uint, emoji string) *Comment {
	return &Comment{
		CheckinID: checkinID,
		UserID:    userID,
		Kind:      KindReaction,
		Emoji:     emoji,
	}
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	CheckinID uint         `json:"checkin_id"`
	UserID    uint         `json:"user_id"`
	User      UserResponse `json:"user"`
	Kind      CommentKind  `json:"kind"`
	Content   string       `json:"content,omitempty"`
	Emoji     string       `json:"emoji,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		CheckinID: c.CheckinID,
		UserID:    c.UserID,
		User:      c.User.ToResponse(),
		Kind:      c.Kind,
		Content:   c.Content,
		Emoji:     c.Emoji,
		CreatedAt: c.CreatedAt,
	}
}

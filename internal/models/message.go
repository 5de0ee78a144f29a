package models

import (
	"time"
)

// GroupMessage is one chat message in a group's durable history. Messages
// are immutable and totally ordered per group by (created_at, id); the id
// breaks ties between messages stored in the same instant.
type GroupMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optional client-supplied UUID for publish deduplication. The partial
	// index lets messages published without a client id coexist.
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_client_sender,where:client_id <> ''" json:"client_id,omitempty"`

	GroupID  uint `gorm:"not null;index" json:"group_id"`
	SenderID uint `gorm:"not null;uniqueIndex:idx_client_sender,where:client_id <> '';index" json:"sender_id"`
	Sender   User `gorm:"foreignKey:SenderID" json:"sender"`

	Content string `gorm:"type:text;not null" json:"content"`
}

type GroupMessageResponse struct {
	ID        uint         `json:"id"`
	ClientID  string       `json:"client_id,omitempty"`
	GroupID   uint         `json:"group_id"`
	SenderID  uint         `json:"sender_id"`
	Sender    UserResponse `json:"sender"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *GroupMessage) ToResponse() GroupMessageResponse {
	return GroupMessageResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Sender:    m.Sender.ToResponse(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

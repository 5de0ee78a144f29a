package repository

import (
	"github.com/crewfit/crewfit-backend/internal/models"
)

// UserRepositoryInterface is the resolver for the external user subsystem.
// The feed engine only ever reads user snapshots.
type UserRepositoryInterface interface {
	FindByID(id uint) (*models.User, error)
}

// GroupRepositoryInterface is the resolver for the external group subsystem.
type GroupRepositoryInterface interface {
	FindByID(id uint) (*models.Group, error)
	CountMembers(groupID uint) (int64, error)
}

// CheckinRepositoryInterface defines the contract for check-in persistence
type CheckinRepositoryInterface interface {
	Create(checkin *models.Checkin) error
	FindByID(id uint) (*models.Checkin, error)
	FindByGroup(groupID uint) ([]models.Checkin, error)
}

// CommentRepositoryInterface defines the contract for comment and reaction
// persistence
type CommentRepositoryInterface interface {
	Create(comment *models.Comment) error
	FindByCheckin(checkinID uint) ([]models.Comment, error)
	FindReaction(checkinID, userID uint, emoji string) (*models.Comment, error)
	Delete(id uint) error
}

// MessageRepositoryInterface defines the contract for group chat persistence
type MessageRepositoryInterface interface {
	Create(message *models.GroupMessage) error
	FindByID(id uint) (*models.GroupMessage, error)
	FindByClientID(clientID string, senderID uint) (*models.GroupMessage, error)
	FindGroupMessages(groupID uint) ([]models.GroupMessage, error)
}

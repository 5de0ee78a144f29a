package repository

import (
	"github.com/crewfit/crewfit-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.GroupMessage) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.GroupMessage, error) {
	var message models.GroupMessage
	err := r.db.Preload("Sender").First(&message, id).Error
	return &message, err
}

func (r *MessageRepository) FindByClientID(clientID string, senderID uint) (*models.GroupMessage, error) {
	var message models.GroupMessage
	err := r.db.Preload("Sender").
		Where("client_id = ? AND sender_id = ?", clientID, senderID).
		First(&message).Error
	return &message, err
}

// FindGroupMessages returns the full history for a group. The id column is
// the tie-break for messages stored in the same instant, so the order is
// total per group.
func (r *MessageRepository) FindGroupMessages(groupID uint) ([]models.GroupMessage, error) {
	var messages []models.GroupMessage
	err := r.db.Preload("Sender").
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

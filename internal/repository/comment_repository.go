package repository

import (
	"errors"

	"github.com/crewfit/crewfit-backend/internal/models"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) FindByCheckin(checkinID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("checkin_id = ?", checkinID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// FindReaction returns the live reaction for the uniqueness key, or nil when
// none exists.
func (r *CommentRepository) FindReaction(checkinID, userID uint, emoji string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Where("checkin_id = ? AND user_id = ? AND kind = ? AND emoji = ?",
			checkinID, userID, models.KindReaction, emoji).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the row permanently so the same key can be reacted again
// with a fresh id.
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

package repository

import (
	"github.com/crewfit/crewfit-backend/internal/models"
	"gorm.io/gorm"
)

type CheckinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

func (r *CheckinRepository) Create(checkin *models.Checkin) error {
	return r.db.Create(checkin).Error
}

func (r *CheckinRepository) FindByID(id uint) (*models.Checkin, error) {
	var checkin models.Checkin
	err := r.db.Preload("User").First(&checkin, id).Error
	return &checkin, err
}

// FindByGroup returns a group's check-ins oldest first. The single query
// gives the ranking aggregator a consistent snapshot of the stream.
func (r *CheckinRepository) FindByGroup(groupID uint) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := r.db.Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&checkins).Error
	return checkins, err
}

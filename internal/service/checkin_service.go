package service

import (
	"fmt"
	"log"

	"github.com/crewfit/crewfit-backend/internal/cache"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/repository"
	"github.com/crewfit/crewfit-backend/internal/validation"
)

type CheckinService struct {
	checkinRepo  repository.CheckinRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	groupRepo    repository.GroupRepositoryInterface
	rankingCache *cache.RankingCache
}

func NewCheckinService(
	checkinRepo repository.CheckinRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	rankingCache *cache.RankingCache,
) *CheckinService {
	return &CheckinService{
		checkinRepo:  checkinRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
		rankingCache: rankingCache,
	}
}

type PostCheckinInput struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	PhotoURL    string                `json:"photo_url"`
	Metrics     models.CheckinMetrics `json:"metrics"`
}

// PostCheckin validates the references, then appends the check-in. The
// stored row is immutable from here on.
func (s *CheckinService) PostCheckin(groupID, userID uint, input PostCheckinInput) (*models.Checkin, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		return nil, resolveErr(err, "group", groupID)
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, resolveErr(err, "user", userID)
	}

	maxLen := validation.MaxTitleLength()
	title, ok := validation.TrimContent(input.Title, maxLen)
	if !ok {
		return nil, fmt.Errorf("activity title exceeds %d bytes: %w", maxLen, ErrInvalidInput)
	}
	if title == "" {
		return nil, fmt.Errorf("activity title is required: %w", ErrInvalidInput)
	}
	description, _ := validation.TrimContent(input.Description, 0)

	checkin := &models.Checkin{
		GroupID:     groupID,
		UserID:      userID,
		Title:       title,
		Description: description,
		PhotoURL:    input.PhotoURL,
		Metrics:     input.Metrics,
	}

	if err := s.checkinRepo.Create(checkin); err != nil {
		return nil, storageErr("create checkin", err)
	}

	// The stored stream changed, so any cached ranking for the group is stale.
	if err := s.rankingCache.Invalidate(groupID); err != nil {
		log.Printf("Failed to invalidate ranking cache for group %d: %v", groupID, err)
	}

	return s.checkinRepo.FindByID(checkin.ID)
}

func (s *CheckinService) ListCheckins(groupID uint) ([]models.Checkin, error) {
	return s.checkinRepo.FindByGroup(groupID)
}

func (s *CheckinService) GetCheckin(id uint) (*models.Checkin, error) {
	checkin, err := s.checkinRepo.FindByID(id)
	if err != nil {
		return nil, resolveErr(err, "checkin", id)
	}
	return checkin, nil
}

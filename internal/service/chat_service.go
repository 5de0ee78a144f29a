package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/crewfit/crewfit-backend/internal/cache"
	"github.com/crewfit/crewfit-backend/internal/hub"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/repository"
	"github.com/crewfit/crewfit-backend/internal/validation"
	"gorm.io/gorm"
)

// ChatService runs the publish pipeline: resolve, validate, persist, then
// fan out. The append is the durability point; fan-out happens only after
// it succeeds and its failures never reach the publisher.
type ChatService struct {
	messageRepo  repository.MessageRepositoryInterface
	userRepo     repository.UserRepositoryInterface
	groupRepo    repository.GroupRepositoryInterface
	broker       *hub.Hub
	historyCache *cache.HistoryCache
}

func NewChatService(
	messageRepo repository.MessageRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	broker *hub.Hub,
	historyCache *cache.HistoryCache,
) *ChatService {
	return &ChatService{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
		broker:       broker,
		historyCache: historyCache,
	}
}

// BroadcastEnvelope is the frame subscribers receive on fan-out.
type BroadcastEnvelope struct {
	Type    string                      `json:"type"`
	Payload models.GroupMessageResponse `json:"payload"`
}

// Publish stores a message and delivers it to the group's live subscribers.
// clientID is optional; a replay with the same (clientID, sender) returns
// the already-stored message instead of appending a duplicate.
func (s *ChatService) Publish(groupID, senderID uint, content, clientID string) (*models.GroupMessage, error) {
	if clientID != "" {
		if existing, err := s.messageRepo.FindByClientID(clientID, senderID); err == nil {
			return existing, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageErr("lookup client id", err)
		}
	}

	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		return nil, resolveErr(err, "group", groupID)
	}
	if _, err := s.userRepo.FindByID(senderID); err != nil {
		return nil, resolveErr(err, "user", senderID)
	}

	maxLen := validation.MaxMessageLength()
	content, ok := validation.TrimContent(content, maxLen)
	if !ok {
		return nil, fmt.Errorf("message content exceeds %d bytes: %w", maxLen, ErrInvalidInput)
	}
	if content == "" {
		return nil, fmt.Errorf("message content is required: %w", ErrInvalidInput)
	}

	message := &models.GroupMessage{
		ClientID: clientID,
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
	}

	// Durability point. On failure nothing is delivered. Two concurrent
	// publishes with the same client id can both miss the lookup above; the
	// unique index then rejects the loser, which returns the stored row.
	if err := s.messageRepo.Create(message); err != nil {
		if clientID != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := s.messageRepo.FindByClientID(clientID, senderID); lookupErr == nil {
				return existing, nil
			}
		}
		return nil, storageErr("create message", err)
	}

	stored, err := s.messageRepo.FindByID(message.ID)
	if err != nil {
		// The append committed; fall back to the row we have.
		stored = message
	}

	if err := s.historyCache.Invalidate(groupID); err != nil {
		log.Printf("Failed to invalidate history cache for group %d: %v", groupID, err)
	}

	s.broker.Broadcast(groupID, BroadcastEnvelope{
		Type:    "message",
		Payload: stored.ToResponse(),
	})

	return stored, nil
}

// History returns the group's full ordered message history.
func (s *ChatService) History(groupID uint) ([]models.GroupMessage, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		return nil, resolveErr(err, "group", groupID)
	}

	if messages, ok := s.historyCache.Get(groupID); ok {
		return messages, nil
	}

	messages, err := s.messageRepo.FindGroupMessages(groupID)
	if err != nil {
		return nil, storageErr("load history", err)
	}

	if err := s.historyCache.Set(groupID, messages); err != nil {
		log.Printf("Failed to cache history for group %d: %v", groupID, err)
	}

	return messages, nil
}

// Subscribe registers a delivery sink for the group's stream after checking
// the group resolves.
func (s *ChatService) Subscribe(groupID uint, sink hub.Sink) (*hub.Subscription, error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		return nil, resolveErr(err, "group", groupID)
	}
	return s.broker.Subscribe(groupID, sink), nil
}

// Unsubscribe revokes a handle; revoking twice is a no-op.
func (s *ChatService) Unsubscribe(sub *hub.Subscription) {
	s.broker.Unsubscribe(sub)
}

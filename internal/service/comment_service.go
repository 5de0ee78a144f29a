package service

import (
	"fmt"
	"sync"

	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/repository"
	"github.com/crewfit/crewfit-backend/internal/validation"
)

// reactionLocks serializes create/remove on a single (checkin, user, emoji)
// key. Entries are refcounted so the table stays bounded by the number of
// in-flight operations; unrelated keys never contend.
type reactionLocks struct {
	mu    sync.Mutex
	locks map[string]*reactionLock
}

type reactionLock struct {
	mu   sync.Mutex
	refs int
}

func newReactionLocks() *reactionLocks {
	return &reactionLocks{locks: make(map[string]*reactionLock)}
}

func reactionKey(checkinID, userID uint, emoji string) string {
	return fmt.Sprintf("%d:%d:%s", checkinID, userID, emoji)
}

func (t *reactionLocks) acquire(key string) *reactionLock {
	t.mu.Lock()
	entry, ok := t.locks[key]
	if !ok {
		entry = &reactionLock{}
		t.locks[key] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()
	return entry
}

func (t *reactionLocks) release(key string, entry *reactionLock) {
	entry.mu.Unlock()

	t.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(t.locks, key)
	}
	t.mu.Unlock()
}

// CommentService owns comments and reactions on check-ins, including the
// one-reaction-per-user-per-emoji rule.
type CommentService struct {
	commentRepo repository.CommentRepositoryInterface
	checkinRepo repository.CheckinRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	locks       *reactionLocks
}

func NewCommentService(
	commentRepo repository.CommentRepositoryInterface,
	checkinRepo repository.CheckinRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		checkinRepo: checkinRepo,
		userRepo:    userRepo,
		locks:       newReactionLocks(),
	}
}

func (s *CommentService) resolveRefs(checkinID, userID uint) error {
	if _, err := s.checkinRepo.FindByID(checkinID); err != nil {
		return resolveErr(err, "checkin", checkinID)
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return resolveErr(err, "user", userID)
	}
	return nil
}

// PostComment stores a plain text comment. No uniqueness rule applies.
func (s *CommentService) PostComment(checkinID, userID uint, content string) (*models.Comment, error) {
	maxLen := validation.MaxMessageLength()
	content, ok := validation.TrimContent(content, maxLen)
	if !ok {
		return nil, fmt.Errorf("comment content exceeds %d bytes: %w", maxLen, ErrInvalidInput)
	}
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrInvalidInput)
	}
	if err := s.resolveRefs(checkinID, userID); err != nil {
		return nil, err
	}

	comment := models.NewComment(checkinID, userID, content)
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, storageErr("create comment", err)
	}
	return comment, nil
}

// PostReaction stores an emoji reaction. The check-then-insert runs under
// the key lock, so of N concurrent calls on the same key exactly the first
// wins and the rest observe the duplicate.
func (s *CommentService) PostReaction(checkinID, userID uint, emoji string) (*models.Comment, error) {
	if !validation.ValidateEmoji(emoji) {
		return nil, fmt.Errorf("reaction emoji is required: %w", ErrInvalidInput)
	}
	if err := s.resolveRefs(checkinID, userID); err != nil {
		return nil, err
	}

	key := reactionKey(checkinID, userID, emoji)
	lock := s.locks.acquire(key)
	defer s.locks.release(key, lock)

	existing, err := s.commentRepo.FindReaction(checkinID, userID, emoji)
	if err != nil {
		return nil, storageErr("find reaction", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %d already reacted with %q on checkin %d: %w",
			userID, emoji, checkinID, ErrDuplicateReaction)
	}

	reaction := models.NewReaction(checkinID, userID, emoji)
	if err := s.commentRepo.Create(reaction); err != nil {
		return nil, storageErr("create reaction", err)
	}
	return reaction, nil
}

// RemoveReaction deletes the live reaction for the key. The row is removed
// for good, so a later re-reaction creates a fresh row.
func (s *CommentService) RemoveReaction(checkinID, userID uint, emoji string) error {
	if !validation.ValidateEmoji(emoji) {
		return fmt.Errorf("reaction emoji is required: %w", ErrInvalidInput)
	}

	key := reactionKey(checkinID, userID, emoji)
	lock := s.locks.acquire(key)
	defer s.locks.release(key, lock)

	existing, err := s.commentRepo.FindReaction(checkinID, userID, emoji)
	if err != nil {
		return storageErr("find reaction", err)
	}
	if existing == nil {
		return fmt.Errorf("reaction not found for removal: %w", ErrNotFound)
	}
	return s.commentRepo.Delete(existing.ID)
}

// ListComments returns a check-in's comments and reactions oldest first.
func (s *CommentService) ListComments(checkinID uint) ([]models.Comment, error) {
	return s.commentRepo.FindByCheckin(checkinID)
}

package service

import (
	"sync"
	"time"

	"github.com/crewfit/crewfit-backend/internal/models"
	"gorm.io/gorm"
)

// MockUserRepository is an in-memory resolver for the user subsystem
type MockUserRepository struct {
	users map[uint]*models.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*models.User)}
}

func (m *MockUserRepository) Add(user *models.User) {
	m.users[user.ID] = user
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// MockGroupRepository is an in-memory resolver for the group subsystem
type MockGroupRepository struct {
	groups  map[uint]*models.Group
	members map[uint]int64
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		groups:  make(map[uint]*models.Group),
		members: make(map[uint]int64),
	}
}

func (m *MockGroupRepository) Add(group *models.Group) {
	m.groups[group.ID] = group
}

func (m *MockGroupRepository) SetMemberCount(groupID uint, count int64) {
	m.members[groupID] = count
}

func (m *MockGroupRepository) FindByID(id uint) (*models.Group, error) {
	if group, ok := m.groups[id]; ok {
		return group, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGroupRepository) CountMembers(groupID uint) (int64, error) {
	return m.members[groupID], nil
}

// MockCheckinRepository stores check-ins in insertion order
type MockCheckinRepository struct {
	checkins []*models.Checkin
	nextID   uint
}

func NewMockCheckinRepository() *MockCheckinRepository {
	return &MockCheckinRepository{nextID: 1}
}

func (m *MockCheckinRepository) Create(checkin *models.Checkin) error {
	if checkin.ID == 0 {
		checkin.ID = m.nextID
		m.nextID++
	}
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now()
	}
	m.checkins = append(m.checkins, checkin)
	return nil
}

func (m *MockCheckinRepository) FindByID(id uint) (*models.Checkin, error) {
	for _, c := range m.checkins {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCheckinRepository) FindByGroup(groupID uint) ([]models.Checkin, error) {
	var result []models.Checkin
	for _, c := range m.checkins {
		if c.GroupID == groupID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// MockCommentRepository is safe for concurrent use; the reaction guard tests
// hammer it from many goroutines.
type MockCommentRepository struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	nextID   uint
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[uint]*models.Comment),
		nextID:   1,
	}
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ID == 0 {
		comment.ID = m.nextID
		m.nextID++
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) FindByCheckin(checkinID uint) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Comment
	for id := uint(1); id < m.nextID; id++ {
		if c, ok := m.comments[id]; ok && c.CheckinID == checkinID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *MockCommentRepository) FindReaction(checkinID, userID uint, emoji string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.CheckinID == checkinID && c.UserID == userID && c.Kind == models.KindReaction && c.Emoji == emoji {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCommentRepository) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	return nil
}

// MockMessageRepository stores group messages in insertion order
type MockMessageRepository struct {
	mu       sync.Mutex
	messages []*models.GroupMessage
	nextID   uint
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{nextID: 1}
}

func (m *MockMessageRepository) Create(message *models.GroupMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Enforces the partial unique index on (client_id, sender_id).
	if message.ClientID != "" {
		for _, existing := range m.messages {
			if existing.ClientID == message.ClientID && existing.SenderID == message.SenderID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if message.ID == 0 {
		message.ID = m.nextID
		m.nextID++
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *MockMessageRepository) FindByID(id uint) (*models.GroupMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMessageRepository) FindByClientID(clientID string, senderID uint) (*models.GroupMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ClientID == clientID && msg.SenderID == senderID {
			return msg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockMessageRepository) FindGroupMessages(groupID uint) ([]models.GroupMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.GroupMessage
	for _, msg := range m.messages {
		if msg.GroupID == groupID {
			result = append(result, *msg)
		}
	}
	return result, nil
}

package cache

import (
	"fmt"
	"time"

	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const HistoryTTL = 5 * time.Minute

// HistoryCache keeps a group's chat history between publishes. A publish
// invalidates the entry, so readers never see a stale tail.
type HistoryCache struct {
	redis *RedisCache
}

func NewHistoryCache(redis *RedisCache) *HistoryCache {
	return &HistoryCache{redis: redis}
}

func historyKey(groupID uint) string {
	return fmt.Sprintf("chat:%d", groupID)
}

// Get retrieves cached group history
func (hc *HistoryCache) Get(groupID uint) ([]models.GroupMessage, bool) {
	if hc == nil || hc.redis == nil {
		return nil, false
	}
	data, err := hc.redis.Get(historyKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}

	var messages []models.GroupMessage
	if err := msgpack.Unmarshal(data, &messages); err != nil {
		return nil, false
	}

	return messages, true
}

// Set caches group history
func (hc *HistoryCache) Set(groupID uint, messages []models.GroupMessage) error {
	if hc == nil || hc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(messages)
	if err != nil {
		return err
	}

	return hc.redis.Set(historyKey(groupID), data, HistoryTTL)
}

// Invalidate removes a group's history from cache
func (hc *HistoryCache) Invalidate(groupID uint) error {
	if hc == nil || hc.redis == nil {
		return nil
	}
	return hc.redis.Delete(historyKey(groupID))
}

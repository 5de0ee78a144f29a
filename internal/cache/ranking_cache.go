package cache

import (
	"fmt"
	"time"

	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const RankingTTL = 2 * time.Minute

// RankingCache keeps computed leaderboards so repeated reads skip the
// rescan. The rescan stays authoritative; every check-in append for a group
// invalidates its entry.
type RankingCache struct {
	redis *RedisCache
}

func NewRankingCache(redis *RedisCache) *RankingCache {
	return &RankingCache{redis: redis}
}

func rankingKey(groupID uint) string {
	return fmt.Sprintf("rank:%d", groupID)
}

// Get retrieves a cached leaderboard
func (rc *RankingCache) Get(groupID uint) ([]models.LeaderboardEntry, bool) {
	if rc == nil || rc.redis == nil {
		return nil, false
	}
	data, err := rc.redis.Get(rankingKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}

	var entries []models.LeaderboardEntry
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		return nil, false
	}

	return entries, true
}

// Set caches a computed leaderboard
func (rc *RankingCache) Set(groupID uint, entries []models.LeaderboardEntry) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(entries)
	if err != nil {
		return err
	}

	return rc.redis.Set(rankingKey(groupID), data, RankingTTL)
}

// Invalidate removes a group's leaderboard from cache
func (rc *RankingCache) Invalidate(groupID uint) error {
	if rc == nil || rc.redis == nil {
		return nil
	}
	return rc.redis.Delete(rankingKey(groupID))
}

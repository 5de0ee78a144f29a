package service

import (
	"log"
	"sort"

	"github.com/crewfit/crewfit-backend/internal/cache"
	"github.com/crewfit/crewfit-backend/internal/models"
	"github.com/crewfit/crewfit-backend/internal/repository"
)

// RankingService derives per-member leaderboards from the check-in stream.
// The full rescan is the source of truth; the redis cache only skips the
// recomputation and never changes the observable result.
type RankingService struct {
	checkinRepo  repository.CheckinRepositoryInterface
	groupRepo    repository.GroupRepositoryInterface
	rankingCache *cache.RankingCache
}

func NewRankingService(
	checkinRepo repository.CheckinRepositoryInterface,
	groupRepo repository.GroupRepositoryInterface,
	rankingCache *cache.RankingCache,
) *RankingService {
	return &RankingService{
		checkinRepo:  checkinRepo,
		groupRepo:    groupRepo,
		rankingCache: rankingCache,
	}
}

// Rank returns the group leaderboard sorted by total check-ins descending.
// Ties keep the order in which users first appear in the stream, so repeated
// calls over the same data always produce the same slice.
func (s *RankingService) Rank(groupID uint) ([]models.LeaderboardEntry, error) {
	if entries, ok := s.rankingCache.Get(groupID); ok {
		return entries, nil
	}

	checkins, err := s.checkinRepo.FindByGroup(groupID)
	if err != nil {
		return nil, storageErr("scan checkins", err)
	}

	type memberAgg struct {
		entry models.LeaderboardEntry
		days  map[string]struct{}
	}

	byUser := make(map[uint]*memberAgg)
	order := make([]uint, 0)

	for _, c := range checkins {
		agg, ok := byUser[c.UserID]
		if !ok {
			agg = &memberAgg{
				entry: models.LeaderboardEntry{
					UserID:      c.UserID,
					DisplayName: c.User.DisplayName,
					PhotoURL:    c.User.PhotoURL,
				},
				days: make(map[string]struct{}),
			}
			byUser[c.UserID] = agg
			order = append(order, c.UserID)
		}
		agg.entry.TotalCheckins++
		agg.days[c.CreatedAt.UTC().Format("2006-01-02")] = struct{}{}
	}

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		agg := byUser[userID]
		agg.entry.ActiveDays = len(agg.days)
		entries = append(entries, agg.entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCheckins > entries[j].TotalCheckins
	})

	if err := s.rankingCache.Set(groupID, entries); err != nil {
		log.Printf("Failed to cache ranking for group %d: %v", groupID, err)
	}

	return entries, nil
}

// Stats aggregates the leaderboard for the group summary card. Active days
// are summed across members on purpose, not deduplicated.
func (s *RankingService) Stats(groupID uint) (models.GroupStats, error) {
	entries, err := s.Rank(groupID)
	if err != nil {
		return models.GroupStats{}, err
	}

	stats := models.GroupStats{}
	for _, e := range entries {
		stats.TotalCheckins += e.TotalCheckins
		stats.TotalActiveDays += e.ActiveDays
	}
	if len(entries) > 0 {
		stats.AvgCheckinsPerMember = float64(stats.TotalCheckins) / float64(len(entries))
	}

	if count, err := s.groupRepo.CountMembers(groupID); err == nil {
		stats.MemberCount = int(count)
	} else {
		stats.MemberCount = len(entries)
	}

	return stats, nil
}

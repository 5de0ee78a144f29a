package models

// LeaderboardEntry is derived per member from the check-in stream; it is
// never stored.
type LeaderboardEntry struct {
	UserID        uint   `json:"user_id"`
	DisplayName   string `json:"display_name"`
	PhotoURL      string `json:"photo_url"`
	TotalCheckins int    `json:"total_checkins"`
	ActiveDays    int    `json:"active_days"`
}

// GroupStats aggregates a group's leaderboard. TotalActiveDays is additive
// across members, not deduplicated across the group.
type GroupStats struct {
	TotalCheckins        int     `json:"total_checkins"`
	TotalActiveDays      int     `json:"total_active_days"`
	AvgCheckinsPerMember float64 `json:"avg_checkins_per_member"`
	MemberCount          int     `json:"member_count"`
}

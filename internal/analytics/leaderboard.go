package analytics

import (
	"sort"

	"github.com/ecodrive/ecodrive-api/internal/models"
)

// RankLeaderboard sorts entries by eco score descending and assigns 1-based
// ranks. The sort is stable: users with equal scores keep their server-side
// relative order. Ranks are a contiguous sequence with no gaps; ties are not
// collapsed, so two users at the same score get consecutive ranks.
func RankLeaderboard(entries []models.LeaderboardEntry) []models.RankedLeaderboardEntry {
	sorted := make([]models.LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EcoScore > sorted[j].EcoScore
	})

	ranked := make([]models.RankedLeaderboardEntry, len(sorted))
	for i, e := range sorted {
		ranked[i] = models.RankedLeaderboardEntry{Rank: i + 1, LeaderboardEntry: e}
	}
	return ranked
}

package game

import (
	"sort"
	"time"

	"wordstreak/internal/models"
)

// Window slice sizes for the truncated global ranking view.
const (
	WindowBefore = 2
	WindowAfter  = 2
)

// WeekBounds returns the ISO week containing ref: Monday 00:00:00
// through Sunday 23:59:59, in ref's location.
func WeekBounds(ref time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(ref.Weekday()) + 6) % 7
	year, month, day := ref.AddDate(0, 0, -daysSinceMonday).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

// FilterWindow keeps only the entries whose RecordedAt falls inside the
// requested window relative to ref. The all-time window keeps everything.
func FilterWindow(entries []models.LeaderboardEntry, window models.TimeWindow, ref time.Time) []models.LeaderboardEntry {
	if window == models.WindowAllTime {
		return entries
	}

	start, end := WeekBounds(ref)
	filtered := make([]models.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if !e.RecordedAt.Before(start) && !e.RecordedAt.After(end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// RankGroup ranks an explicit member list by summed entry score.
// Members with no entries still appear, seeded at zero. Ties keep the
// member-list order; positions are 1-based.
func RankGroup(entries []models.LeaderboardEntry, members []int64, currentUserID int64) []models.RankedScore {
	scores := make(map[int64]int, len(members))
	order := make([]int64, 0, len(members))
	for _, userID := range members {
		if _, seen := scores[userID]; seen {
			continue
		}
		scores[userID] = 0
		order = append(order, userID)
	}

	for _, e := range entries {
		if _, member := scores[e.UserID]; member {
			scores[e.UserID] += e.Score
		}
	}

	ranked := make([]models.RankedScore, 0, len(order))
	for _, userID := range order {
		ranked = append(ranked, models.RankedScore{
			UserID:           userID,
			Score:            scores[userID],
			IsForCurrentUser: userID == currentUserID,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}

// WindowedRanking is the truncated view of the global leaderboard: the
// top score plus a small slice centered on the viewer.
type WindowedRanking struct {
	TopScore models.RankedScore
	Scores   []models.RankedScore
}

// RankGlobalWindowed folds all entries by user, ranks them descending
// and truncates the result to the viewer's neighborhood. The viewer is
// seeded at zero even with no entries, so they always appear. Windowing
// is a pure slice over the already-positioned sequence; it never
// re-sorts.
func RankGlobalWindowed(entries []models.LeaderboardEntry, currentUserID int64) WindowedRanking {
	scores := map[int64]int{currentUserID: 0}
	order := []int64{currentUserID}
	for _, e := range entries {
		if _, seen := scores[e.UserID]; !seen {
			scores[e.UserID] = 0
			order = append(order, e.UserID)
		}
		scores[e.UserID] += e.Score
	}

	ranked := make([]models.RankedScore, 0, len(order))
	for _, userID := range order {
		ranked = append(ranked, models.RankedScore{
			UserID:           userID,
			Score:            scores[userID],
			IsForCurrentUser: userID == currentUserID,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Position = i + 1
	}

	return WindowedRanking{
		TopScore: ranked[0],
		Scores:   WindowAroundUser(ranked, currentUserID),
	}
}

// WindowAroundUser slices an already-ranked sequence down to the
// viewer's position plus two neighbors on each side. When the viewer is
// absent it falls back to the first five entries.
func WindowAroundUser(ranked []models.RankedScore, currentUserID int64) []models.RankedScore {
	userIdx := -1
	for i, r := range ranked {
		if r.UserID == currentUserID {
			userIdx = i
			break
		}
	}

	size := WindowBefore + WindowAfter + 1
	if userIdx < 0 {
		if len(ranked) < size {
			size = len(ranked)
		}
		return ranked[:size]
	}

	start := userIdx - WindowBefore
	if start < 0 {
		start = 0
	}
	end := userIdx + WindowAfter + 1
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end]
}

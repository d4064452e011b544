package models

import "time"

// LeaderboardType distinguishes the single global leaderboard from
// invite-only private leaderboards.
type LeaderboardType string

const (
	LeaderboardGlobal  LeaderboardType = "global"
	LeaderboardPrivate LeaderboardType = "private"
)

// Leaderboard groups users whose daily-puzzle scores are ranked together.
// InviteCode is empty for the global leaderboard; CreatorID is nil for it.
type Leaderboard struct {
	ID         int64
	Type       LeaderboardType
	Name       string
	InviteCode string
	CreatorID  *int64
	CreatedAt  time.Time
}

// IsCreator reports whether the given user created this leaderboard.
func (l *Leaderboard) IsCreator(userID int64) bool {
	return l.CreatorID != nil && *l.CreatorID == userID
}

// LeaderboardEntry is one scored daily-puzzle result for one user on one
// leaderboard. Append-only; at most one per (leaderboard, user, puzzle).
type LeaderboardEntry struct {
	ID            string
	LeaderboardID int64
	UserID        int64
	PuzzleID      int64
	Score         int
	RecordedAt    time.Time
}

// TimeWindow restricts which leaderboard entries count toward a ranking.
type TimeWindow string

const (
	WindowAllTime TimeWindow = "alltime"
	WindowWeekly  TimeWindow = "weekly"
)

// Valid reports whether the window is one of the known windows.
func (w TimeWindow) Valid() bool {
	return w == WindowAllTime || w == WindowWeekly
}

// RankedScore is one row of a computed ranking.
type RankedScore struct {
	UserID           int64
	Score            int
	Position         int
	IsForCurrentUser bool
}

package models

import "time"

// Statistics is the per-user, per-puzzle-type aggregate row.
// Invariants: TotalPlayed == TotalWon + TotalFailed, and the distribution
// values sum to TotalWon.
type Statistics struct {
	UserID        int64
	PuzzleType    PuzzleType
	CurrentStreak int
	MaxStreak     int
	TotalPlayed   int
	TotalWon      int
	TotalFailed   int
	Distribution  map[int]int
	UpdatedAt     time.Time
}

// NewStatistics returns a zeroed statistics row with every distribution
// bucket (1..MaxAttempts) present.
func NewStatistics(userID int64, puzzleType PuzzleType) Statistics {
	dist := make(map[int]int, MaxAttempts)
	for i := 1; i <= MaxAttempts; i++ {
		dist[i] = 0
	}
	return Statistics{
		UserID:       userID,
		PuzzleType:   puzzleType,
		Distribution: dist,
	}
}

// DistributionTotal returns the sum of all distribution buckets.
func (s *Statistics) DistributionTotal() int {
	total := 0
	for _, count := range s.Distribution {
		total += count
	}
	return total
}

// CloneDistribution returns a copy of the distribution map so updates
// never alias the original row.
func (s *Statistics) CloneDistribution() map[int]int {
	dist := make(map[int]int, len(s.Distribution))
	for bucket, count := range s.Distribution {
		dist[bucket] = count
	}
	return dist
}

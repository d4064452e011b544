package game

import (
	"wordstreak/internal/models"
)

// PuzzleHistory pairs one puzzle with one user's attempts at it, sorted
// ascending by creation time.
type PuzzleHistory struct {
	Puzzle   models.Puzzle
	Attempts []models.GuessAttempt
}

// RecomputeStatistics rebuilds a statistics row from a full play
// history. Puzzles must be ordered newest to oldest. The same history
// always yields the same row, so backfill can run repeatedly.
//
// Every puzzle the user did not solve, including ones never started,
// closes the running streak. The most recent run of consecutive wins
// becomes the current streak.
func RecomputeStatistics(userID int64, puzzleType models.PuzzleType, history []PuzzleHistory) (models.Statistics, error) {
	if !puzzleType.Valid() {
		return models.Statistics{}, Invariantf("unknown puzzle type %q", puzzleType)
	}

	stats := models.NewStatistics(userID, puzzleType)

	won := 0
	failed := 0
	streaks := []int{}
	counter := 0

	// Only completed puzzles count toward played/won/failed; a puzzle
	// that was started but never finished still closes the streak.
	for _, ph := range history {
		if IsFailed(ph.Attempts) {
			failed++
		}

		if IsSolved(ph.Attempts) {
			won++
			counter++
			used := len(ph.Attempts)
			if used < 1 || used > models.MaxAttempts {
				return models.Statistics{}, Invariantf("won puzzle %d with %d attempts", ph.Puzzle.ID, used)
			}
			stats.Distribution[used]++
		} else {
			streaks = append(streaks, counter)
			counter = 0
		}
	}
	streaks = append(streaks, counter)

	stats.TotalPlayed = won + failed
	stats.TotalFailed = failed
	stats.TotalWon = won
	stats.CurrentStreak = streaks[0]
	for _, s := range streaks {
		if s > stats.MaxStreak {
			stats.MaxStreak = s
		}
	}

	return stats, nil
}

// ApplyCompletion folds one just-finished puzzle into an existing
// statistics row and returns the updated row. The input row is not
// mutated. Replaying completions one by one through this function must
// agree with RecomputeStatistics over the equivalent full history.
func ApplyCompletion(stats models.Statistics, solved bool, attemptsUsed int) (models.Statistics, error) {
	out := stats
	out.Distribution = stats.CloneDistribution()
	out.TotalPlayed++

	if !solved {
		out.TotalFailed++
		out.CurrentStreak = 0
		return out, nil
	}

	if attemptsUsed < 1 || attemptsUsed > models.MaxAttempts {
		return models.Statistics{}, Invariantf("completion with %d attempts is outside 1..%d", attemptsUsed, models.MaxAttempts)
	}

	out.TotalWon++
	out.CurrentStreak++
	out.Distribution[attemptsUsed]++
	if out.CurrentStreak > out.MaxStreak {
		out.MaxStreak = out.CurrentStreak
	}
	return out, nil
}

// CheckStatisticsInvariants verifies the cross-field invariants of a
// statistics row. A violation means an upstream writer is buggy and is
// reported as a KindInvariant error, never silently corrected.
func CheckStatisticsInvariants(stats models.Statistics) error {
	if stats.TotalPlayed != stats.TotalWon+stats.TotalFailed {
		return Invariantf("totalPlayed %d != totalWon %d + totalFailed %d",
			stats.TotalPlayed, stats.TotalWon, stats.TotalFailed)
	}
	sum := 0
	for bucket, count := range stats.Distribution {
		if bucket < 1 || bucket > models.MaxAttempts {
			return Invariantf("distribution bucket %d is outside 1..%d", bucket, models.MaxAttempts)
		}
		if count < 0 {
			return Invariantf("distribution bucket %d has negative count %d", bucket, count)
		}
		sum += count
	}
	if sum != stats.TotalWon {
		return Invariantf("distribution sums to %d but totalWon is %d", sum, stats.TotalWon)
	}
	if stats.CurrentStreak < 0 || stats.MaxStreak < 0 || stats.CurrentStreak > stats.MaxStreak {
		return Invariantf("streaks are inconsistent: current %d, max %d", stats.CurrentStreak, stats.MaxStreak)
	}
	return nil
}

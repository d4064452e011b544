package service

import (
	"fmt"
	"log"

	"wordstreak/internal/game"
	"wordstreak/internal/models"
)

// StatsStore is the storage surface the statistics service needs.
type StatsStore interface {
	GetStatistics(userID int64, puzzleType models.PuzzleType) (*models.Statistics, error)
	UpsertStatistics(stats models.Statistics) error
	DeleteStatistics(userID int64) error
}

// PuzzleHistoryStore lists the puzzles that make up a user's history,
// newest first.
type PuzzleHistoryStore interface {
	ListDailyPuzzles() ([]models.Puzzle, error)
	ListTrainingPuzzlesByCreator(creatorID int64) ([]models.Puzzle, error)
}

// AttemptStore reads a user's attempts at a puzzle in creation order.
type AttemptStore interface {
	ListAttempts(puzzleID, userID int64) ([]models.GuessAttempt, error)
}

// StatsService maintains per-user, per-puzzle-type statistics. The same
// row is reachable two ways: a full recompute over history (backfill)
// and an incremental update on each puzzle completion; both must agree.
type StatsService struct {
	stats    StatsStore
	puzzles  PuzzleHistoryStore
	attempts AttemptStore
}

// NewStatsService creates a new statistics service
func NewStatsService(stats StatsStore, puzzles PuzzleHistoryStore, attempts AttemptStore) *StatsService {
	return &StatsService{
		stats:    stats,
		puzzles:  puzzles,
		attempts: attempts,
	}
}

// GetStatistics returns a user's statistics row, zeroed when the user
// has not completed any puzzle of this type yet.
func (s *StatsService) GetStatistics(userID int64, puzzleType models.PuzzleType) (models.Statistics, error) {
	if !puzzleType.Valid() {
		return models.Statistics{}, game.Validationf("unknown puzzle type %q", puzzleType)
	}

	row, err := s.stats.GetStatistics(userID, puzzleType)
	if err != nil {
		return models.Statistics{}, fmt.Errorf("failed to load statistics: %w", err)
	}
	if row == nil {
		return models.NewStatistics(userID, puzzleType), nil
	}

	if err := game.CheckStatisticsInvariants(*row); err != nil {
		// Corrupt rows mean an upstream writer is buggy; surface, never
		// patch over.
		log.Printf("Statistics invariant violation for user %d (%s): %v", userID, puzzleType, err)
		return models.Statistics{}, err
	}

	return *row, nil
}

// ApplyCompletion folds one just-finished puzzle into the user's row.
// A missing row starts from zero.
func (s *StatsService) ApplyCompletion(userID int64, puzzleType models.PuzzleType, solved bool, attemptsUsed int) (models.Statistics, error) {
	current, err := s.GetStatistics(userID, puzzleType)
	if err != nil {
		return models.Statistics{}, err
	}

	updated, err := game.ApplyCompletion(current, solved, attemptsUsed)
	if err != nil {
		return models.Statistics{}, err
	}

	if err := s.stats.UpsertStatistics(updated); err != nil {
		return models.Statistics{}, fmt.Errorf("failed to persist statistics: %w", err)
	}

	return updated, nil
}

// Recompute rebuilds a user's statistics row from their full attempt
// history. When a row already exists the recompute is a no-op and the
// existing row is returned, which makes backfill safe to re-run.
func (s *StatsService) Recompute(userID int64, puzzleType models.PuzzleType) (models.Statistics, error) {
	existing, err := s.stats.GetStatistics(userID, puzzleType)
	if err != nil {
		return models.Statistics{}, fmt.Errorf("failed to load statistics: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	history, err := s.collectHistory(userID, puzzleType)
	if err != nil {
		return models.Statistics{}, err
	}

	stats, err := game.RecomputeStatistics(userID, puzzleType, history)
	if err != nil {
		return models.Statistics{}, err
	}

	if err := s.stats.UpsertStatistics(stats); err != nil {
		return models.Statistics{}, fmt.Errorf("failed to persist statistics: %w", err)
	}

	return stats, nil
}

// CleanupUser removes a user's statistics rows on account deletion
func (s *StatsService) CleanupUser(userID int64) error {
	return s.stats.DeleteStatistics(userID)
}

// collectHistory gathers the newest-to-oldest puzzle list with each
// puzzle's attempts. Daily history spans every daily puzzle ever;
// training history covers only puzzles the user created.
func (s *StatsService) collectHistory(userID int64, puzzleType models.PuzzleType) ([]game.PuzzleHistory, error) {
	var puzzles []models.Puzzle
	var err error

	switch puzzleType {
	case models.PuzzleTypeDaily:
		puzzles, err = s.puzzles.ListDailyPuzzles()
	case models.PuzzleTypeTraining:
		puzzles, err = s.puzzles.ListTrainingPuzzlesByCreator(userID)
	default:
		return nil, game.Invariantf("unknown puzzle type %q", puzzleType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}

	history := make([]game.PuzzleHistory, 0, len(puzzles))
	for _, p := range puzzles {
		attempts, err := s.attempts.ListAttempts(p.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list attempts for puzzle %d: %w", p.ID, err)
		}
		history = append(history, game.PuzzleHistory{Puzzle: p, Attempts: attempts})
	}

	return history, nil
}

package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// StatsRepository handles user statistics database operations
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new statistics repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStatistics retrieves one user's statistics row for a puzzle type,
// or nil when the user has no row yet
func (r *StatsRepository) GetStatistics(userID int64, puzzleType models.PuzzleType) (*models.Statistics, error) {
	query := `
		SELECT user_id, puzzle_type, current_streak, max_streak,
		       total_played, total_won, total_failed, distribution, updated_at
		FROM user_statistics
		WHERE user_id = ? AND puzzle_type = ?
	`

	s := &models.Statistics{}
	var distribution string

	err := r.db.QueryRow(query, userID, string(puzzleType)).Scan(
		&s.UserID,
		&s.PuzzleType,
		&s.CurrentStreak,
		&s.MaxStreak,
		&s.TotalPlayed,
		&s.TotalWon,
		&s.TotalFailed,
		&distribution,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.Distribution, err = decodeDistribution(distribution)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// UpsertStatistics writes a full statistics row, replacing any existing
// row for the same (user, puzzle type) key in one statement
func (r *StatsRepository) UpsertStatistics(stats models.Statistics) error {
	distribution, err := encodeDistribution(stats.Distribution)
	if err != nil {
		return err
	}

	// Replace-by-delete keeps the write portable across all three
	// dialects; the storage layer applies each statement atomically.
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	del := "DELETE FROM user_statistics WHERE user_id = ? AND puzzle_type = ?"
	if _, err := tx.Exec(del, stats.UserID, string(stats.PuzzleType)); err != nil {
		return err
	}

	ins := `
		INSERT INTO user_statistics
			(user_id, puzzle_type, current_streak, max_streak,
			 total_played, total_won, total_failed, distribution, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(ins,
		stats.UserID,
		string(stats.PuzzleType),
		stats.CurrentStreak,
		stats.MaxStreak,
		stats.TotalPlayed,
		stats.TotalWon,
		stats.TotalFailed,
		distribution,
		time.Now(),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteStatistics removes a user's statistics rows on account deletion
func (r *StatsRepository) DeleteStatistics(userID int64) error {
	query := "DELETE FROM user_statistics WHERE user_id = ?"
	_, err := r.db.Exec(query, userID)
	return err
}

// encodeDistribution serializes the attempts histogram for storage
func encodeDistribution(dist map[int]int) (string, error) {
	buf, err := json.Marshal(dist)
	if err != nil {
		return "", fmt.Errorf("failed to encode distribution: %w", err)
	}
	return string(buf), nil
}

// decodeDistribution parses a stored histogram, guaranteeing every
// bucket 1..MaxAttempts is present
func decodeDistribution(raw string) (map[int]int, error) {
	dist := make(map[int]int)
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &dist); err != nil {
			return nil, fmt.Errorf("failed to decode distribution %q: %w", raw, err)
		}
	}
	for i := 1; i <= models.MaxAttempts; i++ {
		if _, ok := dist[i]; !ok {
			dist[i] = 0
		}
	}
	return dist, nil
}

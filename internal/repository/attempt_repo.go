package repository

import (
	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// AttemptRepository handles guess attempt database operations
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// CreateAttempt records a judged guess. Attempts are immutable once
// created.
func (r *AttemptRepository) CreateAttempt(attempt *models.GuessAttempt) (*models.GuessAttempt, error) {
	query := `
		INSERT INTO guess_attempts (puzzle_id, user_id, attempt, statuses)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, attempt.PuzzleID, attempt.UserID, attempt.Attempt, attempt.StatusString())
	if err != nil {
		return nil, err
	}

	return r.GetAttemptByID(id)
}

// GetAttemptByID retrieves a single attempt
func (r *AttemptRepository) GetAttemptByID(id int64) (*models.GuessAttempt, error) {
	query := `
		SELECT id, puzzle_id, user_id, attempt, statuses, created_at
		FROM guess_attempts
		WHERE id = ?
	`

	a := &models.GuessAttempt{}
	var statuses string

	err := r.db.QueryRow(query, id).Scan(&a.ID, &a.PuzzleID, &a.UserID, &a.Attempt, &statuses, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := a.DecodeStatuses(statuses); err != nil {
		return nil, err
	}

	return a, nil
}

// ListAttempts retrieves one user's attempts at one puzzle in creation
// order. Streak and outcome computations depend on this ordering.
func (r *AttemptRepository) ListAttempts(puzzleID, userID int64) ([]models.GuessAttempt, error) {
	query := `
		SELECT id, puzzle_id, user_id, attempt, statuses, created_at
		FROM guess_attempts
		WHERE puzzle_id = ? AND user_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(query, puzzleID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.GuessAttempt
	for rows.Next() {
		var a models.GuessAttempt
		var statuses string

		err := rows.Scan(&a.ID, &a.PuzzleID, &a.UserID, &a.Attempt, &statuses, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := a.DecodeStatuses(statuses); err != nil {
			return nil, err
		}

		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

package repository

import (
	"database/sql"

	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// PuzzleRepository handles puzzle database operations
type PuzzleRepository struct {
	db *database.DB
}

// NewPuzzleRepository creates a new puzzle repository
func NewPuzzleRepository(db *database.DB) *PuzzleRepository {
	return &PuzzleRepository{db: db}
}

// CreatePuzzle inserts a puzzle. creatorID is nil for daily puzzles.
func (r *PuzzleRepository) CreatePuzzle(puzzleType models.PuzzleType, solution string, creatorID *int64, year, month, day int) (*models.Puzzle, error) {
	query := `
		INSERT INTO puzzles (type, solution, creator_id, year, month, day)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, string(puzzleType), solution, creatorID, year, month, day)
	if err != nil {
		return nil, err
	}

	return r.GetPuzzleByID(id)
}

// GetPuzzleByID retrieves a puzzle with its solver list, or nil when it
// does not exist
func (r *PuzzleRepository) GetPuzzleByID(id int64) (*models.Puzzle, error) {
	query := `
		SELECT id, type, solution, creator_id, year, month, day, created_at
		FROM puzzles
		WHERE id = ?
	`

	p, err := r.scanPuzzle(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.SolvedBy, err = r.listSolvers(p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// GetDailyPuzzleByDate retrieves the daily puzzle for a calendar date,
// or nil when none exists yet
func (r *PuzzleRepository) GetDailyPuzzleByDate(year, month, day int) (*models.Puzzle, error) {
	query := `
		SELECT id, type, solution, creator_id, year, month, day, created_at
		FROM puzzles
		WHERE type = ? AND year = ? AND month = ? AND day = ?
	`

	p, err := r.scanPuzzle(r.db.QueryRow(query, string(models.PuzzleTypeDaily), year, month, day))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.SolvedBy, err = r.listSolvers(p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// ListDailyPuzzles retrieves all daily puzzles, newest date first
func (r *PuzzleRepository) ListDailyPuzzles() ([]models.Puzzle, error) {
	query := `
		SELECT id, type, solution, creator_id, year, month, day, created_at
		FROM puzzles
		WHERE type = ?
		ORDER BY year DESC, month DESC, day DESC
	`

	return r.listPuzzles(query, string(models.PuzzleTypeDaily))
}

// ListTrainingPuzzlesByCreator retrieves a user's training puzzles,
// newest first
func (r *PuzzleRepository) ListTrainingPuzzlesByCreator(creatorID int64) ([]models.Puzzle, error) {
	query := `
		SELECT id, type, solution, creator_id, year, month, day, created_at
		FROM puzzles
		WHERE type = ? AND creator_id = ?
		ORDER BY created_at DESC
	`

	return r.listPuzzles(query, string(models.PuzzleTypeTraining), creatorID)
}

// MarkSolved appends a user to a puzzle's solver list. Re-marking an
// existing solver is a no-op.
func (r *PuzzleRepository) MarkSolved(puzzleID, userID int64) error {
	exists := 0
	check := "SELECT COUNT(*) FROM puzzle_solvers WHERE puzzle_id = ? AND user_id = ?"
	if err := r.db.QueryRow(check, puzzleID, userID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	query := "INSERT INTO puzzle_solvers (puzzle_id, user_id) VALUES (?, ?)"
	_, err := r.db.Exec(query, puzzleID, userID)
	return err
}

// DeleteTrainingPuzzlesByCreator removes a user's training puzzles when
// their account is deleted. Attempts and solver rows cascade.
func (r *PuzzleRepository) DeleteTrainingPuzzlesByCreator(creatorID int64) error {
	query := "DELETE FROM puzzles WHERE type = ? AND creator_id = ?"
	_, err := r.db.Exec(query, string(models.PuzzleTypeTraining), creatorID)
	return err
}

func (r *PuzzleRepository) listSolvers(puzzleID int64) ([]int64, error) {
	query := "SELECT user_id FROM puzzle_solvers WHERE puzzle_id = ? ORDER BY solved_at ASC"

	rows, err := r.db.Query(query, puzzleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var solvers []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		solvers = append(solvers, userID)
	}

	return solvers, rows.Err()
}

func (r *PuzzleRepository) listPuzzles(query string, args ...interface{}) ([]models.Puzzle, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puzzles []models.Puzzle
	for rows.Next() {
		var p models.Puzzle
		var creatorID sql.NullInt64

		err := rows.Scan(&p.ID, &p.Type, &p.Solution, &creatorID, &p.Year, &p.Month, &p.Day, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		if creatorID.Valid {
			p.CreatorID = &creatorID.Int64
		}

		puzzles = append(puzzles, p)
	}

	return puzzles, rows.Err()
}

func (r *PuzzleRepository) scanPuzzle(row *sql.Row) (*models.Puzzle, error) {
	p := &models.Puzzle{}
	var creatorID sql.NullInt64

	err := row.Scan(&p.ID, &p.Type, &p.Solution, &creatorID, &p.Year, &p.Month, &p.Day, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if creatorID.Valid {
		p.CreatorID = &creatorID.Int64
	}

	return p, nil
}

package repository

import (
	"time"

	"github.com/google/uuid"

	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// EntryRepository handles leaderboard entry database operations
type EntryRepository struct {
	db *database.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *database.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// UpsertEntry records a scored puzzle result. The write is keyed on
// (leaderboard, user, puzzle), so replaying it under at-least-once job
// delivery never double-credits.
func (r *EntryRepository) UpsertEntry(leaderboardID, userID, puzzleID int64, score int, recordedAt time.Time) error {
	query := r.db.Dialect.UpsertEntryQuery()
	_, err := r.db.Exec(query, uuid.New().String(), leaderboardID, userID, puzzleID, score, recordedAt)
	return err
}

// ListEntries retrieves all entries for a leaderboard
func (r *EntryRepository) ListEntries(leaderboardID int64) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT id, leaderboard_id, user_id, puzzle_id, score, recorded_at
		FROM leaderboard_entries
		WHERE leaderboard_id = ?
		ORDER BY recorded_at ASC, id ASC
	`

	return r.listEntries(query, leaderboardID)
}

// ListUserEntries retrieves one user's entries on one leaderboard
func (r *EntryRepository) ListUserEntries(leaderboardID, userID int64) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT id, leaderboard_id, user_id, puzzle_id, score, recorded_at
		FROM leaderboard_entries
		WHERE leaderboard_id = ? AND user_id = ?
		ORDER BY recorded_at ASC, id ASC
	`

	return r.listEntries(query, leaderboardID, userID)
}

// DeleteUserEntries removes one user's entries from one leaderboard,
// used when a member leaves
func (r *EntryRepository) DeleteUserEntries(leaderboardID, userID int64) error {
	query := "DELETE FROM leaderboard_entries WHERE leaderboard_id = ? AND user_id = ?"
	_, err := r.db.Exec(query, leaderboardID, userID)
	return err
}

// DeleteAllUserEntries removes a user's entries from every leaderboard,
// used on account deletion
func (r *EntryRepository) DeleteAllUserEntries(userID int64) error {
	query := "DELETE FROM leaderboard_entries WHERE user_id = ?"
	_, err := r.db.Exec(query, userID)
	return err
}

func (r *EntryRepository) listEntries(query string, args ...interface{}) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		err := rows.Scan(&e.ID, &e.LeaderboardID, &e.UserID, &e.PuzzleID, &e.Score, &e.RecordedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

package repository

import (
	"database/sql"

	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// LeaderboardRepository handles leaderboard and membership database
// operations
type LeaderboardRepository struct {
	db *database.DB
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db *database.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// CreatePrivate inserts a private leaderboard with its invite code
func (r *LeaderboardRepository) CreatePrivate(name, inviteCode string, creatorID int64) (*models.Leaderboard, error) {
	query := `
		INSERT INTO leaderboards (type, name, invite_code, creator_id)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, string(models.LeaderboardPrivate), name, inviteCode, creatorID)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a leaderboard by ID, or nil when it does not exist
func (r *LeaderboardRepository) GetByID(id int64) (*models.Leaderboard, error) {
	query := `
		SELECT id, type, name, invite_code, creator_id, created_at
		FROM leaderboards
		WHERE id = ?
	`

	board, err := r.scanBoard(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return board, err
}

// GetByInviteCode retrieves a private leaderboard by invite code, or
// nil when no leaderboard carries that code
func (r *LeaderboardRepository) GetByInviteCode(code string) (*models.Leaderboard, error) {
	query := `
		SELECT id, type, name, invite_code, creator_id, created_at
		FROM leaderboards
		WHERE invite_code = ?
	`

	board, err := r.scanBoard(r.db.QueryRow(query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return board, err
}

// GetGlobal retrieves the single system-wide global leaderboard
func (r *LeaderboardRepository) GetGlobal() (*models.Leaderboard, error) {
	query := `
		SELECT id, type, name, invite_code, creator_id, created_at
		FROM leaderboards
		WHERE type = ?
	`

	return r.scanBoard(r.db.QueryRow(query, string(models.LeaderboardGlobal)))
}

// InviteCodeExists reports whether an invite code is already allocated
func (r *LeaderboardRepository) InviteCodeExists(code string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM leaderboards WHERE invite_code = ?"
	err := r.db.QueryRow(query, code).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser retrieves the private leaderboards a user belongs to,
// oldest membership first
func (r *LeaderboardRepository) ListForUser(userID int64) ([]models.Leaderboard, error) {
	query := `
		SELECT l.id, l.type, l.name, l.invite_code, l.creator_id, l.created_at
		FROM leaderboards l
		JOIN leaderboard_members m ON m.leaderboard_id = l.id
		WHERE m.user_id = ?
		ORDER BY m.joined_at ASC
	`

	return r.listBoards(query, userID)
}

// ListCreatedBy retrieves the private leaderboards a user created
func (r *LeaderboardRepository) ListCreatedBy(creatorID int64) ([]models.Leaderboard, error) {
	query := `
		SELECT id, type, name, invite_code, creator_id, created_at
		FROM leaderboards
		WHERE creator_id = ?
	`

	return r.listBoards(query, creatorID)
}

// ListMembers retrieves a leaderboard's members in join order
func (r *LeaderboardRepository) ListMembers(leaderboardID int64) ([]int64, error) {
	query := `
		SELECT user_id
		FROM leaderboard_members
		WHERE leaderboard_id = ?
		ORDER BY joined_at ASC, user_id ASC
	`

	rows, err := r.db.Query(query, leaderboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}

	return members, rows.Err()
}

// IsMember reports whether a user belongs to a leaderboard
func (r *LeaderboardRepository) IsMember(leaderboardID, userID int64) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM leaderboard_members WHERE leaderboard_id = ? AND user_id = ?"
	err := r.db.QueryRow(query, leaderboardID, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember adds a user to a leaderboard
func (r *LeaderboardRepository) AddMember(leaderboardID, userID int64) error {
	query := "INSERT INTO leaderboard_members (leaderboard_id, user_id) VALUES (?, ?)"
	_, err := r.db.Exec(query, leaderboardID, userID)
	return err
}

// RemoveMember removes a user from a leaderboard
func (r *LeaderboardRepository) RemoveMember(leaderboardID, userID int64) error {
	query := "DELETE FROM leaderboard_members WHERE leaderboard_id = ? AND user_id = ?"
	_, err := r.db.Exec(query, leaderboardID, userID)
	return err
}

// Delete removes a leaderboard. Members and entries cascade.
func (r *LeaderboardRepository) Delete(leaderboardID int64) error {
	query := "DELETE FROM leaderboards WHERE id = ?"
	_, err := r.db.Exec(query, leaderboardID)
	return err
}

// ListMemberships retrieves the IDs of every leaderboard a user belongs
// to, including the global one
func (r *LeaderboardRepository) ListMemberships(userID int64) ([]int64, error) {
	query := "SELECT leaderboard_id FROM leaderboard_members WHERE user_id = ?"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *LeaderboardRepository) listBoards(query string, args ...interface{}) ([]models.Leaderboard, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []models.Leaderboard
	for rows.Next() {
		var b models.Leaderboard
		var inviteCode sql.NullString
		var creatorID sql.NullInt64

		err := rows.Scan(&b.ID, &b.Type, &b.Name, &inviteCode, &creatorID, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		if inviteCode.Valid {
			b.InviteCode = inviteCode.String
		}
		if creatorID.Valid {
			b.CreatorID = &creatorID.Int64
		}

		boards = append(boards, b)
	}

	return boards, rows.Err()
}

func (r *LeaderboardRepository) scanBoard(row *sql.Row) (*models.Leaderboard, error) {
	b := &models.Leaderboard{}
	var inviteCode sql.NullString
	var creatorID sql.NullInt64

	err := row.Scan(&b.ID, &b.Type, &b.Name, &inviteCode, &creatorID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if inviteCode.Valid {
		b.InviteCode = inviteCode.String
	}
	if creatorID.Valid {
		b.CreatorID = &creatorID.Int64
	}

	return b, nil
}

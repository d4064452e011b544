package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wordstreak/internal/database"
)

// BackupService exports the full database to a JSON file and imports it
// back. Import merges: rows whose primary key already exists are
// skipped, everything else is inserted as-is.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

const backupVersion = 1

type backupFile struct {
	Version      int                `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Words        []wordBackup       `json:"words"`
	Puzzles      []puzzleBackup     `json:"puzzles"`
	Solvers      []solverBackup     `json:"solvers"`
	Attempts     []attemptBackup    `json:"attempts"`
	Statistics   []statisticsBackup `json:"statistics"`
	Leaderboards []boardBackup      `json:"leaderboards"`
	Members      []memberBackup     `json:"members"`
	Entries      []entryBackup      `json:"entries"`
}

type wordBackup struct {
	ID          int64     `json:"id"`
	Word        string    `json:"word"`
	Frequency   float64   `json:"frequency"`
	TimesUsed   int       `json:"timesUsed"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"createdAt"`
}

type puzzleBackup struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Solution  string    `json:"solution"`
	CreatorID *int64    `json:"creatorId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Day       int       `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

type solverBackup struct {
	PuzzleID int64     `json:"puzzleId"`
	UserID   int64     `json:"userId"`
	SolvedAt time.Time `json:"solvedAt"`
}

type attemptBackup struct {
	ID        int64     `json:"id"`
	PuzzleID  int64     `json:"puzzleId"`
	UserID    int64     `json:"userId"`
	Attempt   string    `json:"attempt"`
	Statuses  string    `json:"statuses"`
	CreatedAt time.Time `json:"createdAt"`
}

type statisticsBackup struct {
	UserID        int64     `json:"userId"`
	PuzzleType    string    `json:"puzzleType"`
	CurrentStreak int       `json:"currentStreak"`
	MaxStreak     int       `json:"maxStreak"`
	TotalPlayed   int       `json:"totalPlayed"`
	TotalWon      int       `json:"totalWon"`
	TotalFailed   int       `json:"totalFailed"`
	Distribution  string    `json:"distribution"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type boardBackup struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	InviteCode *string   `json:"inviteCode"`
	CreatorID  *int64    `json:"creatorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type memberBackup struct {
	LeaderboardID int64     `json:"leaderboardId"`
	UserID        int64     `json:"userId"`
	JoinedAt      time.Time `json:"joinedAt"`
}

type entryBackup struct {
	ID            string    `json:"id"`
	LeaderboardID int64     `json:"leaderboardId"`
	UserID        int64     `json:"userId"`
	PuzzleID      int64     `json:"puzzleId"`
	Score         int       `json:"score"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// Export writes the full database state to a JSON file.
func (s *BackupService) Export(outputPath string) error {
	backup := backupFile{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if backup.Words, err = s.exportWords(); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	if backup.Puzzles, err = s.exportPuzzles(); err != nil {
		return fmt.Errorf("failed to export puzzles: %w", err)
	}
	if backup.Solvers, err = s.exportSolvers(); err != nil {
		return fmt.Errorf("failed to export solvers: %w", err)
	}
	if backup.Attempts, err = s.exportAttempts(); err != nil {
		return fmt.Errorf("failed to export attempts: %w", err)
	}
	if backup.Statistics, err = s.exportStatistics(); err != nil {
		return fmt.Errorf("failed to export statistics: %w", err)
	}
	if backup.Leaderboards, err = s.exportLeaderboards(); err != nil {
		return fmt.Errorf("failed to export leaderboards: %w", err)
	}
	if backup.Members, err = s.exportMembers(); err != nil {
		return fmt.Errorf("failed to export members: %w", err)
	}
	if backup.Entries, err = s.exportEntries(); err != nil {
		return fmt.Errorf("failed to export entries: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import reads a backup file and merges it into the database. Insertion
// order follows foreign key dependencies.
func (s *BackupService) Import(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var backup backupFile
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %d", backup.Version)
	}

	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importPuzzles(backup.Puzzles); err != nil {
		return fmt.Errorf("failed to import puzzles: %w", err)
	}
	if err := s.importSolvers(backup.Solvers); err != nil {
		return fmt.Errorf("failed to import solvers: %w", err)
	}
	if err := s.importAttempts(backup.Attempts); err != nil {
		return fmt.Errorf("failed to import attempts: %w", err)
	}
	if err := s.importStatistics(backup.Statistics); err != nil {
		return fmt.Errorf("failed to import statistics: %w", err)
	}
	if err := s.importLeaderboards(backup.Leaderboards); err != nil {
		return fmt.Errorf("failed to import leaderboards: %w", err)
	}
	if err := s.importMembers(backup.Members); err != nil {
		return fmt.Errorf("failed to import members: %w", err)
	}
	if err := s.importEntries(backup.Entries); err != nil {
		return fmt.Errorf("failed to import entries: %w", err)
	}

	return nil
}

func (s *BackupService) exportWords() ([]wordBackup, error) {
	rows, err := s.db.Query("SELECT id, word, frequency, times_used, explanation, created_at FROM dictionary_words ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wordBackup
	for rows.Next() {
		var w wordBackup
		if err := rows.Scan(&w.ID, &w.Word, &w.Frequency, &w.TimesUsed, &w.Explanation, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *BackupService) exportPuzzles() ([]puzzleBackup, error) {
	rows, err := s.db.Query("SELECT id, type, solution, creator_id, year, month, day, created_at FROM puzzles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []puzzleBackup
	for rows.Next() {
		var p puzzleBackup
		if err := rows.Scan(&p.ID, &p.Type, &p.Solution, &p.CreatorID, &p.Year, &p.Month, &p.Day, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *BackupService) exportSolvers() ([]solverBackup, error) {
	rows, err := s.db.Query("SELECT puzzle_id, user_id, solved_at FROM puzzle_solvers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []solverBackup
	for rows.Next() {
		var r solverBackup
		if err := rows.Scan(&r.PuzzleID, &r.UserID, &r.SolvedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *BackupService) exportAttempts() ([]attemptBackup, error) {
	rows, err := s.db.Query("SELECT id, puzzle_id, user_id, attempt, statuses, created_at FROM guess_attempts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []attemptBackup
	for rows.Next() {
		var a attemptBackup
		if err := rows.Scan(&a.ID, &a.PuzzleID, &a.UserID, &a.Attempt, &a.Statuses, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *BackupService) exportStatistics() ([]statisticsBackup, error) {
	rows, err := s.db.Query("SELECT user_id, puzzle_type, current_streak, max_streak, total_played, total_won, total_failed, distribution, updated_at FROM user_statistics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []statisticsBackup
	for rows.Next() {
		var st statisticsBackup
		if err := rows.Scan(&st.UserID, &st.PuzzleType, &st.CurrentStreak, &st.MaxStreak, &st.TotalPlayed, &st.TotalWon, &st.TotalFailed, &st.Distribution, &st.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *BackupService) exportLeaderboards() ([]boardBackup, error) {
	rows, err := s.db.Query("SELECT id, type, name, invite_code, creator_id, created_at FROM leaderboards ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []boardBackup
	for rows.Next() {
		var b boardBackup
		if err := rows.Scan(&b.ID, &b.Type, &b.Name, &b.InviteCode, &b.CreatorID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *BackupService) exportMembers() ([]memberBackup, error) {
	rows, err := s.db.Query("SELECT leaderboard_id, user_id, joined_at FROM leaderboard_members")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []memberBackup
	for rows.Next() {
		var m memberBackup
		if err := rows.Scan(&m.LeaderboardID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *BackupService) exportEntries() ([]entryBackup, error) {
	rows, err := s.db.Query("SELECT id, leaderboard_id, user_id, puzzle_id, score, recorded_at FROM leaderboard_entries")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entryBackup
	for rows.Next() {
		var e entryBackup
		if err := rows.Scan(&e.ID, &e.LeaderboardID, &e.UserID, &e.PuzzleID, &e.Score, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *BackupService) rowExists(query string, args ...interface{}) (bool, error) {
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *BackupService) importWords(words []wordBackup) error {
	for _, w := range words {
		exists, err := s.rowExists("SELECT COUNT(*) FROM dictionary_words WHERE id = ?", w.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO dictionary_words (id, word, frequency, times_used, explanation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			w.ID, w.Word, w.Frequency, w.TimesUsed, w.Explanation, w.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importPuzzles(puzzles []puzzleBackup) error {
	for _, p := range puzzles {
		exists, err := s.rowExists("SELECT COUNT(*) FROM puzzles WHERE id = ?", p.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO puzzles (id, type, solution, creator_id, year, month, day, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.Type, p.Solution, p.CreatorID, p.Year, p.Month, p.Day, p.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importSolvers(solvers []solverBackup) error {
	for _, r := range solvers {
		exists, err := s.rowExists("SELECT COUNT(*) FROM puzzle_solvers WHERE puzzle_id = ? AND user_id = ?", r.PuzzleID, r.UserID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO puzzle_solvers (puzzle_id, user_id, solved_at) VALUES (?, ?, ?)",
			r.PuzzleID, r.UserID, r.SolvedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importAttempts(attempts []attemptBackup) error {
	for _, a := range attempts {
		exists, err := s.rowExists("SELECT COUNT(*) FROM guess_attempts WHERE id = ?", a.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO guess_attempts (id, puzzle_id, user_id, attempt, statuses, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			a.ID, a.PuzzleID, a.UserID, a.Attempt, a.Statuses, a.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importStatistics(stats []statisticsBackup) error {
	for _, st := range stats {
		exists, err := s.rowExists("SELECT COUNT(*) FROM user_statistics WHERE user_id = ? AND puzzle_type = ?", st.UserID, st.PuzzleType)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO user_statistics (user_id, puzzle_type, current_streak, max_streak, total_played, total_won, total_failed, distribution, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			st.UserID, st.PuzzleType, st.CurrentStreak, st.MaxStreak, st.TotalPlayed, st.TotalWon, st.TotalFailed, st.Distribution, st.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importLeaderboards(boards []boardBackup) error {
	for _, b := range boards {
		exists, err := s.rowExists("SELECT COUNT(*) FROM leaderboards WHERE id = ?", b.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO leaderboards (id, type, name, invite_code, creator_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			b.ID, b.Type, b.Name, b.InviteCode, b.CreatorID, b.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importMembers(members []memberBackup) error {
	for _, m := range members {
		exists, err := s.rowExists("SELECT COUNT(*) FROM leaderboard_members WHERE leaderboard_id = ? AND user_id = ?", m.LeaderboardID, m.UserID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO leaderboard_members (leaderboard_id, user_id, joined_at) VALUES (?, ?, ?)",
			m.LeaderboardID, m.UserID, m.JoinedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importEntries(entries []entryBackup) error {
	for _, e := range entries {
		exists, err := s.rowExists("SELECT COUNT(*) FROM leaderboard_entries WHERE id = ?", e.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = s.db.Exec(
			"INSERT INTO leaderboard_entries (id, leaderboard_id, user_id, puzzle_id, score, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, e.LeaderboardID, e.UserID, e.PuzzleID, e.Score, e.RecordedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"fmt"
	"time"

	"wordstreak/internal/models"
)

// In-memory stores standing in for the repositories. Maps keep the same
// nil-on-missing contract the SQL layer has.

type fakeStatsStore struct {
	rows    map[string]models.Statistics
	upserts int
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{rows: make(map[string]models.Statistics)}
}

func statsKey(userID int64, puzzleType models.PuzzleType) string {
	return fmt.Sprintf("%d/%s", userID, puzzleType)
}

func (f *fakeStatsStore) GetStatistics(userID int64, puzzleType models.PuzzleType) (*models.Statistics, error) {
	row, ok := f.rows[statsKey(userID, puzzleType)]
	if !ok {
		return nil, nil
	}
	row.Distribution = (&row).CloneDistribution()
	return &row, nil
}

func (f *fakeStatsStore) UpsertStatistics(stats models.Statistics) error {
	f.rows[statsKey(stats.UserID, stats.PuzzleType)] = stats
	f.upserts++
	return nil
}

func (f *fakeStatsStore) DeleteStatistics(userID int64) error {
	for key, row := range f.rows {
		if row.UserID == userID {
			delete(f.rows, key)
		}
	}
	return nil
}

type fakeWordStore struct {
	words       []models.DictionaryWord
	incremented []int64
}

func (f *fakeWordStore) GetWordByText(word string) (*models.DictionaryWord, error) {
	for _, w := range f.words {
		if w.Word == word {
			found := w
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeWordStore) ListCandidates(limit int) ([]models.DictionaryWord, error) {
	if limit > len(f.words) {
		limit = len(f.words)
	}
	return f.words[:limit], nil
}

func (f *fakeWordStore) IncrementTimesUsed(id int64) error {
	f.incremented = append(f.incremented, id)
	return nil
}

type fakePuzzleStore struct {
	puzzles map[int64]*models.Puzzle
	nextID  int64
}

func newFakePuzzleStore() *fakePuzzleStore {
	return &fakePuzzleStore{puzzles: make(map[int64]*models.Puzzle)}
}

func (f *fakePuzzleStore) CreatePuzzle(puzzleType models.PuzzleType, solution string, creatorID *int64, year, month, day int) (*models.Puzzle, error) {
	f.nextID++
	p := &models.Puzzle{
		ID:        f.nextID,
		Type:      puzzleType,
		Solution:  solution,
		CreatorID: creatorID,
		Year:      year,
		Month:     month,
		Day:       day,
		CreatedAt: time.Now(),
	}
	f.puzzles[p.ID] = p
	return p, nil
}

func (f *fakePuzzleStore) GetPuzzleByID(id int64) (*models.Puzzle, error) {
	return f.puzzles[id], nil
}

func (f *fakePuzzleStore) GetDailyPuzzleByDate(year, month, day int) (*models.Puzzle, error) {
	for _, p := range f.puzzles {
		if p.Type == models.PuzzleTypeDaily && p.Year == year && p.Month == month && p.Day == day {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePuzzleStore) MarkSolved(puzzleID, userID int64) error {
	p := f.puzzles[puzzleID]
	for _, id := range p.SolvedBy {
		if id == userID {
			return nil
		}
	}
	p.SolvedBy = append(p.SolvedBy, userID)
	return nil
}

func (f *fakePuzzleStore) DeleteTrainingPuzzlesByCreator(creatorID int64) error {
	for id, p := range f.puzzles {
		if p.Type == models.PuzzleTypeTraining && p.CreatorID != nil && *p.CreatorID == creatorID {
			delete(f.puzzles, id)
		}
	}
	return nil
}

func (f *fakePuzzleStore) ListDailyPuzzles() ([]models.Puzzle, error) {
	var out []models.Puzzle
	for id := f.nextID; id >= 1; id-- {
		p, ok := f.puzzles[id]
		if ok && p.Type == models.PuzzleTypeDaily {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePuzzleStore) ListTrainingPuzzlesByCreator(creatorID int64) ([]models.Puzzle, error) {
	var out []models.Puzzle
	for id := f.nextID; id >= 1; id-- {
		p, ok := f.puzzles[id]
		if ok && p.Type == models.PuzzleTypeTraining && p.CreatorID != nil && *p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeGuessStore struct {
	attempts map[string][]models.GuessAttempt
	nextID   int64
}

func newFakeGuessStore() *fakeGuessStore {
	return &fakeGuessStore{attempts: make(map[string][]models.GuessAttempt)}
}

func attemptKey(puzzleID, userID int64) string {
	return fmt.Sprintf("%d/%d", puzzleID, userID)
}

func (f *fakeGuessStore) CreateAttempt(attempt *models.GuessAttempt) (*models.GuessAttempt, error) {
	f.nextID++
	stored := *attempt
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	key := attemptKey(stored.PuzzleID, stored.UserID)
	f.attempts[key] = append(f.attempts[key], stored)
	return &stored, nil
}

func (f *fakeGuessStore) ListAttempts(puzzleID, userID int64) ([]models.GuessAttempt, error) {
	return f.attempts[attemptKey(puzzleID, userID)], nil
}

type fakeBoardStore struct {
	boards  map[int64]*models.Leaderboard
	members map[int64][]int64
	nextID  int64
}

func newFakeBoardStore() *fakeBoardStore {
	f := &fakeBoardStore{
		boards:  make(map[int64]*models.Leaderboard),
		members: make(map[int64][]int64),
	}
	f.nextID = 1
	f.boards[1] = &models.Leaderboard{ID: 1, Type: models.LeaderboardGlobal, Name: "Global"}
	return f
}

func (f *fakeBoardStore) CreatePrivate(name, inviteCode string, creatorID int64) (*models.Leaderboard, error) {
	f.nextID++
	creator := creatorID
	b := &models.Leaderboard{
		ID:         f.nextID,
		Type:       models.LeaderboardPrivate,
		Name:       name,
		InviteCode: inviteCode,
		CreatorID:  &creator,
		CreatedAt:  time.Now(),
	}
	f.boards[b.ID] = b
	return b, nil
}

func (f *fakeBoardStore) GetByID(id int64) (*models.Leaderboard, error) {
	return f.boards[id], nil
}

func (f *fakeBoardStore) GetByInviteCode(code string) (*models.Leaderboard, error) {
	for _, b := range f.boards {
		if b.InviteCode == code && code != "" {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBoardStore) GetGlobal() (*models.Leaderboard, error) {
	return f.boards[1], nil
}

func (f *fakeBoardStore) InviteCodeExists(code string) (bool, error) {
	b, _ := f.GetByInviteCode(code)
	return b != nil, nil
}

func (f *fakeBoardStore) ListForUser(userID int64) ([]models.Leaderboard, error) {
	var out []models.Leaderboard
	for id := int64(2); id <= f.nextID; id++ {
		b, ok := f.boards[id]
		if !ok {
			continue
		}
		member, _ := f.IsMember(id, userID)
		if member {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoardStore) ListCreatedBy(creatorID int64) ([]models.Leaderboard, error) {
	var out []models.Leaderboard
	for id := int64(2); id <= f.nextID; id++ {
		b, ok := f.boards[id]
		if ok && b.IsCreator(creatorID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoardStore) ListMembers(leaderboardID int64) ([]int64, error) {
	return f.members[leaderboardID], nil
}

func (f *fakeBoardStore) IsMember(leaderboardID, userID int64) (bool, error) {
	for _, id := range f.members[leaderboardID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBoardStore) AddMember(leaderboardID, userID int64) error {
	f.members[leaderboardID] = append(f.members[leaderboardID], userID)
	return nil
}

func (f *fakeBoardStore) RemoveMember(leaderboardID, userID int64) error {
	kept := f.members[leaderboardID][:0]
	for _, id := range f.members[leaderboardID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.members[leaderboardID] = kept
	return nil
}

func (f *fakeBoardStore) Delete(leaderboardID int64) error {
	delete(f.boards, leaderboardID)
	delete(f.members, leaderboardID)
	return nil
}

func (f *fakeBoardStore) ListMemberships(userID int64) ([]int64, error) {
	var out []int64
	for id := int64(1); id <= f.nextID; id++ {
		member, _ := f.IsMember(id, userID)
		if member {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeEntryStore struct {
	entries []models.LeaderboardEntry
	nextID  int
}

func (f *fakeEntryStore) UpsertEntry(leaderboardID, userID, puzzleID int64, score int, recordedAt time.Time) error {
	for _, e := range f.entries {
		if e.LeaderboardID == leaderboardID && e.UserID == userID && e.PuzzleID == puzzleID {
			return nil
		}
	}
	f.nextID++
	f.entries = append(f.entries, models.LeaderboardEntry{
		ID:            fmt.Sprintf("entry-%d", f.nextID),
		LeaderboardID: leaderboardID,
		UserID:        userID,
		PuzzleID:      puzzleID,
		Score:         score,
		RecordedAt:    recordedAt,
	})
	return nil
}

func (f *fakeEntryStore) ListEntries(leaderboardID int64) ([]models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	for _, e := range f.entries {
		if e.LeaderboardID == leaderboardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) ListUserEntries(leaderboardID, userID int64) ([]models.LeaderboardEntry, error) {
	var out []models.LeaderboardEntry
	for _, e := range f.entries {
		if e.LeaderboardID == leaderboardID && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) DeleteUserEntries(leaderboardID, userID int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.LeaderboardID != leaderboardID || e.UserID != userID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeEntryStore) DeleteAllUserEntries(userID int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

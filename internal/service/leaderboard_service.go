package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"wordstreak/internal/game"
	"wordstreak/internal/jobs"
	"wordstreak/internal/models"
	"wordstreak/internal/validation"
)

// BoardStore is the leaderboard storage surface the service needs.
type BoardStore interface {
	CreatePrivate(name, inviteCode string, creatorID int64) (*models.Leaderboard, error)
	GetByID(id int64) (*models.Leaderboard, error)
	GetByInviteCode(code string) (*models.Leaderboard, error)
	GetGlobal() (*models.Leaderboard, error)
	InviteCodeExists(code string) (bool, error)
	ListForUser(userID int64) ([]models.Leaderboard, error)
	ListCreatedBy(creatorID int64) ([]models.Leaderboard, error)
	ListMembers(leaderboardID int64) ([]int64, error)
	IsMember(leaderboardID, userID int64) (bool, error)
	AddMember(leaderboardID, userID int64) error
	RemoveMember(leaderboardID, userID int64) error
	Delete(leaderboardID int64) error
	ListMemberships(userID int64) ([]int64, error)
}

// EntryStore is the leaderboard entry storage surface.
type EntryStore interface {
	UpsertEntry(leaderboardID, userID, puzzleID int64, score int, recordedAt time.Time) error
	ListEntries(leaderboardID int64) ([]models.LeaderboardEntry, error)
	ListUserEntries(leaderboardID, userID int64) ([]models.LeaderboardEntry, error)
	DeleteUserEntries(leaderboardID, userID int64) error
	DeleteAllUserEntries(userID int64) error
}

// JobQueue schedules deduplicated background work. Satisfied by
// jobs.Queue.
type JobQueue interface {
	Submit(key string, job jobs.Job) bool
}

// ScoreCache is the optional Redis fast path for the all-time global
// ranking. A nil cache disables it.
type ScoreCache interface {
	AddScore(ctx context.Context, userID int64, score int) error
	RemoveUser(ctx context.Context, userID int64) error
	WindowedRanking(ctx context.Context, userID int64, before, after int) (*game.WindowedRanking, bool, error)
}

// RankedBoard is one leaderboard with its computed ranking.
type RankedBoard struct {
	Leaderboard models.Leaderboard
	Scores      []models.RankedScore
}

// LeaderboardService manages private leaderboards and computes rankings.
type LeaderboardService struct {
	boards  BoardStore
	entries EntryStore
	queue   JobQueue
	cache   ScoreCache
	now     func() time.Time
}

// NewLeaderboardService creates a new leaderboard service. cache may be
// nil when Redis is not configured.
func NewLeaderboardService(boards BoardStore, entries EntryStore, queue JobQueue, cache ScoreCache) *LeaderboardService {
	return &LeaderboardService{
		boards:  boards,
		entries: entries,
		queue:   queue,
		cache:   cache,
		now:     time.Now,
	}
}

// CreatePrivate creates an invite-only leaderboard with the creator as
// its first member, then schedules a background replay of the creator's
// existing daily scores onto the new board.
func (s *LeaderboardService) CreatePrivate(creatorID int64, name string) (*models.Leaderboard, error) {
	if err := validation.ValidateLeaderboardName(name); err != nil {
		return nil, err
	}

	code, err := game.AllocateInviteCode(s.boards.InviteCodeExists, game.GenerateInviteCode)
	if err != nil {
		return nil, err
	}

	board, err := s.boards.CreatePrivate(name, code, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard: %w", err)
	}
	if err := s.boards.AddMember(board.ID, creatorID); err != nil {
		return nil, fmt.Errorf("failed to add creator as member: %w", err)
	}

	s.schedulePopulation(board.ID, creatorID)
	return board, nil
}

// Join adds a user to the private leaderboard matching the invite code
// and schedules a replay of their existing scores onto it.
func (s *LeaderboardService) Join(userID int64, inviteCode string) (*models.Leaderboard, error) {
	code := validation.NormalizeInviteCode(inviteCode)
	if err := validation.ValidateInviteCode(code); err != nil {
		return nil, err
	}

	board, err := s.boards.GetByInviteCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}
	if board == nil {
		return nil, game.ErrInvalidInviteCode
	}

	member, err := s.boards.IsMember(board.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil, game.ErrAlreadyJoined
	}

	if err := s.boards.AddMember(board.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.schedulePopulation(board.ID, userID)
	return board, nil
}

// Leave removes a user from a private leaderboard together with their
// entries on it. The creator cannot leave, only delete.
func (s *LeaderboardService) Leave(userID, leaderboardID int64) error {
	board, err := s.requirePrivate(leaderboardID)
	if err != nil {
		return err
	}
	if board.IsCreator(userID) {
		return game.ErrCreatorCannotLeave
	}

	member, err := s.boards.IsMember(leaderboardID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return game.ErrLeaderboardNotFound
	}

	if err := s.entries.DeleteUserEntries(leaderboardID, userID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	if err := s.boards.RemoveMember(leaderboardID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// Delete removes a private leaderboard entirely. Creator only.
func (s *LeaderboardService) Delete(userID, leaderboardID int64) error {
	board, err := s.requirePrivate(leaderboardID)
	if err != nil {
		return err
	}
	if !board.IsCreator(userID) {
		return game.ErrNotCreator
	}
	if err := s.boards.Delete(leaderboardID); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	return nil
}

// CleanupUser removes all leaderboard traces of a deleted account:
// boards they created, memberships, entries, and the cache row.
func (s *LeaderboardService) CleanupUser(userID int64) error {
	created, err := s.boards.ListCreatedBy(userID)
	if err != nil {
		return fmt.Errorf("failed to list created leaderboards: %w", err)
	}
	for _, board := range created {
		if err := s.boards.Delete(board.ID); err != nil {
			return fmt.Errorf("failed to delete leaderboard %d: %w", board.ID, err)
		}
	}

	memberships, err := s.boards.ListMemberships(userID)
	if err != nil {
		return fmt.Errorf("failed to list memberships: %w", err)
	}
	for _, boardID := range memberships {
		if err := s.boards.RemoveMember(boardID, userID); err != nil {
			return fmt.Errorf("failed to remove membership %d: %w", boardID, err)
		}
	}

	if err := s.entries.DeleteAllUserEntries(userID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.RemoveUser(context.Background(), userID); err != nil {
			log.Printf("Failed to evict user %d from leaderboard cache: %v", userID, err)
		}
	}
	return nil
}

// RecordDailyScore writes one solved daily puzzle's score onto the
// global leaderboard and every private leaderboard the user belongs to.
// The unique (leaderboard, user, puzzle) key makes replays no-ops.
func (s *LeaderboardService) RecordDailyScore(userID, puzzleID int64, score int, recordedAt time.Time) error {
	global, err := s.boards.GetGlobal()
	if err != nil {
		return fmt.Errorf("failed to load global leaderboard: %w", err)
	}
	if err := s.entries.UpsertEntry(global.ID, userID, puzzleID, score, recordedAt); err != nil {
		return fmt.Errorf("failed to record global entry: %w", err)
	}

	memberships, err := s.boards.ListMemberships(userID)
	if err != nil {
		return fmt.Errorf("failed to list memberships: %w", err)
	}
	for _, boardID := range memberships {
		if err := s.entries.UpsertEntry(boardID, userID, puzzleID, score, recordedAt); err != nil {
			return fmt.Errorf("failed to record entry on leaderboard %d: %w", boardID, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.AddScore(context.Background(), userID, score); err != nil {
			log.Printf("Failed to write score for user %d to leaderboard cache: %v", userID, err)
		}
	}
	return nil
}

// MyLeaderboards returns every leaderboard the user belongs to, each
// ranked over the requested time window.
func (s *LeaderboardService) MyLeaderboards(userID int64, window models.TimeWindow) ([]RankedBoard, error) {
	if !window.Valid() {
		return nil, game.Validationf("unknown time window %q", window)
	}

	boards, err := s.boards.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboards: %w", err)
	}

	ref := s.now()
	ranked := make([]RankedBoard, 0, len(boards))
	for _, board := range boards {
		members, err := s.boards.ListMembers(board.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list members of leaderboard %d: %w", board.ID, err)
		}
		entries, err := s.entries.ListEntries(board.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list entries of leaderboard %d: %w", board.ID, err)
		}
		entries = game.FilterWindow(entries, window, ref)
		ranked = append(ranked, RankedBoard{
			Leaderboard: board,
			Scores:      game.RankGroup(entries, members, userID),
		})
	}
	return ranked, nil
}

// GlobalRanking returns the truncated global ranking centered on the
// viewer. The all-time window takes the Redis fast path when the cache
// is configured and holds the viewer; everything else ranks from SQL.
func (s *LeaderboardService) GlobalRanking(ctx context.Context, userID int64, window models.TimeWindow) (game.WindowedRanking, error) {
	if !window.Valid() {
		return game.WindowedRanking{}, game.Validationf("unknown time window %q", window)
	}

	if window == models.WindowAllTime && s.cache != nil {
		ranking, ok, err := s.cache.WindowedRanking(ctx, userID, game.WindowBefore, game.WindowAfter)
		if err != nil {
			log.Printf("Leaderboard cache read failed, falling back to SQL: %v", err)
		} else if ok {
			return *ranking, nil
		}
	}

	global, err := s.boards.GetGlobal()
	if err != nil {
		return game.WindowedRanking{}, fmt.Errorf("failed to load global leaderboard: %w", err)
	}
	entries, err := s.entries.ListEntries(global.ID)
	if err != nil {
		return game.WindowedRanking{}, fmt.Errorf("failed to list global entries: %w", err)
	}

	entries = game.FilterWindow(entries, window, s.now())
	return game.RankGlobalWindowed(entries, userID), nil
}

// schedulePopulation replays a user's existing global entries onto one
// private leaderboard in the background. The job key deduplicates
// concurrent joins; the entry upsert makes reruns harmless.
func (s *LeaderboardService) schedulePopulation(leaderboardID, userID int64) {
	key := fmt.Sprintf("populate:%d:%d", leaderboardID, userID)
	s.queue.Submit(key, func() error {
		global, err := s.boards.GetGlobal()
		if err != nil {
			return fmt.Errorf("failed to load global leaderboard: %w", err)
		}
		entries, err := s.entries.ListUserEntries(global.ID, userID)
		if err != nil {
			return fmt.Errorf("failed to list user entries: %w", err)
		}
		for _, e := range entries {
			if err := s.entries.UpsertEntry(leaderboardID, userID, e.PuzzleID, e.Score, e.RecordedAt); err != nil {
				return fmt.Errorf("failed to copy entry for puzzle %d: %w", e.PuzzleID, err)
			}
		}
		return nil
	})
}

// requirePrivate loads a leaderboard and rejects operations against the
// global board, which has no membership management.
func (s *LeaderboardService) requirePrivate(leaderboardID int64) (*models.Leaderboard, error) {
	board, err := s.boards.GetByID(leaderboardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if board == nil || board.Type != models.LeaderboardPrivate {
		return nil, game.ErrLeaderboardNotFound
	}
	return board, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wordstreak/internal/game"
	"wordstreak/internal/jobs"
	"wordstreak/internal/models"
	"wordstreak/internal/validation"
)

type boardFixture struct {
	svc     *LeaderboardService
	boards  *fakeBoardStore
	entries *fakeEntryStore
	queue   *jobs.Queue
}

func newBoardFixture() *boardFixture {
	boards := newFakeBoardStore()
	entries := &fakeEntryStore{}
	queue := jobs.NewQueue()
	svc := NewLeaderboardService(boards, entries, queue, nil)
	svc.now = func() time.Time { return time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC) }
	return &boardFixture{svc: svc, boards: boards, entries: entries, queue: queue}
}

func TestCreatePrivateLeaderboard(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}

	if board.Type != models.LeaderboardPrivate {
		t.Errorf("expected private type, got %s", board.Type)
	}
	if err := validation.ValidateInviteCode(board.InviteCode); err != nil {
		t.Errorf("generated invite code %q is invalid: %v", board.InviteCode, err)
	}
	member, _ := f.boards.IsMember(board.ID, 7)
	if !member {
		t.Error("creator should be a member of the new leaderboard")
	}
}

func TestCreatePrivateRejectsBadName(t *testing.T) {
	f := newBoardFixture()

	_, err := f.svc.CreatePrivate(7, "x")
	if kind, ok := game.KindOf(err); !ok || kind != game.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreatePrivateReplaysExistingScores(t *testing.T) {
	f := newBoardFixture()

	recorded := time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC)
	if err := f.entries.UpsertEntry(1, 7, 11, 5, recorded); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := f.entries.UpsertEntry(1, 7, 12, 3, recorded); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	copied, _ := f.entries.ListUserEntries(board.ID, 7)
	if len(copied) != 2 {
		t.Fatalf("expected 2 replayed entries, got %d", len(copied))
	}
	if copied[0].Score+copied[1].Score != 8 {
		t.Errorf("replayed scores do not match originals: %v", copied)
	}
}

func TestJoinByInviteCode(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	// Codes arrive in whatever case the user typed them.
	joined, err := f.svc.Join(8, "  "+strings.ToLower(board.InviteCode)+" ")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if joined.ID != board.ID {
		t.Errorf("joined the wrong leaderboard: %d", joined.ID)
	}
	member, _ := f.boards.IsMember(board.ID, 8)
	if !member {
		t.Error("user 8 should be a member after joining")
	}

	_, err = f.svc.Join(8, board.InviteCode)
	if !errors.Is(err, game.ErrAlreadyJoined) {
		t.Errorf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestJoinUnknownCode(t *testing.T) {
	f := newBoardFixture()

	_, err := f.svc.Join(8, "ZZZZZZ")
	if !errors.Is(err, game.ErrInvalidInviteCode) {
		t.Errorf("expected ErrInvalidInviteCode, got %v", err)
	}
}

func TestJoinReplaysScores(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	recorded := time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC)
	if err := f.entries.UpsertEntry(1, 8, 11, 6, recorded); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	if _, err := f.svc.Join(8, board.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	f.queue.Wait()

	copied, _ := f.entries.ListUserEntries(board.ID, 8)
	if len(copied) != 1 || copied[0].Score != 6 {
		t.Errorf("expected the global entry replayed onto the board, got %v", copied)
	}
}

func TestLeave(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if _, err := f.svc.Join(8, board.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	f.queue.Wait()

	recorded := time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC)
	if err := f.entries.UpsertEntry(board.ID, 8, 11, 4, recorded); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	if err := f.svc.Leave(8, board.ID); err != nil {
		t.Fatalf("Leave: %v", err)
	}

	member, _ := f.boards.IsMember(board.ID, 8)
	if member {
		t.Error("user 8 should no longer be a member")
	}
	left, _ := f.entries.ListUserEntries(board.ID, 8)
	if len(left) != 0 {
		t.Errorf("entries should be removed on leave, got %v", left)
	}
}

func TestLeaveStateMachine(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	tests := []struct {
		name    string
		userID  int64
		boardID int64
		want    error
	}{
		{"creator cannot leave", 7, board.ID, game.ErrCreatorCannotLeave},
		{"non-member cannot leave", 9, board.ID, game.ErrLeaderboardNotFound},
		{"global board has no membership", 8, 1, game.ErrLeaderboardNotFound},
		{"unknown board", 8, 999, game.ErrLeaderboardNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.svc.Leave(tt.userID, tt.boardID); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	if err := f.svc.Delete(8, board.ID); !errors.Is(err, game.ErrNotCreator) {
		t.Errorf("expected ErrNotCreator, got %v", err)
	}
	if err := f.svc.Delete(7, board.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b, _ := f.boards.GetByID(board.ID); b != nil {
		t.Error("leaderboard should be gone after delete")
	}
	if err := f.svc.Delete(7, board.ID); !errors.Is(err, game.ErrLeaderboardNotFound) {
		t.Errorf("expected ErrLeaderboardNotFound, got %v", err)
	}
}

func TestRecordDailyScoreFansOut(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	f.queue.Wait()

	recorded := time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)
	if err := f.svc.RecordDailyScore(7, 11, 5, recorded); err != nil {
		t.Fatalf("RecordDailyScore: %v", err)
	}

	global, _ := f.entries.ListUserEntries(1, 7)
	private, _ := f.entries.ListUserEntries(board.ID, 7)
	if len(global) != 1 || len(private) != 1 {
		t.Fatalf("expected one entry on each board, got %d global and %d private", len(global), len(private))
	}

	// Replays are no-ops thanks to the (board, user, puzzle) key.
	if err := f.svc.RecordDailyScore(7, 11, 5, recorded); err != nil {
		t.Fatalf("RecordDailyScore replay: %v", err)
	}
	global, _ = f.entries.ListUserEntries(1, 7)
	if len(global) != 1 {
		t.Errorf("replay created a duplicate entry: %v", global)
	}
}

func TestBoardCleanupUser(t *testing.T) {
	f := newBoardFixture()

	mine, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	theirs, err := f.svc.CreatePrivate(8, "Rival League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if _, err := f.svc.Join(7, theirs.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	f.queue.Wait()

	recorded := time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)
	if err := f.svc.RecordDailyScore(7, 11, 5, recorded); err != nil {
		t.Fatalf("RecordDailyScore: %v", err)
	}

	if err := f.svc.CleanupUser(7); err != nil {
		t.Fatalf("CleanupUser: %v", err)
	}

	if b, _ := f.boards.GetByID(mine.ID); b != nil {
		t.Error("boards created by the user should be deleted")
	}
	if b, _ := f.boards.GetByID(theirs.ID); b == nil {
		t.Error("boards created by others must survive")
	}
	member, _ := f.boards.IsMember(theirs.ID, 7)
	if member {
		t.Error("memberships should be removed")
	}
	for _, e := range f.entries.entries {
		if e.UserID == 7 {
			t.Errorf("entry for user 7 survived cleanup: %+v", e)
		}
	}
}

func TestMyLeaderboards(t *testing.T) {
	f := newBoardFixture()

	board, err := f.svc.CreatePrivate(7, "Office League")
	if err != nil {
		t.Fatalf("CreatePrivate: %v", err)
	}
	if _, err := f.svc.Join(8, board.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	f.queue.Wait()

	recorded := time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)
	if err := f.entries.UpsertEntry(board.ID, 8, 11, 6, recorded); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	ranked, err := f.svc.MyLeaderboards(7, models.WindowAllTime)
	if err != nil {
		t.Fatalf("MyLeaderboards: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected 1 leaderboard, got %d", len(ranked))
	}

	scores := ranked[0].Scores
	if len(scores) != 2 {
		t.Fatalf("expected both members ranked, got %d", len(scores))
	}
	if scores[0].UserID != 8 || scores[0].Score != 6 || scores[0].Position != 1 {
		t.Errorf("unexpected leader: %+v", scores[0])
	}
	if scores[1].UserID != 7 || scores[1].Score != 0 || !scores[1].IsForCurrentUser {
		t.Errorf("viewer should be seeded at zero: %+v", scores[1])
	}
}

func TestMyLeaderboardsRejectsUnknownWindow(t *testing.T) {
	f := newBoardFixture()

	_, err := f.svc.MyLeaderboards(7, models.TimeWindow("monthly"))
	if kind, ok := game.KindOf(err); !ok || kind != game.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGlobalRankingFromSQL(t *testing.T) {
	f := newBoardFixture()

	recorded := time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)
	for user := int64(1); user <= 10; user++ {
		if err := f.entries.UpsertEntry(1, user, 11, int(user), recorded); err != nil {
			t.Fatalf("UpsertEntry: %v", err)
		}
	}

	ranking, err := f.svc.GlobalRanking(context.Background(), 5, models.WindowAllTime)
	if err != nil {
		t.Fatalf("GlobalRanking: %v", err)
	}

	if ranking.TopScore.Score != 10 {
		t.Errorf("expected top score 10, got %d", ranking.TopScore.Score)
	}
	if len(ranking.Scores) != 5 {
		t.Fatalf("expected a 5-wide window, got %d", len(ranking.Scores))
	}
	flagged := 0
	for _, s := range ranking.Scores {
		if s.IsForCurrentUser {
			flagged++
			if s.UserID != 5 {
				t.Errorf("wrong user flagged: %+v", s)
			}
		}
	}
	if flagged != 1 {
		t.Errorf("expected exactly one flagged score, got %d", flagged)
	}
}

func TestGlobalRankingWeeklyWindow(t *testing.T) {
	f := newBoardFixture()

	inWeek := time.Date(2025, 7, 9, 8, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC)
	if err := f.entries.UpsertEntry(1, 8, 11, 6, inWeek); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := f.entries.UpsertEntry(1, 8, 10, 6, lastWeek); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	ranking, err := f.svc.GlobalRanking(context.Background(), 8, models.WindowWeekly)
	if err != nil {
		t.Fatalf("GlobalRanking: %v", err)
	}
	if ranking.TopScore.Score != 6 {
		t.Errorf("last week's entry leaked into the weekly window: %+v", ranking.TopScore)
	}
}

func TestGlobalRankingViewerWithoutEntries(t *testing.T) {
	f := newBoardFixture()

	ranking, err := f.svc.GlobalRanking(context.Background(), 42, models.WindowAllTime)
	if err != nil {
		t.Fatalf("GlobalRanking: %v", err)
	}
	if len(ranking.Scores) != 1 {
		t.Fatalf("expected just the seeded viewer, got %d scores", len(ranking.Scores))
	}
	if ranking.Scores[0].UserID != 42 || ranking.Scores[0].Score != 0 {
		t.Errorf("viewer should be seeded at zero: %+v", ranking.Scores[0])
	}
}

package service

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"wordstreak/internal/game"
	"wordstreak/internal/models"
	"wordstreak/internal/validation"
)

// WordStore is the dictionary surface the puzzle service needs.
type WordStore interface {
	GetWordByText(word string) (*models.DictionaryWord, error)
	ListCandidates(limit int) ([]models.DictionaryWord, error)
	IncrementTimesUsed(id int64) error
}

// PuzzleStore is the puzzle storage surface the puzzle service needs.
type PuzzleStore interface {
	CreatePuzzle(puzzleType models.PuzzleType, solution string, creatorID *int64, year, month, day int) (*models.Puzzle, error)
	GetPuzzleByID(id int64) (*models.Puzzle, error)
	GetDailyPuzzleByDate(year, month, day int) (*models.Puzzle, error)
	MarkSolved(puzzleID, userID int64) error
	DeleteTrainingPuzzlesByCreator(creatorID int64) error
}

// GuessStore persists and lists guess attempts.
type GuessStore interface {
	CreateAttempt(attempt *models.GuessAttempt) (*models.GuessAttempt, error)
	ListAttempts(puzzleID, userID int64) ([]models.GuessAttempt, error)
}

// CompletionRecorder folds a finished puzzle into a user's statistics.
// Satisfied by StatsService.
type CompletionRecorder interface {
	ApplyCompletion(userID int64, puzzleType models.PuzzleType, solved bool, attemptsUsed int) (models.Statistics, error)
}

// ScoreRecorder records a solved daily puzzle on every leaderboard the
// user belongs to. Satisfied by LeaderboardService.
type ScoreRecorder interface {
	RecordDailyScore(userID, puzzleID int64, score int, recordedAt time.Time) error
}

// GuessResult is the outcome of one submitted guess. Solution is set
// only on a failure, once the puzzle is over for the user.
type GuessResult struct {
	Attempt      models.GuessAttempt
	AttemptsUsed int
	Solved       bool
	Failed       bool
	Solution     string
}

// PuzzleService creates puzzles and evaluates guesses against them.
type PuzzleService struct {
	words       WordStore
	puzzles     PuzzleStore
	attempts    GuessStore
	stats       CompletionRecorder
	scores      ScoreRecorder
	decayFactor float64
	sampleSize  int
	now         func() time.Time
	randFloat   func() float64
}

// NewPuzzleService creates a new puzzle service
func NewPuzzleService(words WordStore, puzzles PuzzleStore, attempts GuessStore, stats CompletionRecorder, scores ScoreRecorder, sampleSize int) *PuzzleService {
	return &PuzzleService{
		words:       words,
		puzzles:     puzzles,
		attempts:    attempts,
		stats:       stats,
		scores:      scores,
		decayFactor: game.DefaultDecayFactor,
		sampleSize:  sampleSize,
		now:         time.Now,
		randFloat:   rand.Float64,
	}
}

// EnsureDailyPuzzle returns today's daily puzzle, creating it from a
// weighted dictionary draw when it does not exist yet. Safe to call
// repeatedly; the cron job and request handlers share it.
func (s *PuzzleService) EnsureDailyPuzzle() (*models.Puzzle, error) {
	year, month, day := s.today()

	existing, err := s.puzzles.GetDailyPuzzleByDate(year, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up daily puzzle: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	word, err := s.drawWord()
	if err != nil {
		return nil, err
	}

	puzzle, err := s.puzzles.CreatePuzzle(models.PuzzleTypeDaily, word.Word, nil, year, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily puzzle: %w", err)
	}

	// Usage bump is non-atomic with the draw. A rare concurrent double
	// creation only skews future selection weights slightly.
	if err := s.words.IncrementTimesUsed(word.ID); err != nil {
		log.Printf("Failed to increment usage for word %d: %v", word.ID, err)
	}

	log.Printf("Created daily puzzle %d for %04d-%02d-%02d", puzzle.ID, year, month, day)
	return puzzle, nil
}

// CreateTrainingPuzzle draws a fresh word and creates a training puzzle
// owned by the given user.
func (s *PuzzleService) CreateTrainingPuzzle(creatorID int64) (*models.Puzzle, error) {
	word, err := s.drawWord()
	if err != nil {
		return nil, err
	}

	year, month, day := s.today()
	puzzle, err := s.puzzles.CreatePuzzle(models.PuzzleTypeTraining, word.Word, &creatorID, year, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to create training puzzle: %w", err)
	}

	if err := s.words.IncrementTimesUsed(word.ID); err != nil {
		log.Printf("Failed to increment usage for word %d: %v", word.ID, err)
	}

	return puzzle, nil
}

// SubmitGuess validates and evaluates one guess. On the guess that
// completes the puzzle it updates statistics, records the solver, and
// for solved daily puzzles writes a leaderboard score.
func (s *PuzzleService) SubmitGuess(userID, puzzleID int64, guess string) (*GuessResult, error) {
	guess = strings.ToLower(strings.TrimSpace(guess))
	if err := validation.ValidateWord(guess); err != nil {
		return nil, err
	}

	known, err := s.words.GetWordByText(guess)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guess word: %w", err)
	}
	if known == nil {
		return nil, game.Validationf("%q is not in the dictionary", guess)
	}

	puzzle, err := s.puzzles.GetPuzzleByID(puzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, game.ErrPuzzleNotFound
	}

	previous, err := s.attempts.ListAttempts(puzzleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	if game.IsSolved(previous) || game.IsFailed(previous) {
		return nil, game.ErrPuzzleComplete
	}

	attempt := &models.GuessAttempt{
		PuzzleID:       puzzleID,
		UserID:         userID,
		Attempt:        guess,
		CheckedLetters: game.CheckGuess(puzzle.Solution, guess),
	}
	created, err := s.attempts.CreateAttempt(attempt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist attempt: %w", err)
	}

	result := &GuessResult{
		Attempt:      *created,
		AttemptsUsed: len(previous) + 1,
		Solved:       game.IsCorrect(created),
	}
	result.Failed = !result.Solved && result.AttemptsUsed == models.MaxAttempts
	if result.Failed {
		result.Solution = puzzle.Solution
	}

	if result.Solved || result.Failed {
		if err := s.recordCompletion(puzzle, userID, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// GetAttempts returns a user's attempts at a puzzle in creation order.
func (s *PuzzleService) GetAttempts(userID, puzzleID int64) ([]models.GuessAttempt, error) {
	puzzle, err := s.puzzles.GetPuzzleByID(puzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, game.ErrPuzzleNotFound
	}
	return s.attempts.ListAttempts(puzzleID, userID)
}

// CleanupUser removes the user's training puzzles on account deletion.
// Daily puzzles are shared and stay.
func (s *PuzzleService) CleanupUser(userID int64) error {
	return s.puzzles.DeleteTrainingPuzzlesByCreator(userID)
}

// recordCompletion runs the side effects of a finishing guess. The
// attempt row is already persisted; failures here are returned so the
// caller sees an error rather than silently missing statistics.
func (s *PuzzleService) recordCompletion(puzzle *models.Puzzle, userID int64, result *GuessResult) error {
	if _, err := s.stats.ApplyCompletion(userID, puzzle.Type, result.Solved, result.AttemptsUsed); err != nil {
		return fmt.Errorf("failed to update statistics: %w", err)
	}

	if !result.Solved {
		return nil
	}

	if err := s.puzzles.MarkSolved(puzzle.ID, userID); err != nil {
		return fmt.Errorf("failed to record solver: %w", err)
	}

	if puzzle.Type == models.PuzzleTypeDaily {
		score := models.MaxAttempts + 1 - result.AttemptsUsed
		if err := s.scores.RecordDailyScore(userID, puzzle.ID, score, result.Attempt.CreatedAt); err != nil {
			return fmt.Errorf("failed to record leaderboard score: %w", err)
		}
	}

	return nil
}

// drawWord samples candidates and makes one weighted draw.
func (s *PuzzleService) drawWord() (models.DictionaryWord, error) {
	candidates, err := s.words.ListCandidates(s.sampleSize)
	if err != nil {
		return models.DictionaryWord{}, fmt.Errorf("failed to list candidate words: %w", err)
	}
	return game.SelectWord(candidates, s.decayFactor, s.randFloat)
}

func (s *PuzzleService) today() (year, month, day int) {
	t := s.now().UTC()
	return t.Year(), int(t.Month()), t.Day()
}

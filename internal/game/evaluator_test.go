package game

import (
	"strings"
	"testing"

	"wordstreak/internal/models"
)

// attemptFor builds a judged attempt from a compact status string like
// "ccmic" (c=correct, m=misplaced, i=invalid).
func attemptFor(t *testing.T, statuses string) models.GuessAttempt {
	t.Helper()
	a := models.GuessAttempt{Attempt: strings.Repeat("x", len(statuses))}
	if err := a.DecodeStatuses(statuses); err != nil {
		t.Fatalf("DecodeStatuses(%q) error = %v", statuses, err)
	}
	return a
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name    string
		attempt *models.GuessAttempt
		want    bool
	}{
		{
			name:    "nil attempt",
			attempt: nil,
			want:    false,
		},
		{
			name:    "no checked letters",
			attempt: &models.GuessAttempt{Attempt: "crane"},
			want:    false,
		},
		{
			name: "all correct",
			attempt: func() *models.GuessAttempt {
				a := attemptFor(t, "ccccc")
				return &a
			}(),
			want: true,
		},
		{
			name: "one misplaced",
			attempt: func() *models.GuessAttempt {
				a := attemptFor(t, "ccmcc")
				return &a
			}(),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.attempt); got != tt.want {
				t.Errorf("IsCorrect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSolvedIsFailed(t *testing.T) {
	win := attemptFor(t, "ccccc")
	miss := attemptFor(t, "cmiic")

	tests := []struct {
		name       string
		attempts   []models.GuessAttempt
		wantSolved bool
		wantFailed bool
	}{
		{
			name:       "no attempts",
			attempts:   nil,
			wantSolved: false,
			wantFailed: false,
		},
		{
			name:       "solved on first try",
			attempts:   []models.GuessAttempt{win},
			wantSolved: true,
			wantFailed: false,
		},
		{
			name:       "solved on last try",
			attempts:   []models.GuessAttempt{miss, miss, miss, miss, miss, win},
			wantSolved: true,
			wantFailed: false,
		},
		{
			name:       "failed after six misses",
			attempts:   []models.GuessAttempt{miss, miss, miss, miss, miss, miss},
			wantSolved: false,
			wantFailed: true,
		},
		{
			name:       "in progress",
			attempts:   []models.GuessAttempt{miss, miss, miss},
			wantSolved: false,
			wantFailed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSolved(tt.attempts); got != tt.wantSolved {
				t.Errorf("IsSolved() = %v, want %v", got, tt.wantSolved)
			}
			if got := IsFailed(tt.attempts); got != tt.wantFailed {
				t.Errorf("IsFailed() = %v, want %v", got, tt.wantFailed)
			}
		})
	}
}

func TestCheckGuess(t *testing.T) {
	tests := []struct {
		name     string
		solution string
		guess    string
		want     string
	}{
		{
			name:     "exact match",
			solution: "crane",
			guess:    "crane",
			want:     "ccccc",
		},
		{
			name:     "no letters in common",
			solution: "crane",
			guess:    "doubt",
			want:     "iiiii",
		},
		{
			name:     "misplaced letters",
			solution: "crane",
			guess:    "nacre",
			want:     "mmmmc",
		},
		{
			name:     "duplicate guess letter consumed by correct position",
			solution: "crane",
			guess:    "eagle",
			want:     "imiic",
		},
		{
			name:     "duplicate solution letters both found",
			solution: "geese",
			guess:    "eagle",
			want:     "mimic",
		},
		{
			name:     "case insensitive",
			solution: "CRANE",
			guess:    "crane",
			want:     "ccccc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letters := CheckGuess(tt.solution, tt.guess)
			a := models.GuessAttempt{Attempt: tt.guess, CheckedLetters: letters}
			if got := a.StatusString(); got != tt.want {
				t.Errorf("CheckGuess(%q, %q) = %q, want %q", tt.solution, tt.guess, got, tt.want)
			}
		})
	}
}

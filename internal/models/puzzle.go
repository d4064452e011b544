package models

import "time"

// PuzzleType distinguishes the system-created daily puzzle from
// user-created training puzzles.
type PuzzleType string

const (
	PuzzleTypeDaily    PuzzleType = "daily"
	PuzzleTypeTraining PuzzleType = "training"
)

// Valid reports whether the puzzle type is one of the known types.
func (t PuzzleType) Valid() bool {
	return t == PuzzleTypeDaily || t == PuzzleTypeTraining
}

// Puzzle is a single word-guessing puzzle. CreatorID is nil for daily
// puzzles (created by the scheduler) and set for training puzzles.
type Puzzle struct {
	ID        int64
	Type      PuzzleType
	Solution  string
	CreatorID *int64
	Year      int
	Month     int
	Day       int
	SolvedBy  []int64
	CreatedAt time.Time
}

// Date returns the puzzle's calendar date in the given location.
func (p *Puzzle) Date(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.Day, 0, 0, 0, 0, loc)
}

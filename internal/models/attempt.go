package models

import (
	"fmt"
	"time"
)

// WordLength is the fixed length of every solution and guess.
const WordLength = 5

// MaxAttempts is the most guesses a user gets per puzzle.
const MaxAttempts = 6

// LetterStatus is the judgement for a single letter of a guess.
type LetterStatus string

const (
	// LetterInvalid means the letter does not appear in the solution.
	LetterInvalid LetterStatus = "invalid"
	// LetterMisplaced means the letter appears at a different index.
	LetterMisplaced LetterStatus = "misplaced"
	// LetterCorrect means the letter is at the right index.
	LetterCorrect LetterStatus = "correct"
)

// CheckedLetter is one letter of a guess together with its judgement.
type CheckedLetter struct {
	Letter string
	Index  int
	Status LetterStatus
}

// GuessAttempt is a single submitted guess. Immutable once created.
type GuessAttempt struct {
	ID             int64
	PuzzleID       int64
	UserID         int64
	Attempt        string
	CheckedLetters []CheckedLetter
	CreatedAt      time.Time
}

// statusCodes maps each status to its single-character storage code.
var statusCodes = map[LetterStatus]byte{
	LetterInvalid:   'i',
	LetterMisplaced: 'm',
	LetterCorrect:   'c',
}

// StatusString encodes the checked letters as a compact string like
// "cmiic", one character per letter, for storage.
func (a *GuessAttempt) StatusString() string {
	buf := make([]byte, len(a.CheckedLetters))
	for i, cl := range a.CheckedLetters {
		buf[i] = statusCodes[cl.Status]
	}
	return string(buf)
}

// DecodeStatuses rebuilds CheckedLetters from the attempt text and the
// compact status string produced by StatusString.
func (a *GuessAttempt) DecodeStatuses(statuses string) error {
	if len(statuses) != len(a.Attempt) {
		return fmt.Errorf("status string %q does not match attempt %q", statuses, a.Attempt)
	}

	letters := make([]CheckedLetter, len(statuses))
	for i := 0; i < len(statuses); i++ {
		var status LetterStatus
		switch statuses[i] {
		case 'i':
			status = LetterInvalid
		case 'm':
			status = LetterMisplaced
		case 'c':
			status = LetterCorrect
		default:
			return fmt.Errorf("unknown letter status code %q", statuses[i])
		}
		letters[i] = CheckedLetter{
			Letter: string(a.Attempt[i]),
			Index:  i,
			Status: status,
		}
	}

	a.CheckedLetters = letters
	return nil
}

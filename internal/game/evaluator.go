package game

import (
	"strings"

	"wordstreak/internal/models"
)

// IsCorrect reports whether every letter of the attempt was judged
// correct. A nil attempt is never correct.
func IsCorrect(attempt *models.GuessAttempt) bool {
	if attempt == nil || len(attempt.CheckedLetters) == 0 {
		return false
	}
	for _, cl := range attempt.CheckedLetters {
		if cl.Status != models.LetterCorrect {
			return false
		}
	}
	return true
}

// IsSolved reports whether the puzzle was solved: the last attempt in
// creation order is fully correct. Attempts must be sorted ascending by
// creation time.
func IsSolved(attempts []models.GuessAttempt) bool {
	if len(attempts) == 0 {
		return false
	}
	return IsCorrect(&attempts[len(attempts)-1])
}

// IsFailed reports whether the puzzle was failed: all six attempts used
// and the last one is not correct.
func IsFailed(attempts []models.GuessAttempt) bool {
	if len(attempts) != models.MaxAttempts {
		return false
	}
	return !IsCorrect(&attempts[len(attempts)-1])
}

// CheckGuess judges each letter of a guess against the solution.
// Correct positions are marked first; remaining solution letters then
// satisfy misplaced guesses left to right, so a guess never shows more
// misplaced copies of a letter than the solution actually holds.
func CheckGuess(solution, guess string) []models.CheckedLetter {
	solution = strings.ToLower(solution)
	guess = strings.ToLower(guess)

	letters := make([]models.CheckedLetter, len(guess))
	remaining := make(map[byte]int)

	for i := 0; i < len(guess); i++ {
		letters[i] = models.CheckedLetter{
			Letter: string(guess[i]),
			Index:  i,
			Status: models.LetterInvalid,
		}
		if i < len(solution) && guess[i] == solution[i] {
			letters[i].Status = models.LetterCorrect
		} else if i < len(solution) {
			remaining[solution[i]]++
		}
	}

	for i := 0; i < len(guess); i++ {
		if letters[i].Status == models.LetterCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			letters[i].Status = models.LetterMisplaced
			remaining[guess[i]]--
		}
	}

	return letters
}

package validation

import (
	"strings"

	"wordstreak/internal/game"
	"wordstreak/internal/models"
)

// inviteCodeAlphabet is the set of characters invite codes are drawn from.
// Visually confusable characters (0/O, 1/I, 9/g) are excluded.
const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ12345678"

// InviteCodeLength is the fixed length of leaderboard invite codes.
const InviteCodeLength = 6

// ValidateWord checks that a word is exactly five lowercase ASCII letters.
func ValidateWord(word string) error {
	if len(word) != models.WordLength {
		return game.Validationf("word must be exactly %d letters", models.WordLength)
	}
	for _, c := range word {
		if c < 'a' || c > 'z' {
			return game.Validationf("word must contain only lowercase letters a-z")
		}
	}
	return nil
}

// ValidateCheckedLetters checks the structural invariants of a judged
// guess: five letters, indexes 0..4 in order, known statuses.
func ValidateCheckedLetters(letters []models.CheckedLetter) error {
	if len(letters) != models.WordLength {
		return game.Validationf("expected %d checked letters, got %d", models.WordLength, len(letters))
	}
	for i, cl := range letters {
		if cl.Index != i {
			return game.Validationf("checked letter %d has index %d", i, cl.Index)
		}
		switch cl.Status {
		case models.LetterInvalid, models.LetterMisplaced, models.LetterCorrect:
		default:
			return game.Validationf("checked letter %d has unknown status %q", i, cl.Status)
		}
	}
	return nil
}

// ValidateInviteCode checks the shape of an invite code without touching
// storage. Codes are upper-cased before checking so users can type them
// in either case.
func ValidateInviteCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != InviteCodeLength {
		return game.Validationf("invite code must be exactly %d characters", InviteCodeLength)
	}
	for _, c := range code {
		if !strings.ContainsRune(inviteCodeAlphabet, c) {
			return game.Validationf("invite code contains invalid character %q", c)
		}
	}
	return nil
}

// NormalizeInviteCode trims and upper-cases an invite code for lookup.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateLeaderboardName checks a private leaderboard's display name.
func ValidateLeaderboardName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return game.Validationf("leaderboard name must be at least 2 characters")
	}
	if len(name) > 50 {
		return game.Validationf("leaderboard name must be at most 50 characters")
	}
	return nil
}

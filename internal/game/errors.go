package game

import (
	"errors"
	"fmt"
)

// Kind classifies a game error so callers can branch on the category
// instead of matching message strings.
type Kind int

const (
	// KindValidation marks caller faults: malformed or unknown input.
	KindValidation Kind = iota
	// KindConflict marks actionable user-facing conflicts, e.g. joining
	// a leaderboard twice.
	KindConflict
	// KindNotFound marks lookups of entities that do not exist.
	KindNotFound
	// KindExhaustion marks rare retry-budget failures that abort the
	// whole operation.
	KindExhaustion
	// KindInvariant marks data corruption from an upstream writer. These
	// must be logged loudly, never silently corrected.
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindExhaustion:
		return "exhaustion"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is a classified game error.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is lets errors.Is match two classified errors by message and kind,
// which makes the sentinel values below usable as targets.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.msg == t.msg
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

var (
	// ErrEmptyDictionary is returned when word selection has no
	// candidates. Fatal to puzzle creation; must propagate.
	ErrEmptyDictionary = newError(KindValidation, "dictionary has no candidate words")

	// ErrCodeAllocationExhausted is returned when invite-code generation
	// collides on every retry.
	ErrCodeAllocationExhausted = newError(KindExhaustion, "could not allocate a unique invite code")

	// ErrInvalidInviteCode is returned when no leaderboard matches the
	// supplied invite code.
	ErrInvalidInviteCode = newError(KindValidation, "invalid invite code")

	// ErrAlreadyJoined is returned when a user joins a leaderboard they
	// already belong to.
	ErrAlreadyJoined = newError(KindConflict, "already a member of this leaderboard")

	// ErrCreatorCannotLeave is returned when a creator tries to leave
	// their own leaderboard instead of deleting it.
	ErrCreatorCannotLeave = newError(KindConflict, "the creator cannot leave a leaderboard, only delete it")

	// ErrPuzzleComplete is returned when a guess arrives for a puzzle
	// the user has already finished.
	ErrPuzzleComplete = newError(KindConflict, "puzzle already completed")

	// ErrNotCreator is returned when a non-creator tries to delete a
	// private leaderboard.
	ErrNotCreator = newError(KindConflict, "only the creator can delete a leaderboard")

	// ErrPuzzleNotFound is returned when a puzzle id matches nothing.
	ErrPuzzleNotFound = newError(KindNotFound, "puzzle not found")

	// ErrLeaderboardNotFound is returned when a leaderboard id matches
	// nothing.
	ErrLeaderboardNotFound = newError(KindNotFound, "leaderboard not found")
)

// Invariantf builds a KindInvariant error describing corrupt data.
func Invariantf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvariant, msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a KindValidation error from a caller fault.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain. The second return value
// is false when the chain contains no classified error.
func KindOf(err error) (Kind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}

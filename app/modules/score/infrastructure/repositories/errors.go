package scoredb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrNotFound indicates the requested pending entry or score record does
	// not exist. For pending entries this is also what the loser of a
	// concurrent verify/discard race observes.
	ErrNotFound = errors.New("score record not found")

	// ErrConflict indicates a unique violation, e.g. a duplicate pending
	// token. Callers retry with a fresh token.
	ErrConflict = errors.New("conflicting record already exists")

	// ErrNoRowsAffected indicates an UPDATE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

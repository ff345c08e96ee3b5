package scoredb

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Repository is the persistence boundary for the pending queue and the score
// ledger. Atomic composes several calls into one transaction; the
// verification workflow runs entirely inside it so a failure partway leaves
// neither a half-written score record nor a removed-but-unpromoted pending
// entry.
type Repository interface {
	// Atomic runs fn against a transaction-scoped Repository. Nested calls
	// reuse the surrounding transaction.
	Atomic(ctx context.Context, fn func(Repository) error) error

	// InsertPending stores a new pending submission. Returns ErrConflict on
	// a token collision.
	InsertPending(ctx context.Context, pending *PendingScore) error
	// GetPending looks up a pending submission. Returns ErrNotFound when the
	// token is unknown or already promoted/discarded.
	GetPending(ctx context.Context, token string) (*PendingScore, error)
	// DeletePendingReturning removes a pending submission and returns it in
	// one atomic statement. Exactly one concurrent caller succeeds; the rest
	// get ErrNotFound.
	DeletePendingReturning(ctx context.Context, token string) (*PendingScore, error)
	// PendingIsEmpty reports whether the queue has no entries. Best-effort
	// under concurrency.
	PendingIsEmpty(ctx context.Context) (bool, error)

	// CourseIndex returns the current difficulty index for a course.
	CourseIndex(ctx context.Context, courseID sharedtypes.CourseID) (float64, error)
	// InsertScore appends a record to the ledger and fills in its RoundID.
	InsertScore(ctx context.Context, score *Score) error
	// PlayerAdjustedHistory returns a player's adjusted scores ordered by
	// timestamp, round id breaking ties.
	PlayerAdjustedHistory(ctx context.Context, playerID sharedtypes.PlayerID) ([]HistoryEntry, error)
	// UpdateScoreRating writes the rating snapshot of a single round.
	UpdateScoreRating(ctx context.Context, roundID sharedtypes.RoundID, rating sharedtypes.Rating) error
	// UpsertPlayer creates the player row on their first verified score and
	// updates the current rating afterwards. The display name is only set on
	// insert; name changes go through the player module.
	UpsertPlayer(ctx context.Context, playerID sharedtypes.PlayerID, playerName string, rating sharedtypes.Rating) error
}

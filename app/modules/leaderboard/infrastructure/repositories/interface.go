package leaderboarddb

import (
	"context"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// AdjustedUpdate is one row of a bulk adjusted-score rewrite.
type AdjustedUpdate struct {
	RoundID       sharedtypes.RoundID       `bun:"round_id"`
	AdjustedScore sharedtypes.AdjustedScore `bun:"adjusted_score"`
}

// RatingUpdate is one row of a bulk rating-snapshot rewrite.
type RatingUpdate struct {
	RoundID sharedtypes.RoundID `bun:"round_id"`
	Rating  sharedtypes.Rating  `bun:"rating"`
}

// PlayerRating is one row of a bulk player-rating upsert.
type PlayerRating struct {
	PlayerID sharedtypes.PlayerID `bun:"player_id"`
	Rating   sharedtypes.Rating   `bun:"rating"`
}

// Store is the ranking rebuild's view across the score, course, and player
// tables. The rebuild reads and rewrites the whole ledger, so it gets its own
// cross-table store instead of stitching the per-module repositories.
type Store interface {
	// Atomic runs fn against a transaction-bound store at serializable
	// isolation. The rebuild rewrites derived columns from a full read, so
	// anything weaker can commit a torn view.
	Atomic(ctx context.Context, fn func(Store) error) error

	// AllScores returns the full ledger in chronological order (timestamp,
	// round_id).
	AllScores(ctx context.Context) ([]scoredb.Score, error)
	ListCourses(ctx context.Context) ([]coursedb.Course, error)
	ListPlayers(ctx context.Context) ([]playerdb.Player, error)

	UpdateDifficultyIndices(ctx context.Context, indices map[sharedtypes.CourseID]float64) error
	BulkUpdateAdjusted(ctx context.Context, updates []AdjustedUpdate) error
	BulkUpdateRatings(ctx context.Context, updates []RatingUpdate) error
	// UpsertPlayerRatings writes replayed ratings, inserting a row with a
	// placeholder name for any player the ledger knows but players does not.
	UpsertPlayerRatings(ctx context.Context, ratings []PlayerRating) error

	// UpsertPlayerNames inserts players that do not exist yet and refreshes
	// the names of those that do. Used by the spreadsheet import.
	UpsertPlayerNames(ctx context.Context, players []playerdb.Player) error
	// ReplaceScores truncates the ledger and inserts rows fresh. Used by the
	// spreadsheet import; always followed by a full rebuild.
	ReplaceScores(ctx context.Context, scores []scoredb.Score) error
}

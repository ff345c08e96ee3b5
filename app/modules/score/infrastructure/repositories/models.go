package scoredb

import (
	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// PendingScore is a submitted round waiting for moderator verification. Rows
// are insert-only and removed exactly once, by verify or discard.
type PendingScore struct {
	bun.BaseModel `bun:"table:pending_scores,alias:ps"`

	Token      string                `bun:"token,pk"`
	CreatedAt  int64                 `bun:"created_at,notnull"`
	CourseID   sharedtypes.CourseID  `bun:"course_id,notnull"`
	PlayerID   sharedtypes.PlayerID  `bun:"player_id,notnull"`
	PlayerName string                `bun:"player_name,notnull"`
	Character  sharedtypes.Character `bun:"character,notnull"`
	Score      sharedtypes.Score     `bun:"score,notnull"`
}

// Score is a verified round in the ledger. Everything except adjusted_score
// and rating is immutable once written; those two are rewritten in bulk by
// the ranking rebuild.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	RoundID       sharedtypes.RoundID       `bun:"round_id,pk,autoincrement"`
	Timestamp     int64                     `bun:"timestamp,notnull"`
	CourseID      sharedtypes.CourseID      `bun:"course_id,notnull"`
	PlayerID      sharedtypes.PlayerID      `bun:"player_id,notnull"`
	Character     sharedtypes.Character     `bun:"character,notnull"`
	Score         sharedtypes.Score         `bun:"score,notnull"`
	AdjustedScore sharedtypes.AdjustedScore `bun:"adjusted_score,notnull"`
	Rating        sharedtypes.Rating        `bun:"rating,notnull"`
}

// HistoryEntry is one element of a player's chronological adjusted-score
// history.
type HistoryEntry struct {
	RoundID       sharedtypes.RoundID       `bun:"round_id"`
	AdjustedScore sharedtypes.AdjustedScore `bun:"adjusted_score"`
}

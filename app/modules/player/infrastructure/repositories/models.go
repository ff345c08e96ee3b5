package playerdb

import (
	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Player is created implicitly on a player's first verified score. The
// display name is player-mutable; the rating only changes through
// recomputation.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	PlayerID   sharedtypes.PlayerID `bun:"player_id,pk"`
	PlayerName string               `bun:"player_name,notnull"`
	Rating     sharedtypes.Rating   `bun:"rating,notnull"`
}

// ScoreRow is one verified round joined with its course, most recent first.
// Kept local to avoid a dependency on the score module's models.
type ScoreRow struct {
	Timestamp       int64                     `bun:"timestamp"`
	CourseName      string                    `bun:"course_name"`
	Nine            string                    `bun:"nine"`
	Character       sharedtypes.Character     `bun:"character"`
	Score           sharedtypes.Score         `bun:"score"`
	DifficultyIndex float64                   `bun:"difficulty_index"`
	AdjustedScore   sharedtypes.AdjustedScore `bun:"adjusted_score"`
	Rating          sharedtypes.Rating        `bun:"rating"`
}

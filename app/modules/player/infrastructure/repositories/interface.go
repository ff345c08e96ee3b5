package playerdb

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Repository provides access to the player table and the per-player score
// views backing profiles.
type Repository interface {
	// GetPlayer returns a player row. ErrNotFound when the player has no
	// verified score yet.
	GetPlayer(ctx context.Context, playerID sharedtypes.PlayerID) (*Player, error)
	// UpdateName changes a player's display name. ErrNotFound when the
	// player has no row.
	UpdateName(ctx context.Context, playerID sharedtypes.PlayerID, playerName string) error
	// PlayerScores returns a player's verified rounds joined with course
	// data, most recent first.
	PlayerScores(ctx context.Context, playerID sharedtypes.PlayerID) ([]ScoreRow, error)
}

package playerservice

import (
	"context"

	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// FakePlayerRepo is an in-memory playerdb.Repository.
type FakePlayerRepo struct {
	players map[sharedtypes.PlayerID]playerdb.Player
	scores  map[sharedtypes.PlayerID][]playerdb.ScoreRow
	trace   []string
}

func NewFakePlayerRepo() *FakePlayerRepo {
	return &FakePlayerRepo{
		players: make(map[sharedtypes.PlayerID]playerdb.Player),
		scores:  make(map[sharedtypes.PlayerID][]playerdb.ScoreRow),
	}
}

func (f *FakePlayerRepo) GetPlayer(_ context.Context, playerID sharedtypes.PlayerID) (*playerdb.Player, error) {
	f.trace = append(f.trace, "GetPlayer")
	player, ok := f.players[playerID]
	if !ok {
		return nil, playerdb.ErrNotFound
	}
	return &player, nil
}

func (f *FakePlayerRepo) UpdateName(_ context.Context, playerID sharedtypes.PlayerID, playerName string) error {
	f.trace = append(f.trace, "UpdateName")
	player, ok := f.players[playerID]
	if !ok {
		return playerdb.ErrNotFound
	}
	player.PlayerName = playerName
	f.players[playerID] = player
	return nil
}

func (f *FakePlayerRepo) PlayerScores(_ context.Context, playerID sharedtypes.PlayerID) ([]playerdb.ScoreRow, error) {
	f.trace = append(f.trace, "PlayerScores")
	rows := f.scores[playerID]
	out := make([]playerdb.ScoreRow, len(rows))
	copy(out, rows)
	return out, nil
}

var _ playerdb.Repository = (*FakePlayerRepo)(nil)

package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// PlayerDBImpl is the bun-backed player repository.
type PlayerDBImpl struct {
	DB bun.IDB
}

// New creates a player repository bound to db.
func New(db bun.IDB) *PlayerDBImpl {
	return &PlayerDBImpl{DB: db}
}

var _ Repository = (*PlayerDBImpl)(nil)

func (db *PlayerDBImpl) GetPlayer(ctx context.Context, playerID sharedtypes.PlayerID) (*Player, error) {
	var player Player
	err := db.DB.NewSelect().
		Model(&player).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch player %d: %w", playerID, err)
	}
	return &player, nil
}

func (db *PlayerDBImpl) UpdateName(ctx context.Context, playerID sharedtypes.PlayerID, playerName string) error {
	res, err := db.DB.NewUpdate().
		Model((*Player)(nil)).
		Set("player_name = ?", playerName).
		Where("player_id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update name for player %d: %w", playerID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for name update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *PlayerDBImpl) PlayerScores(ctx context.Context, playerID sharedtypes.PlayerID) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := db.DB.NewSelect().
		TableExpr("scores AS s").
		ColumnExpr("s.timestamp, s.character, s.score, s.adjusted_score, s.rating").
		ColumnExpr("c.course_name, c.nine, c.difficulty_index").
		Join("JOIN courses AS c ON c.course_id = s.course_id").
		Where("s.player_id = ?", playerID).
		OrderExpr("s.timestamp DESC, s.round_id DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores for player %d: %w", playerID, err)
	}
	return rows, nil
}

package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// ScoreDBImpl is the bun-backed score repository.
type ScoreDBImpl struct {
	DB bun.IDB
}

// New creates a score repository bound to db, which may be a *bun.DB or a
// transaction.
func New(db bun.IDB) *ScoreDBImpl {
	return &ScoreDBImpl{DB: db}
}

var _ Repository = (*ScoreDBImpl)(nil)

func (db *ScoreDBImpl) Atomic(ctx context.Context, fn func(Repository) error) error {
	bunDB, ok := db.DB.(*bun.DB)
	if !ok {
		// Already transaction-scoped; reuse the surrounding transaction.
		return fn(db)
	}
	// Serializable, same as the ranking rebuild. Postgres only serializes
	// transactions against each other when both run at this level; a weaker
	// verify could read a difficulty index mid-rebuild and commit an adjusted
	// score the rebuild's rewrite never sees. Serialization failures surface
	// as errors and the command is redelivered.
	return bunDB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		return fn(&ScoreDBImpl{DB: tx})
	})
}

func (db *ScoreDBImpl) InsertPending(ctx context.Context, pending *PendingScore) error {
	_, err := db.DB.NewInsert().
		Model(pending).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert pending score %s: %w", pending.Token, err)
	}
	return nil
}

func (db *ScoreDBImpl) GetPending(ctx context.Context, token string) (*PendingScore, error) {
	var pending PendingScore
	err := db.DB.NewSelect().
		Model(&pending).
		Where("token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch pending score %s: %w", token, err)
	}
	return &pending, nil
}

func (db *ScoreDBImpl) DeletePendingReturning(ctx context.Context, token string) (*PendingScore, error) {
	var pending PendingScore
	res, err := db.DB.NewDelete().
		Model(&pending).
		Where("token = ?", token).
		Returning("*").
		Exec(ctx, &pending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete pending score %s: %w", token, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected for pending delete: %w", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return &pending, nil
}

func (db *ScoreDBImpl) PendingIsEmpty(ctx context.Context) (bool, error) {
	count, err := db.DB.NewSelect().
		Model((*PendingScore)(nil)).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count pending scores: %w", err)
	}
	return count == 0, nil
}

func (db *ScoreDBImpl) CourseIndex(ctx context.Context, courseID sharedtypes.CourseID) (float64, error) {
	var course coursedb.Course
	err := db.DB.NewSelect().
		Model(&course).
		Column("difficulty_index").
		Where("course_id = ?", courseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to fetch difficulty index for course %d: %w", courseID, err)
	}
	return course.DifficultyIndex, nil
}

func (db *ScoreDBImpl) InsertScore(ctx context.Context, score *Score) error {
	_, err := db.DB.NewInsert().
		Model(score).
		Returning("round_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert score for player %d: %w", score.PlayerID, err)
	}
	return nil
}

func (db *ScoreDBImpl) PlayerAdjustedHistory(ctx context.Context, playerID sharedtypes.PlayerID) ([]HistoryEntry, error) {
	var history []HistoryEntry
	err := db.DB.NewSelect().
		Model((*Score)(nil)).
		Column("round_id", "adjusted_score").
		Where("player_id = ?", playerID).
		Order("timestamp ASC", "round_id ASC").
		Scan(ctx, &history)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch adjusted history for player %d: %w", playerID, err)
	}
	return history, nil
}

func (db *ScoreDBImpl) UpdateScoreRating(ctx context.Context, roundID sharedtypes.RoundID, rating sharedtypes.Rating) error {
	res, err := db.DB.NewUpdate().
		Model((*Score)(nil)).
		Set("rating = ?", rating).
		Where("round_id = ?", roundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update rating for round %d: %w", roundID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for rating update: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (db *ScoreDBImpl) UpsertPlayer(ctx context.Context, playerID sharedtypes.PlayerID, playerName string, rating sharedtypes.Rating) error {
	player := playerdb.Player{
		PlayerID:   playerID,
		PlayerName: playerName,
		Rating:     rating,
	}
	_, err := db.DB.NewInsert().
		Model(&player).
		On("CONFLICT (player_id) DO UPDATE").
		Set("rating = EXCLUDED.rating").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert player %d: %w", playerID, err)
	}
	return nil
}

package leaderboarddb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	playerdb "github.com/greenside-club/golfbot/app/modules/player/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// StoreImpl is the bun-backed rebuild store.
type StoreImpl struct {
	DB bun.IDB
}

// New creates a store bound to db.
func New(db bun.IDB) *StoreImpl {
	return &StoreImpl{DB: db}
}

var _ Store = (*StoreImpl)(nil)

func (s *StoreImpl) Atomic(ctx context.Context, fn func(Store) error) error {
	db, ok := s.DB.(*bun.DB)
	if !ok {
		// Already transaction-bound.
		return fn(s)
	}
	return db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		return fn(&StoreImpl{DB: tx})
	})
}

func (s *StoreImpl) AllScores(ctx context.Context) ([]scoredb.Score, error) {
	var scores []scoredb.Score
	err := s.DB.NewSelect().
		Model(&scores).
		OrderExpr("timestamp ASC, round_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score ledger: %w", err)
	}
	return scores, nil
}

func (s *StoreImpl) ListCourses(ctx context.Context) ([]coursedb.Course, error) {
	var courses []coursedb.Course
	err := s.DB.NewSelect().
		Model(&courses).
		OrderExpr("course_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return courses, nil
}

func (s *StoreImpl) ListPlayers(ctx context.Context) ([]playerdb.Player, error) {
	var players []playerdb.Player
	err := s.DB.NewSelect().
		Model(&players).
		OrderExpr("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}
	return players, nil
}

func (s *StoreImpl) UpdateDifficultyIndices(ctx context.Context, indices map[sharedtypes.CourseID]float64) error {
	for courseID, index := range indices {
		_, err := s.DB.NewUpdate().
			Model((*coursedb.Course)(nil)).
			Set("difficulty_index = ?", index).
			Where("course_id = ?", courseID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update difficulty index for course %d: %w", courseID, err)
		}
	}
	return nil
}

func (s *StoreImpl) BulkUpdateAdjusted(ctx context.Context, updates []AdjustedUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	values := s.DB.NewValues(&updates)
	_, err := s.DB.NewUpdate().
		With("_data", values).
		Model((*scoredb.Score)(nil)).
		TableExpr("_data").
		Set("adjusted_score = _data.adjusted_score").
		Where("s.round_id = _data.round_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to bulk update adjusted scores: %w", err)
	}
	return nil
}

func (s *StoreImpl) BulkUpdateRatings(ctx context.Context, updates []RatingUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	values := s.DB.NewValues(&updates)
	_, err := s.DB.NewUpdate().
		With("_data", values).
		Model((*scoredb.Score)(nil)).
		TableExpr("_data").
		Set("rating = _data.rating").
		Where("s.round_id = _data.round_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to bulk update rating snapshots: %w", err)
	}
	return nil
}

func (s *StoreImpl) UpsertPlayerRatings(ctx context.Context, ratings []PlayerRating) error {
	if len(ratings) == 0 {
		return nil
	}
	// Insert-or-update so a replay over scores for a player without a players
	// row (e.g. an imported ledger with no Players sheet entry) still lands a
	// rating. The placeholder name only applies on insert; existing names win.
	players := make([]playerdb.Player, 0, len(ratings))
	for _, r := range ratings {
		players = append(players, playerdb.Player{
			PlayerID:   r.PlayerID,
			PlayerName: fmt.Sprintf("Player %d", r.PlayerID),
			Rating:     r.Rating,
		})
	}
	_, err := s.DB.NewInsert().
		Model(&players).
		On("CONFLICT (player_id) DO UPDATE").
		Set("rating = EXCLUDED.rating").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert player ratings: %w", err)
	}
	return nil
}

func (s *StoreImpl) UpsertPlayerNames(ctx context.Context, players []playerdb.Player) error {
	if len(players) == 0 {
		return nil
	}
	_, err := s.DB.NewInsert().
		Model(&players).
		On("CONFLICT (player_id) DO UPDATE").
		Set("player_name = EXCLUDED.player_name").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert player names: %w", err)
	}
	return nil
}

func (s *StoreImpl) ReplaceScores(ctx context.Context, scores []scoredb.Score) error {
	_, err := s.DB.NewTruncateTable().
		Model((*scoredb.Score)(nil)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to truncate score ledger: %w", err)
	}
	if len(scores) == 0 {
		return nil
	}
	_, err = s.DB.NewInsert().
		Model(&scores).
		ExcludeColumn("round_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert imported scores: %w", err)
	}
	return nil
}

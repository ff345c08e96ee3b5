package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating pending_scores and scores tables...")

		if _, err := db.NewCreateTable().Model((*scoredb.PendingScore)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*scoredb.Score)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// The replay query walks a player's history in timestamp order.
		if _, err := db.NewCreateIndex().
			Model((*scoredb.Score)(nil)).
			Index("scores_player_timestamp_idx").
			IfNotExists().
			Column("player_id", "timestamp", "round_id").
			Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Score tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping pending_scores and scores tables...")

		if _, err := db.NewDropTable().Model((*scoredb.Score)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*scoredb.PendingScore)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Score tables dropped successfully!")
		return nil
	})
}

package coursemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

var courseNames = []string{
	"Toad Highlands",
	"Koopa Park",
	"Shy Guy Desert",
	"Yoshi's Island",
	"Boo Valley",
	"Mario's Star",
}

var nines = []string{"Front 9", "Back 9"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating courses table...")

		if _, err := db.NewCreateTable().Model((*coursedb.Course)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Seed the fixed roster: 6 courses x 2 nines -> course ids 1..12.
		var seed []coursedb.Course
		id := sharedtypes.CourseID(1)
		for _, name := range courseNames {
			for _, nine := range nines {
				seed = append(seed, coursedb.Course{
					CourseID:        id,
					CourseName:      name,
					Nine:            nine,
					DifficultyIndex: 0,
				})
				id++
			}
		}

		if _, err := db.NewInsert().Model(&seed).On("CONFLICT (course_id) DO NOTHING").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Courses table created and seeded successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping courses table...")

		if _, err := db.NewDropTable().Model((*coursedb.Course)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Courses table dropped successfully!")
		return nil
	})
}

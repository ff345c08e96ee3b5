package coursedb

import (
	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Course is one nine of a course in the fixed roster, together with its
// current difficulty index. Indices start at 0 and are only rewritten by the
// ranking rebuild.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	CourseID        sharedtypes.CourseID `bun:"course_id,pk"`
	CourseName      string               `bun:"course_name,notnull"`
	Nine            string               `bun:"nine,notnull"`
	DifficultyIndex float64              `bun:"difficulty_index,notnull,default:0"`
}

package coursedb

import (
	"context"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// Repository provides read access to the course roster and its difficulty
// indices. Index writes happen only inside the ranking rebuild transaction
// (leaderboard module).
type Repository interface {
	// ListCourses returns the full roster ordered by course id.
	ListCourses(ctx context.Context) ([]Course, error)
	// GetCourseByName resolves a course name and nine to its roster entry.
	// Returns ErrNotFound when the pair is not in the roster.
	GetCourseByName(ctx context.Context, courseName, nine string) (*Course, error)
	// GetCourse returns the roster entry for a course id.
	GetCourse(ctx context.Context, courseID sharedtypes.CourseID) (*Course, error)
}

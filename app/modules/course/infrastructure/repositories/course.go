package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/shared/sharedtypes"
)

// CourseDBImpl is the bun-backed course repository.
type CourseDBImpl struct {
	DB bun.IDB
}

// New creates a course repository bound to db, which may be a *bun.DB or a
// transaction.
func New(db bun.IDB) *CourseDBImpl {
	return &CourseDBImpl{DB: db}
}

var _ Repository = (*CourseDBImpl)(nil)

func (db *CourseDBImpl) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := db.DB.NewSelect().
		Model(&courses).
		Order("course_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (db *CourseDBImpl) GetCourseByName(ctx context.Context, courseName, nine string) (*Course, error) {
	var course Course
	err := db.DB.NewSelect().
		Model(&course).
		Where("course_name = ?", courseName).
		Where("nine = ?", nine).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch course %q (%s): %w", courseName, nine, err)
	}
	return &course, nil
}

func (db *CourseDBImpl) GetCourse(ctx context.Context, courseID sharedtypes.CourseID) (*Course, error) {
	var course Course
	err := db.DB.NewSelect().
		Model(&course).
		Where("course_id = ?", courseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch course %d: %w", courseID, err)
	}
	return &course, nil
}

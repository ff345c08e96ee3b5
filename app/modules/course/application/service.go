package courseservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// Service exposes course roster operations to the handler layer.
type Service interface {
	GetDifficultyIndices(ctx context.Context) (results.OperationResult, error)
	PickCourse(ctx context.Context, holes int) (results.OperationResult, error)
}

// DifficultyIndexEntry is one row of the published indices table.
type DifficultyIndexEntry struct {
	CourseName      string  `json:"course_name"`
	Nine            string  `json:"nine"`
	DifficultyIndex float64 `json:"difficulty_index"`
}

// DifficultyIndicesResult is the success payload for GetDifficultyIndices.
type DifficultyIndicesResult struct {
	Entries []DifficultyIndexEntry `json:"entries"`
}

// CoursePickResult is the success payload for PickCourse.
type CoursePickResult struct {
	CourseName string `json:"course_name"`
	Nine       string `json:"nine,omitempty"`
}

// CourseFailure is the failure payload for course operations.
type CourseFailure struct {
	Reason string `json:"reason"`
}

// CourseService implements Service.
type CourseService struct {
	repo    coursedb.Repository
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo coursedb.Repository, logger *slog.Logger, metrics observability.Metrics, tracer trace.Tracer) *CourseService {
	return &CourseService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Service = (*CourseService)(nil)

func (s *CourseService) serviceWrapper(ctx context.Context, operationName string, op func(ctx context.Context) (results.OperationResult, error)) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "CourseService")
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "CourseService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Recovered from panic in course operation",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "CourseService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.metrics.RecordOperationFailure(ctx, operationName, "CourseService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "CourseService")
	return result, nil
}

// GetDifficultyIndices returns the current per-course difficulty indices.
func (s *CourseService) GetDifficultyIndices(ctx context.Context) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "GetDifficultyIndices", func(ctx context.Context) (results.OperationResult, error) {
		courses, err := s.repo.ListCourses(ctx)
		if err != nil {
			return results.OperationResult{}, err
		}

		entries := make([]DifficultyIndexEntry, 0, len(courses))
		for _, course := range courses {
			entries = append(entries, DifficultyIndexEntry{
				CourseName:      course.CourseName,
				Nine:            course.Nine,
				DifficultyIndex: course.DifficultyIndex,
			})
		}
		return results.OperationResult{Success: &DifficultyIndicesResult{Entries: entries}}, nil
	})
}

// PickCourse picks a random course for an 18-hole game, or a random course
// and nine for a 9-hole game.
func (s *CourseService) PickCourse(ctx context.Context, holes int) (results.OperationResult, error) {
	return s.serviceWrapper(ctx, "PickCourse", func(ctx context.Context) (results.OperationResult, error) {
		if holes != 9 && holes != 18 {
			return results.OperationResult{
				Failure: &CourseFailure{Reason: "holes must be 9 or 18"},
			}, nil
		}

		courses, err := s.repo.ListCourses(ctx)
		if err != nil {
			return results.OperationResult{}, err
		}
		if len(courses) == 0 {
			return results.OperationResult{
				Failure: &CourseFailure{Reason: "course roster is empty"},
			}, nil
		}

		pick := courses[rand.IntN(len(courses))]
		result := &CoursePickResult{CourseName: pick.CourseName}
		if holes == 9 {
			result.Nine = pick.Nine
		}
		return results.OperationResult{Success: result}, nil
	})
}

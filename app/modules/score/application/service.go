package scoreservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	coursedb "github.com/greenside-club/golfbot/app/modules/course/infrastructure/repositories"
	scoredb "github.com/greenside-club/golfbot/app/modules/score/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// ScoreService implements the Service interface.
type ScoreService struct {
	repo    scoredb.Repository
	courses coursedb.Repository
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	repo scoredb.Repository,
	courses coursedb.Repository,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) *ScoreService {
	return &ScoreService{
		repo:    repo,
		courses: courses,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

var _ Service = (*ScoreService)(nil)

// serviceWrapper standardizes tracing, metrics, and panic recovery across
// service methods.
func (s *ScoreService) serviceWrapper(ctx context.Context, operationName string, op func(ctx context.Context) (results.OperationResult, error)) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "ScoreService")
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ScoreService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Recovered from panic in score operation",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "ScoreService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Score operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "ScoreService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Score operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Any("failure", result.Failure),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ScoreService")
	return result, nil
}

// QueueIsEmpty reports whether the pending queue is empty. Best-effort: a
// concurrent submit may race this check, which is fine for its use as a
// short-circuit.
func (s *ScoreService) QueueIsEmpty(ctx context.Context) (bool, error) {
	return s.repo.PendingIsEmpty(ctx)
}

package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddb "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	store   leaderboarddb.Store
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	store leaderboarddb.Store,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Service = (*LeaderboardService)(nil)

// serviceWrapper standardizes tracing, metrics, and panic recovery across
// service methods.
func (s *LeaderboardService) serviceWrapper(ctx context.Context, operationName string, op func(ctx context.Context) (results.OperationResult, error)) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "LeaderboardService")
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "LeaderboardService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Recovered from panic in leaderboard operation",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Leaderboard operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "LeaderboardService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Leaderboard operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Any("failure", result.Failure),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "LeaderboardService")
	return result, nil
}

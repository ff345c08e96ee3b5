package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	"github.com/greenside-club/golfbot/app/eventbus"
	leaderboardservice "github.com/greenside-club/golfbot/app/modules/leaderboard/application"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/observability"
)

// rebuildInterval is how often the periodic rebuild fires regardless of
// activity.
const rebuildInterval = 12 * time.Hour

// QueueService schedules ranking rebuilds.
type QueueService interface {
	// EnqueueRebuild requests an on-demand rebuild. Deduplicated by args, so
	// repeated triggers while one is queued collapse into a single run.
	EnqueueRebuild(ctx context.Context, reason string) error
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles rebuild scheduling using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	db      *bun.DB
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewService creates a River-based queue service with the periodic rebuild
// registered. River needs pgx rather than database/sql, so it gets its own
// pool alongside the bun DB.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics observability.Metrics, svc leaderboardservice.Service, eventBus eventbus.EventBus) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRebuildWorker(svc, eventBus, ctxLogger))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			// Rebuilds rewrite the whole ledger; never run two at once.
			river.QueueDefault: {MaxWorkers: 1},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(rebuildInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return RebuildJob{Reason: "scheduled"}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.InfoContext(ctx, "Leaderboard queue service initialized")
	return &Service{
		client:  riverClient,
		pool:    pool,
		db:      bunDB,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Leaderboard queue service started")
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Leaderboard queue service stopped")
	return nil
}

func (s *Service) EnqueueRebuild(ctx context.Context, reason string) error {
	s.metrics.RecordOperationAttempt(ctx, "EnqueueRebuild", "river")
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "EnqueueRebuild", "river", time.Since(startTime))
	}()

	jobResult, err := s.client.Insert(ctx, RebuildJob{Reason: reason}, &river.InsertOpts{
		UniqueOpts: river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "EnqueueRebuild", "river")
		return fmt.Errorf("failed to enqueue rebuild: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "EnqueueRebuild", "river")
	s.logger.InfoContext(ctx, "Rebuild enqueued",
		attr.String("reason", reason),
		attr.Int64("job_id", jobResult.Job.ID),
		attr.Bool("duplicate", jobResult.UniqueSkippedAsDuplicate),
	)
	return nil
}

// HealthCheck verifies River's job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}

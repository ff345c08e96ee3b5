package leaderboardqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/greenside-club/golfbot/app/eventbus"
	leaderboardservice "github.com/greenside-club/golfbot/app/modules/leaderboard/application"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/events"
)

// RebuildWorker runs the ranking rebuild and publishes the reporting events
// once it commits. Errors are returned to River so a failed rebuild is
// retried with backoff instead of being dropped.
type RebuildWorker struct {
	river.WorkerDefaults[RebuildJob]

	service  leaderboardservice.Service
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

func NewRebuildWorker(service leaderboardservice.Service, eventBus eventbus.EventBus, logger *slog.Logger) *RebuildWorker {
	return &RebuildWorker{service: service, eventBus: eventBus, logger: logger}
}

func (w *RebuildWorker) Work(ctx context.Context, job *river.Job[RebuildJob]) error {
	w.logger.InfoContext(ctx, "Ranking rebuild job started",
		attr.String("reason", job.Args.Reason),
		attr.Int("attempt", job.Attempt),
	)

	result, err := w.service.RebuildRankings(ctx)
	if err != nil {
		return fmt.Errorf("ranking rebuild job failed: %w", err)
	}
	if result.Failure != nil {
		return fmt.Errorf("ranking rebuild job returned failure: %v", result.Failure)
	}

	rebuilt, ok := result.Success.(*leaderboardservice.RebuildResult)
	if !ok {
		return fmt.Errorf("unexpected rebuild result type %T", result.Success)
	}

	// Reporting is best-effort: the rebuild is committed, the next run
	// republishes the same state anyway.
	if err := w.publishReport(ctx, events.LeaderboardUpdated, rebuilt.Leaderboard); err != nil {
		w.logger.WarnContext(ctx, "Failed to publish leaderboard report", attr.Error(err))
	}
	if err := w.publishReport(ctx, events.CourseIndicesUpdated, rebuilt.Indices); err != nil {
		w.logger.WarnContext(ctx, "Failed to publish indices report", attr.Error(err))
	}
	if err := w.publishWorkbook(ctx); err != nil {
		w.logger.WarnContext(ctx, "Failed to publish workbook export", attr.Error(err))
	}

	w.logger.InfoContext(ctx, "Ranking rebuild job finished",
		attr.String("reason", job.Args.Reason),
		attr.Int("players", len(rebuilt.Leaderboard)),
	)
	return nil
}

func (w *RebuildWorker) publishReport(ctx context.Context, subject string, payload any) error {
	msg, err := events.NewMessage(payload)
	if err != nil {
		return err
	}
	return w.eventBus.Publish(ctx, subject, msg)
}

// publishWorkbook exports the freshly rebuilt ledger and publishes the xlsx
// snapshot so subscribers can mirror it.
func (w *RebuildWorker) publishWorkbook(ctx context.Context) error {
	result, err := w.service.ExportWorkbook(ctx)
	if err != nil {
		return err
	}
	if result.Failure != nil {
		return fmt.Errorf("workbook export returned failure: %v", result.Failure)
	}
	exported, ok := result.Success.(*leaderboardservice.ExportResult)
	if !ok {
		return fmt.Errorf("unexpected export result type %T", result.Success)
	}
	return w.publishReport(ctx, events.LeaderboardExported, exported)
}

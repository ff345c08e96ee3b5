package leaderboardhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	leaderboardservice "github.com/greenside-club/golfbot/app/modules/leaderboard/application"
	leaderboardqueue "github.com/greenside-club/golfbot/app/modules/leaderboard/infrastructure/queue"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/events"
	"github.com/greenside-club/golfbot/app/shared/observability"
)

// Handlers processes leaderboard command messages.
type Handlers interface {
	HandleRecompute(msg *message.Message) ([]*message.Message, error)
	HandleTop(msg *message.Message) ([]*message.Message, error)
	HandleExport(msg *message.Message) ([]*message.Message, error)
	HandleImport(msg *message.Message) ([]*message.Message, error)
}

// RecomputeAccepted is the success payload of HandleRecompute; the rebuild
// itself runs asynchronously on the job queue.
type RecomputeAccepted struct {
	Reason string `json:"reason"`
}

// LeaderboardHandlers handles leaderboard command messages.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	queue   leaderboardqueue.QueueService
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	queue leaderboardqueue.QueueService,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Handlers = (*LeaderboardHandlers)(nil)

func (h *LeaderboardHandlers) handlerWrapper(
	msg *message.Message,
	handlerName string,
	handlerFunc func(ctx context.Context) (events.ResultEnvelope, error),
) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), handlerName)
	defer span.End()
	ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

	h.metrics.RecordOperationAttempt(ctx, handlerName, "LeaderboardHandlers")
	startTime := time.Now()
	defer func() {
		h.metrics.RecordOperationDuration(ctx, handlerName, "LeaderboardHandlers", time.Since(startTime))
	}()

	envelope, err := handlerFunc(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error in "+handlerName,
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		h.metrics.RecordOperationFailure(ctx, handlerName, "LeaderboardHandlers")
		span.RecordError(err)
		return nil, err
	}

	resultMsg, err := events.NewResultMessage(msg, envelope)
	if err != nil {
		h.metrics.RecordOperationFailure(ctx, handlerName, "LeaderboardHandlers")
		return nil, fmt.Errorf("failed to create result message: %w", err)
	}

	h.metrics.RecordOperationSuccess(ctx, handlerName, "LeaderboardHandlers")
	return []*message.Message{resultMsg}, nil
}

// HandleRecompute enqueues an on-demand rebuild. Moderator-gated; the
// periodic schedule covers everyone else.
func (h *LeaderboardHandlers) HandleRecompute(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleRecompute", func(ctx context.Context) (events.ResultEnvelope, error) {
		if !events.IsModerator(msg) {
			return events.ResultEnvelope{
				Failure: &events.PermissionFailure{Reason: "moderator role required"},
			}, nil
		}

		var payload events.RecomputeRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return events.ResultEnvelope{}, err
		}
		if payload.Reason == "" {
			payload.Reason = "manual"
		}

		if err := h.queue.EnqueueRebuild(ctx, payload.Reason); err != nil {
			return events.ResultEnvelope{}, err
		}
		return events.ResultEnvelope{Success: &RecomputeAccepted{Reason: payload.Reason}}, nil
	})
}

func (h *LeaderboardHandlers) HandleTop(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleTop", func(ctx context.Context) (events.ResultEnvelope, error) {
		var payload events.TopRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return events.ResultEnvelope{}, err
		}

		result, err := h.service.GetTopRanked(ctx, payload.Count)
		if err != nil {
			return events.ResultEnvelope{}, err
		}
		return events.ResultEnvelope{Success: result.Success, Failure: result.Failure}, nil
	})
}

// HandleExport returns the current ledger as an xlsx workbook. Read-only,
// so no moderator gate.
func (h *LeaderboardHandlers) HandleExport(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleExport", func(ctx context.Context) (events.ResultEnvelope, error) {
		result, err := h.service.ExportWorkbook(ctx)
		if err != nil {
			return events.ResultEnvelope{}, err
		}
		return events.ResultEnvelope{Success: result.Success, Failure: result.Failure}, nil
	})
}

// HandleImport replaces the ledger with an uploaded workbook. Moderator-gated,
// checked before the payload is even decoded.
func (h *LeaderboardHandlers) HandleImport(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleImport", func(ctx context.Context) (events.ResultEnvelope, error) {
		if !events.IsModerator(msg) {
			return events.ResultEnvelope{
				Failure: &events.PermissionFailure{Reason: "moderator role required"},
			}, nil
		}

		var payload events.ImportRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return events.ResultEnvelope{}, err
		}

		result, err := h.service.ImportWorkbook(ctx, payload.Workbook)
		if err != nil {
			return events.ResultEnvelope{}, err
		}
		return events.ResultEnvelope{Success: result.Success, Failure: result.Failure}, nil
	})
}

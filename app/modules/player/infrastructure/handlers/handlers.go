package playerhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	playerservice "github.com/greenside-club/golfbot/app/modules/player/application"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/events"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// Handlers processes player command messages.
type Handlers interface {
	HandleNameChange(msg *message.Message) ([]*message.Message, error)
	HandleProfile(msg *message.Message) ([]*message.Message, error)
	HandleRecent(msg *message.Message) ([]*message.Message, error)
}

// PlayerHandlers handles player command messages.
type PlayerHandlers struct {
	service playerservice.Service
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewPlayerHandlers creates a new PlayerHandlers.
func NewPlayerHandlers(
	service playerservice.Service,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) Handlers {
	return &PlayerHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Handlers = (*PlayerHandlers)(nil)

func (h *PlayerHandlers) handlerWrapper(
	msg *message.Message,
	handlerName string,
	handlerFunc func(ctx context.Context) (results.OperationResult, error),
) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), handlerName)
	defer span.End()
	ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

	h.metrics.RecordOperationAttempt(ctx, handlerName, "PlayerHandlers")
	startTime := time.Now()
	defer func() {
		h.metrics.RecordOperationDuration(ctx, handlerName, "PlayerHandlers", time.Since(startTime))
	}()

	result, err := handlerFunc(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error in "+handlerName,
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		h.metrics.RecordOperationFailure(ctx, handlerName, "PlayerHandlers")
		span.RecordError(err)
		return nil, err
	}

	resultMsg, err := events.NewResultMessage(msg, events.ResultEnvelope{
		Success: result.Success,
		Failure: result.Failure,
	})
	if err != nil {
		h.metrics.RecordOperationFailure(ctx, handlerName, "PlayerHandlers")
		return nil, fmt.Errorf("failed to create result message: %w", err)
	}

	h.metrics.RecordOperationSuccess(ctx, handlerName, "PlayerHandlers")
	return []*message.Message{resultMsg}, nil
}

func (h *PlayerHandlers) HandleNameChange(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleNameChange", func(ctx context.Context) (results.OperationResult, error) {
		var payload events.NameChangeRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return results.OperationResult{}, err
		}
		return h.service.ChangeDisplayName(ctx, payload.PlayerID, payload.PlayerName)
	})
}

func (h *PlayerHandlers) HandleProfile(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleProfile", func(ctx context.Context) (results.OperationResult, error) {
		var payload events.PlayerRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return results.OperationResult{}, err
		}
		return h.service.GetProfile(ctx, payload.PlayerID)
	})
}

func (h *PlayerHandlers) HandleRecent(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleRecent", func(ctx context.Context) (results.OperationResult, error) {
		var payload events.PlayerRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return results.OperationResult{}, err
		}
		return h.service.GetRecentScores(ctx, payload.PlayerID)
	})
}

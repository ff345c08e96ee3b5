package scorehandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	scoreservice "github.com/greenside-club/golfbot/app/modules/score/application"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/events"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// ScoreHandlers handles score command messages.
type ScoreHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewScoreHandlers creates a new ScoreHandlers.
func NewScoreHandlers(
	service scoreservice.Service,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) Handlers {
	return &ScoreHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Handlers = (*ScoreHandlers)(nil)

// handlerWrapper handles common tracing, logging, and metrics for handlers.
func (h *ScoreHandlers) handlerWrapper(
	msg *message.Message,
	handlerName string,
	handlerFunc func(ctx context.Context) ([]*message.Message, error),
) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), handlerName)
	defer span.End()
	ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

	h.metrics.RecordOperationAttempt(ctx, handlerName, "ScoreHandlers")
	startTime := time.Now()
	defer func() {
		h.metrics.RecordOperationDuration(ctx, handlerName, "ScoreHandlers", time.Since(startTime))
	}()

	h.logger.InfoContext(ctx, handlerName+" triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("message_id", msg.UUID),
	)

	result, err := handlerFunc(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error in "+handlerName,
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		h.metrics.RecordOperationFailure(ctx, handlerName, "ScoreHandlers")
		span.RecordError(err)
		return nil, err
	}

	h.metrics.RecordOperationSuccess(ctx, handlerName, "ScoreHandlers")
	return result, nil
}

func (h *ScoreHandlers) HandleSubmit(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleSubmit", func(ctx context.Context) ([]*message.Message, error) {
		var payload events.SubmitRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return nil, err
		}

		result, err := h.service.Submit(ctx, scoreservice.SubmitInput{
			CourseName: payload.CourseName,
			Nine:       payload.Nine,
			PlayerID:   payload.PlayerID,
			PlayerName: payload.PlayerName,
			Character:  payload.Character,
			Score:      payload.Score,
		})
		if err != nil {
			return nil, err
		}

		resultMsg, err := events.NewResultMessage(msg, events.ResultEnvelope{
			Success: result.Success,
			Failure: result.Failure,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create result message: %w", err)
		}
		return []*message.Message{resultMsg}, nil
	})
}

func (h *ScoreHandlers) HandleVerify(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleVerify", func(ctx context.Context) ([]*message.Message, error) {
		return h.moderatorTokenCommand(ctx, msg, h.service.Verify)
	})
}

func (h *ScoreHandlers) HandleDiscard(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleDiscard", func(ctx context.Context) ([]*message.Message, error) {
		return h.moderatorTokenCommand(ctx, msg, h.service.Discard)
	})
}

// moderatorTokenCommand gates a token command on the moderator flag before
// any state is touched.
func (h *ScoreHandlers) moderatorTokenCommand(
	ctx context.Context,
	msg *message.Message,
	op func(ctx context.Context, token string) (results.OperationResult, error),
) ([]*message.Message, error) {
	if !events.IsModerator(msg) {
		h.logger.WarnContext(ctx, "Rejected non-moderator token command",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_id", msg.UUID),
		)
		resultMsg, err := events.NewResultMessage(msg, events.ResultEnvelope{
			Failure: &events.PermissionFailure{Reason: "moderator role required"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create result message: %w", err)
		}
		return []*message.Message{resultMsg}, nil
	}

	var payload events.TokenRequest
	if err := events.UnmarshalPayload(msg, &payload); err != nil {
		return nil, err
	}

	result, err := op(ctx, payload.Token)
	if err != nil {
		return nil, err
	}

	resultMsg, err := events.NewResultMessage(msg, events.ResultEnvelope{
		Success: result.Success,
		Failure: result.Failure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create result message: %w", err)
	}
	return []*message.Message{resultMsg}, nil
}

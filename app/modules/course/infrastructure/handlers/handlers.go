package coursehandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	courseservice "github.com/greenside-club/golfbot/app/modules/course/application"
	"github.com/greenside-club/golfbot/app/shared/attr"
	"github.com/greenside-club/golfbot/app/shared/events"
	"github.com/greenside-club/golfbot/app/shared/observability"
	"github.com/greenside-club/golfbot/app/shared/results"
)

// Handlers processes course command messages.
type Handlers interface {
	HandleIndices(msg *message.Message) ([]*message.Message, error)
	HandlePick(msg *message.Message) ([]*message.Message, error)
}

// CourseHandlers handles course command messages.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	metrics observability.Metrics
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers.
func NewCourseHandlers(
	service courseservice.Service,
	logger *slog.Logger,
	metrics observability.Metrics,
	tracer trace.Tracer,
) Handlers {
	return &CourseHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

var _ Handlers = (*CourseHandlers)(nil)

func (h *CourseHandlers) handlerWrapper(
	msg *message.Message,
	handlerName string,
	handlerFunc func(ctx context.Context) (results.OperationResult, error),
) ([]*message.Message, error) {
	ctx, span := h.tracer.Start(msg.Context(), handlerName)
	defer span.End()
	ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

	h.metrics.RecordOperationAttempt(ctx, handlerName, "CourseHandlers")
	startTime := time.Now()
	defer func() {
		h.metrics.RecordOperationDuration(ctx, handlerName, "CourseHandlers", time.Since(startTime))
	}()

	result, err := handlerFunc(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error in "+handlerName,
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		h.metrics.RecordOperationFailure(ctx, handlerName, "CourseHandlers")
		span.RecordError(err)
		return nil, err
	}

	resultMsg, err := events.NewResultMessage(msg, events.ResultEnvelope{
		Success: result.Success,
		Failure: result.Failure,
	})
	if err != nil {
		h.metrics.RecordOperationFailure(ctx, handlerName, "CourseHandlers")
		return nil, fmt.Errorf("failed to create result message: %w", err)
	}

	h.metrics.RecordOperationSuccess(ctx, handlerName, "CourseHandlers")
	return []*message.Message{resultMsg}, nil
}

func (h *CourseHandlers) HandleIndices(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandleIndices", func(ctx context.Context) (results.OperationResult, error) {
		return h.service.GetDifficultyIndices(ctx)
	})
}

func (h *CourseHandlers) HandlePick(msg *message.Message) ([]*message.Message, error) {
	return h.handlerWrapper(msg, "HandlePick", func(ctx context.Context) (results.OperationResult, error) {
		var payload events.PickRequest
		if err := events.UnmarshalPayload(msg, &payload); err != nil {
			return results.OperationResult{}, err
		}
		return h.service.PickCourse(ctx, payload.Holes)
	})
}

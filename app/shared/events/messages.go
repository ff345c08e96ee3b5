package events

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// NewMessage builds a message with a fresh UUID and correlation ID.
func NewMessage(payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	middleware.SetCorrelationID(uuid.New().String(), msg)
	return msg, nil
}

// NewResultMessage builds a result message for original, carrying its
// correlation ID forward.
func NewResultMessage(original *message.Message, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result payload: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), data)
	if correlationID := middleware.MessageCorrelationID(original); correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	return msg, nil
}

// UnmarshalPayload decodes a message body into v.
func UnmarshalPayload(msg *message.Message, v any) error {
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// IsModerator reports whether the command carries the moderator flag.
func IsModerator(msg *message.Message) bool {
	return msg.Metadata.Get(MetadataModerator) == "true"
}

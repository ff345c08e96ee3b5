package scorehandlers

import (
	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers processes score command messages.
type Handlers interface {
	HandleSubmit(msg *message.Message) ([]*message.Message, error)
	HandleVerify(msg *message.Message) ([]*message.Message, error)
	HandleDiscard(msg *message.Message) ([]*message.Message, error)
}

package ports

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
)

// NotificationDispatcher delivers an outbox message to the outside world,
// e.g. a mail gateway or a messenger webhook. Implementations must be safe
// to call more than once for the same message: the outbox gives at-least-once
// delivery, not exactly-once.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, message *outbox.Message) error
}

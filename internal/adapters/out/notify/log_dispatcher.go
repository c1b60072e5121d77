// Package notify provides outbound notification dispatchers for outbox messages.
package notify

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/outbox"
)

// LogDispatcher delivers outbox messages to the application log. It stands in
// for a real mail or messenger gateway and is safe to call repeatedly for the
// same message, which the at-least-once outbox requires.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher that writes notifications to the log.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.With("component", "notification_dispatcher")}
}

// Dispatch logs the notification payload.
func (d *LogDispatcher) Dispatch(ctx context.Context, message *outbox.Message) error {
	d.logger.InfoContext(ctx, "notification dispatched",
		"message_id", message.ID().String(),
		"order_id", message.OrderID().String(),
		"kind", message.Kind(),
		"payload", string(message.Payload()),
	)
	return nil
}

package ports

import (
	"context"

	"marketplace/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for notification outbox
// messages. Messages are added in the same transaction as the order change
// that caused them and drained by the dispatch job after commit.
type OutboxRepository interface {
	// Add persists a new outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists dispatch state changes of an existing message.
	Update(ctx context.Context, message *outbox.Message) error

	// GetPending retrieves up to limit pending messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)
}

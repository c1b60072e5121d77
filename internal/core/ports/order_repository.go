// Package ports defines repository and gateway interfaces for the marketplace
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete line item state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns an ObjectAlreadyExistsError wrapping the unique index violation
	// when an order with the same payment session id or order number already
	// exists. Callers use this to resolve concurrent webhook replays.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentSessionID retrieves the order created from a payment session.
	// Used for webhook idempotency: a replayed event resolves to the order
	// the first delivery created.
	GetByPaymentSessionID(ctx context.Context, paymentSessionID string) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllActive retrieves all orders in a non-terminal status, newest first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)
}

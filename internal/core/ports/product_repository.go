package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the catalog.
// Ingestion resolves every line item against it before an order is accepted.
type ProductRepository interface {
	// Add persists a new product to the catalog.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	// Returns an ObjectNotFoundError when the product does not exist.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBatch retrieves all listed products in one round trip.
	// The result is keyed by product id; missing ids are simply absent,
	// the caller decides whether a miss is fatal.
	GetBatch(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}

package ports

import (
	"context"

	"marketplace/internal/core/domain/model/household"
	"marketplace/internal/core/domain/model/kernel"
)

// HouseholdRepository defines the persistence contract for household accounts.
// Ingestion only reads from it to snapshot contact details onto orders.
type HouseholdRepository interface {
	// Add persists a new household account.
	Add(ctx context.Context, aggregate *household.Household) error

	// Get retrieves a household by its unique identifier.
	// Returns an ObjectNotFoundError when the household does not exist.
	Get(ctx context.Context, id kernel.UUID) (*household.Household, error)
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// HouseholdRepoFactory provides access to household repository within a transaction.
	HouseholdRepoFactory interface {
		HouseholdRepository() ports.HouseholdRepository
	}

	// OutboxRepoFactory provides access to outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Status transitions persist the order change and its outbox message
	// in one transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IngestionUoW manages transactions for payment event ingestion.
	// Ingestion reads the catalog and household within the same transaction
	// that inserts the order and its outbox message.
	IngestionUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		HouseholdRepoFactory
		OutboxRepoFactory
	}

	// IngestionUoWFactory creates new ingestion unit of work instances.
	IngestionUoWFactory interface {
		Create() IngestionUoW
	}

	// OutboxUoW manages transactions for outbox dispatch runs.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

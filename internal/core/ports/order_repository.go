package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by their
// delivery status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and takes a row-level lock on
	// it for the remainder of the surrounding transaction. Assignment uses
	// this to serialize concurrent allocation attempts on the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstUnassignedPending retrieves the oldest pending order without a
	// delivery agent. Used by the assignment sweep to find work.
	GetFirstUnassignedPending(ctx context.Context) (*order.Order, error)

	// CountActiveByAgent returns the number of active orders (pending,
	// preparing or in transit) currently assigned to each of the given
	// agents. Agents with no active orders are absent from the result.
	CountActiveByAgent(ctx context.Context, agentIDs []kernel.UUID) (map[kernel.UUID]int, error)
}

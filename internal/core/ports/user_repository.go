// Package ports defines repository interfaces for the bakery domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
// Provides methods for storing, retrieving, and querying users, including
// the delivery-agent candidate set used by the allocator.
type UserRepository interface {
	// Add persists a new user aggregate to storage.
	// The user must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user aggregate.
	// The user must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetForUpdate retrieves a user aggregate and takes a row-level lock on it
	// for the remainder of the surrounding transaction. Ledger mutations use
	// this to serialize concurrent balance updates on the same user.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetAvailableAgents retrieves all users with the delivery role whose
	// driver status is Available. These are the allocator's candidates.
	GetAvailableAgents(ctx context.Context) ([]*user.User, error)
}

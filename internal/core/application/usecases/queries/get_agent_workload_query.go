// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrGetAgentWorkloadQueryIsNotConstructed = errors.New(
	"GetAgentWorkloadQuery must be created via NewGetAgentWorkloadQuery constructor",
)

// GetAgentWorkloadQuery retrieves the current delivery workload per agent.
// A monitoring view: every available delivery agent annotated with the
// number of deliveries currently on their plate, busiest first.
//
// Example:
//
//	query := NewGetAgentWorkloadQuery()
//	handler := NewGetAgentWorkloadQueryHandler(db)
//
//	workload, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve workload: %w", err)
//	}
//
//	for _, agent := range workload {
//	    fmt.Printf("%s: %d active deliveries\n", agent.Name, agent.ActiveOrders)
//	}
type GetAgentWorkloadQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAgentWorkloadQuery creates a query to retrieve agent workloads.
// This is a parameterless query covering all available delivery agents.
func NewGetAgentWorkloadQuery() GetAgentWorkloadQuery {
	return GetAgentWorkloadQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentWorkloadQueryIsNotConstructed if validation fails.
func (q GetAgentWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentWorkloadQueryIsNotConstructed)
}

// GetAgentWorkloadQueryResponse represents one agent's workload in the read model.
type GetAgentWorkloadQueryResponse struct {
	AgentID      kernel.UUID
	Name         string
	Email        string
	ActiveOrders int
}

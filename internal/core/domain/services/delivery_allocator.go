package services

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
)

// ErrAgentNotFound is returned when no suitable delivery agent is available
// for an order. This occurs when no candidates are provided, none of them is
// an available delivery agent, or all of them are excluded.
var ErrAgentNotFound = errors.New("delivery agent not found")

// DeliveryAllocator is a domain service responsible for binding an order to
// exactly one available delivery agent using a fair load-balancing policy.
//
// Selection policy:
//   - Candidates must have the delivery role and Available driver status
//   - The candidate with the strict minimum number of active deliveries wins
//   - Ties are broken by earliest registration date, so long-serving agents
//     are not starved by newly registered ones
//   - An optional excluded agent (one who just failed or declined the
//     delivery) is removed from the candidate set before selection
//
// The allocator performs the in-memory assignment on the order aggregate;
// persisting the updated order is the caller's responsibility, inside a
// transaction that also read the candidate workloads.
//
// Example usage:
//
//	allocator := services.NewDeliveryAllocator()
//	agent, err := allocator.Allocate(o, agents, loads, nil)
//	if errors.Is(err, services.ErrAgentNotFound) {
//	    // No available agents; the order stays unassigned
//	    return
//	}
type DeliveryAllocator struct{}

// NewDeliveryAllocator creates a new DeliveryAllocator instance.
func NewDeliveryAllocator() DeliveryAllocator {
	return DeliveryAllocator{}
}

// Allocate finds the best delivery agent for the given order and assigns it.
//
// Parameters:
//   - o: The order to assign (must be valid and not in a terminal status)
//   - candidates: Delivery agents to consider
//   - activeLoads: Active-delivery counts per agent ID; missing agents count as 0
//   - excludeID: Agent to remove from consideration, or nil
//
// Returns:
//   - *user.User: The agent now assigned to the order
//   - error: ErrAgentNotFound if no suitable agent exists, or validation/assignment errors
func (a DeliveryAllocator) Allocate(
	o *order.Order,
	candidates []*user.User,
	activeLoads map[kernel.UUID]int,
	excludeID *kernel.UUID,
) (*user.User, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := a.findBestAgent(candidates, activeLoads, excludeID)
	if err != nil {
		return nil, err
	}

	if err = o.AssignAgent(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// findBestAgent searches the candidates for the least-loaded available agent.
//
// Selection criteria:
//   - Skips excluded, non-delivery and non-available candidates
//   - Strict minimum active-delivery count wins
//   - Ties go to the earliest registered agent
func (a DeliveryAllocator) findBestAgent(
	candidates []*user.User,
	activeLoads map[kernel.UUID]int,
	excludeID *kernel.UUID,
) (*user.User, error) {
	var (
		best     *user.User
		bestLoad int
	)

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if excludeID != nil && c.ID().IsEqual(*excludeID) {
			continue
		}

		if !c.IsAvailableAgent() {
			continue
		}

		load := activeLoads[c.ID()]
		if best == nil || load < bestLoad ||
			(load == bestLoad && c.RegisteredAt().Before(best.RegisteredAt())) {
			best = c
			bestLoad = load
		}
	}

	if best == nil {
		return nil, ErrAgentNotFound
	}

	return best, nil
}

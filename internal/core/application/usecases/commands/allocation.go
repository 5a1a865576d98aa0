package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/domain/services"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// AssignedAgent describes the outcome of a successful delivery allocation.
// A nil AssignedAgent from a handler means no agent was bound to the order,
// either because no candidate was available or because the attempt failed
// and was absorbed (the log carries the distinction).
type AssignedAgent struct {
	AgentID    kernel.UUID
	AgentName  string
	Reassigned bool
}

// allocateForOrder runs the full allocation flow for one order inside an
// already-begun transaction: load candidates, pick the least-loaded agent,
// bind it to the order, and append the status history record. Assignment
// does not advance the delivery status, so the history row carries the
// order's current status. By convention changed_by is the order's customer.
//
// Returns nil without error when no suitable agent exists.
func allocateForOrder(
	ctx context.Context,
	uow AllocationUoW,
	o *order.Order,
	excludeID *kernel.UUID,
	reassigned bool,
) (*user.User, error) {
	userRepo := uow.UserRepository()
	orderRepo := uow.OrderRepository()

	candidates, err := userRepo.GetAvailableAgents(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	candidateIDs := make([]kernel.UUID, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.ID())
	}

	activeLoads, err := orderRepo.CountActiveByAgent(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	agent, err := services.NewDeliveryAllocator().Allocate(o, candidates, activeLoads, excludeID)
	if errors.Is(err, services.ErrAgentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	verb := "assigned"
	if reassigned {
		verb = "reassigned"
	}

	record, err := order.NewStatusHistory(
		kernel.NewUUID(),
		o.ID(),
		o.Status(),
		o.CustomerID(),
		fmt.Sprintf("Delivery %s to %s", verb, agent.Name()),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	return agent, nil
}

// publishAssignment notifies downstream consumers about a completed
// allocation. Publish failures never affect the allocation outcome.
func publishAssignment(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	o *order.Order,
	agent *user.User,
	reassigned bool,
) {
	event := ports.OrderAssignedEvent{
		OrderID:    o.ID(),
		AgentID:    agent.ID(),
		AgentName:  agent.Name(),
		Reassigned: reassigned,
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishOrderAssigned(ctx, event); err != nil {
		logger.Warn("failed to publish assignment event",
			"order_id", o.ID().String(),
			"agent_id", agent.ID().String(),
			"error", err)
	}
}

// isExpectedAllocationMiss reports whether the error is an expected empty
// condition rather than an infrastructure failure.
func isExpectedAllocationMiss(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}

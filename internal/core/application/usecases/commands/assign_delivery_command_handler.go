package commands

import (
	"context"
	"log/slog"

	"bakery/internal/core/ports"
)

// AssignDeliveryCommandHandler orchestrates binding an agent to an order.
// Loads the order with a row lock so two concurrent assignments of the
// same order serialize instead of racing, then delegates agent selection
// to the domain allocator.
//
// Absence of a suitable agent is an expected operating condition and is
// reported as a nil result. Infrastructure failures are logged and also
// reported as nil: callers treat both as "order stays unassigned" and the
// log carries the distinction.
//
// Example:
//
//	handler := NewAssignDeliveryCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewAssignDeliveryCommand(orderID)
//	agent, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // command was malformed
//	}
//	if agent == nil {
//	    // searching for a driver, retry later
//	}
type AssignDeliveryCommandHandler struct {
	uowFactory AllocationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory AllocationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the assignment command. Returns the chosen agent, or
// nil when no agent could be bound. Only command validation errors are
// returned as errors.
func (h AssignDeliveryCommandHandler) Handle(
	ctx context.Context,
	command AssignDeliveryCommand,
) (*AssignedAgent, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.Error("failed to begin assignment transaction",
			"order_id", command.OrderID().String(),
			"error", err)
		return nil, nil
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		if isExpectedAllocationMiss(err) {
			h.logger.Info("order not found for assignment",
				"order_id", command.OrderID().String())
		} else {
			h.logger.Error("failed to load order for assignment",
				"order_id", command.OrderID().String(),
				"error", err)
		}
		return nil, nil
	}

	agent, err := allocateForOrder(ctx, uow, o, nil, false)
	if err != nil {
		h.logger.Error("delivery assignment failed",
			"order_id", o.ID().String(),
			"error", err)
		return nil, nil
	}
	if agent == nil {
		h.logger.Info("no available agent for order",
			"order_id", o.ID().String())
		return nil, nil
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("failed to commit delivery assignment",
			"order_id", o.ID().String(),
			"agent_id", agent.ID().String(),
			"error", err)
		return nil, nil
	}

	publishAssignment(ctx, h.publisher, h.logger, o, agent, false)

	return &AssignedAgent{
		AgentID:   agent.ID(),
		AgentName: agent.Name(),
	}, nil
}

package commands

import (
	"context"
	"log/slog"

	"bakery/internal/core/ports"
)

// ReassignDeliveryCommandHandler picks a replacement agent for an order.
// The excluded agent, explicit on the command or defaulting to the agent
// currently bound to the order, is removed from the candidate set so a
// failed delivery is never handed straight back to the same agent. Shares
// the allocation flow and error-absorption contract with
// AssignDeliveryCommandHandler.
type ReassignDeliveryCommandHandler struct {
	uowFactory AllocationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReassignDeliveryCommandHandler creates a handler for delivery reassignment.
func NewReassignDeliveryCommandHandler(
	uowFactory AllocationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReassignDeliveryCommandHandler {
	return ReassignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the reassignment command. Returns the newly chosen
// agent, or nil when no replacement could be bound.
func (h ReassignDeliveryCommandHandler) Handle(
	ctx context.Context,
	command ReassignDeliveryCommand,
) (*AssignedAgent, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.Error("failed to begin reassignment transaction",
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
			h.logger.Info("order not found for reassignment",
				"order_id", command.OrderID().String())
		} else {
			h.logger.Error("failed to load order for reassignment",
				"order_id", command.OrderID().String(),
				"error", err)
		}
		return nil, nil
	}

	excludeID := command.ExcludeAgentID()
	if excludeID == nil {
		excludeID = o.Agent()
	}

	agent, err := allocateForOrder(ctx, uow, o, excludeID, true)
	if err != nil {
		h.logger.Error("delivery reassignment failed",
			"order_id", o.ID().String(),
			"error", err)
		return nil, nil
	}
	if agent == nil {
		h.logger.Info("no replacement agent for order",
			"order_id", o.ID().String())
		return nil, nil
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("failed to commit delivery reassignment",
			"order_id", o.ID().String(),
			"agent_id", agent.ID().String(),
			"error", err)
		return nil, nil
	}

	publishAssignment(ctx, h.publisher, h.logger, o, agent, true)

	return &AssignedAgent{
		AgentID:    agent.ID(),
		AgentName:  agent.Name(),
		Reassigned: true,
	}, nil
}

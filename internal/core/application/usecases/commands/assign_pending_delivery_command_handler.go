package commands

import (
	"context"
	"errors"
	"log/slog"

	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

var ErrNoPendingOrderFound = errors.New("no pending unassigned order found")

// AssignPendingDeliveryCommandHandler finds the oldest unassigned pending
// order and runs the allocation flow on it. Used by the background sweep
// so that orders placed while no agent was free eventually get one.
//
// Example:
//
//	handler := NewAssignPendingDeliveryCommandHandler(uowFactory, publisher, logger)
//	cmd := NewAssignPendingDeliveryCommand()
//	agent, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoPendingOrderFound):
//	    // backlog is empty
//	case agent == nil:
//	    // order exists but no agent was available
//	}
type AssignPendingDeliveryCommandHandler struct {
	uowFactory AllocationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignPendingDeliveryCommandHandler creates a handler for the assignment sweep.
func NewAssignPendingDeliveryCommandHandler(
	uowFactory AllocationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignPendingDeliveryCommandHandler {
	return AssignPendingDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the sweep command. Returns ErrNoPendingOrderFound when
// the backlog is empty, and a nil agent when an order exists but could not
// be assigned.
func (h AssignPendingDeliveryCommandHandler) Handle(
	ctx context.Context,
	command AssignPendingDeliveryCommand,
) (*AssignedAgent, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetFirstUnassignedPending(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoPendingOrderFound
	}
	if err != nil {
		return nil, err
	}

	agent, err := allocateForOrder(ctx, uow, o, nil, false)
	if err != nil {
		h.logger.Error("pending delivery assignment failed",
			"order_id", o.ID().String(),
			"error", err)
		return nil, nil
	}
	if agent == nil {
		return nil, nil
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("failed to commit pending delivery assignment",
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

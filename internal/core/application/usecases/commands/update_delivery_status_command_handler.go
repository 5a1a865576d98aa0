package commands

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
)

// UpdateDeliveryStatusCommandHandler advances an order through its delivery
// lifecycle and appends the matching status history record in the same
// transaction. Unlike the allocation handlers, status updates propagate
// every error: the caller must know the transition was rejected.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory AllocationUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory AllocationUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command. Returns domain errors for
// invalid transitions and repository errors for persistence failures.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, command UpdateDeliveryStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.TransitionTo(command.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	record, err := order.NewStatusHistory(
		kernel.NewUUID(),
		o.ID(),
		o.Status(),
		command.ChangedBy(),
		command.Note(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

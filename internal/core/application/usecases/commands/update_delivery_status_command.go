package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances an order's delivery status and
// records who requested the change. The domain model enforces that the
// status only moves forward, with cancellation reachable from the early
// stages only.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	status    order.DeliveryStatus
	changedBy kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to move an order to the
// given delivery status. The note is optional and ends up in the status
// history record.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	status order.DeliveryStatus,
	changedBy kernel.UUID,
	note string,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setChangedBy(changedBy),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the target delivery status.
func (c UpdateDeliveryStatusCommand) Status() order.DeliveryStatus {
	return c.status
}

// ChangedBy returns the identifier of the user requesting the change.
func (c UpdateDeliveryStatusCommand) ChangedBy() kernel.UUID {
	return c.changedBy
}

// Note returns the optional free-form note for the history record.
func (c UpdateDeliveryStatusCommand) Note() string {
	return c.note
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status order.DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *UpdateDeliveryStatusCommand) setChangedBy(changedBy kernel.UUID) error {
	if err := changedBy.Validate(); err != nil {
		return err
	}

	c.changedBy = changedBy
	return nil
}

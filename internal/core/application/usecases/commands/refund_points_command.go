package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrRefundPointsCommandIsNotConstructed = errors.New(
	"RefundPointsCommand must be created via NewRefundPointsCommand constructor",
)

// RefundPointsCommand returns previously redeemed points to the customer
// when an order carrying a redemption is cancelled. The refund amount is
// looked up from the order's redeemed ledger entry, so the command only
// needs the order identifier.
type RefundPointsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefundPointsCommand creates a command to refund the points redeemed
// against the given order. Validates that the order ID is well formed.
func NewRefundPointsCommand(orderID kernel.UUID) (RefundPointsCommand, error) {
	cmd := RefundPointsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RefundPointsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefundPointsCommandIsNotConstructed if validation fails.
func (c RefundPointsCommand) Validate() error {
	return c.guard.Validate(ErrRefundPointsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being refunded.
func (c RefundPointsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RefundPointsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

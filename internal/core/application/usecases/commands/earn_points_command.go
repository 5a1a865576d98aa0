package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrEarnPointsCommandIsNotConstructed = errors.New(
	"EarnPointsCommand must be created via NewEarnPointsCommand constructor",
)

// EarnPointsCommand requests loyalty points for a paid order. The number
// of points is derived from the order total and the customer's membership
// tier, so the command only needs the order identifier.
type EarnPointsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEarnPointsCommand creates a command to award points for the given order.
// Validates that the order ID is well formed.
func NewEarnPointsCommand(orderID kernel.UUID) (EarnPointsCommand, error) {
	cmd := EarnPointsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return EarnPointsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrEarnPointsCommandIsNotConstructed if validation fails.
func (c EarnPointsCommand) Validate() error {
	return c.guard.Validate(ErrEarnPointsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order earning points.
func (c EarnPointsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *EarnPointsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

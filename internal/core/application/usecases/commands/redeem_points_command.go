package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var (
	ErrRedeemPointsCommandIsNotConstructed = errors.New(
		"RedeemPointsCommand must be created via NewRedeemPointsCommand constructor",
	)
	ErrPointsAreInvalid = errors.New("points must be greater than 0")
)

// RedeemPointsCommand spends part of a customer's point balance against an
// order at checkout. One point is worth one currency unit of discount.
type RedeemPointsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	points  int64

	guard guard.ConstructorGuard
}

// NewRedeemPointsCommand creates a command to redeem points against the
// given order. Validates that the order ID is well formed and the point
// amount is positive.
func NewRedeemPointsCommand(orderID kernel.UUID, points int64) (RedeemPointsCommand, error) {
	cmd := RedeemPointsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPoints(points),
	); err != nil {
		return RedeemPointsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRedeemPointsCommandIsNotConstructed if validation fails.
func (c RedeemPointsCommand) Validate() error {
	return c.guard.Validate(ErrRedeemPointsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order carrying the redemption.
func (c RedeemPointsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Points returns the number of points to redeem.
func (c RedeemPointsCommand) Points() int64 {
	return c.points
}

func (c *RedeemPointsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RedeemPointsCommand) setPoints(points int64) error {
	if points <= 0 {
		return ErrPointsAreInvalid
	}

	c.points = points
	return nil
}

package commands

import (
	"errors"

	"bakery/internal/pkg/guard"
)

var ErrAssignPendingDeliveryCommandIsNotConstructed = errors.New(
	"AssignPendingDeliveryCommand must be created via NewAssignPendingDeliveryCommand constructor",
)

// AssignPendingDeliveryCommand triggers assignment for the oldest order
// that is still pending without an agent. This is a parameterless command
// driven by the background sweep: each invocation picks up at most one
// order, so a backlog drains one order per tick.
type AssignPendingDeliveryCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingDeliveryCommand creates a new command to trigger the sweep.
func NewAssignPendingDeliveryCommand() AssignPendingDeliveryCommand {
	return AssignPendingDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPendingDeliveryCommandIsNotConstructed if validation fails.
func (c *AssignPendingDeliveryCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignPendingDeliveryCommandIsNotConstructed,
	)
}

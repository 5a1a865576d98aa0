package commands

import (
	"errors"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/guard"
)

var ErrReassignDeliveryCommandIsNotConstructed = errors.New(
	"ReassignDeliveryCommand must be created via NewReassignDeliveryCommand constructor",
)

// ReassignDeliveryCommand requests a fresh agent for an already-assigned
// order. An explicit agent to exclude from the candidate set may be given;
// when absent, the agent currently bound to the order is excluded. Used
// when the original agent became unavailable or declined the delivery.
type ReassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	excludeAgentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignDeliveryCommand creates a command to reassign the given order.
// Validates that the order ID and the optional excluded agent ID are well
// formed. Pass nil to exclude the order's currently bound agent.
func NewReassignDeliveryCommand(orderID kernel.UUID, excludeAgentID *kernel.UUID) (ReassignDeliveryCommand, error) {
	cmd := ReassignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ReassignDeliveryCommand{}, err
	}

	if err := cmd.setExcludeAgentID(excludeAgentID); err != nil {
		return ReassignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReassignDeliveryCommandIsNotConstructed if validation fails.
func (c ReassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrReassignDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to reassign.
func (c ReassignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExcludeAgentID returns the agent explicitly excluded from the candidate
// set, or nil when the order's currently bound agent should be excluded.
func (c ReassignDeliveryCommand) ExcludeAgentID() *kernel.UUID {
	return c.excludeAgentID
}

func (c *ReassignDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReassignDeliveryCommand) setExcludeAgentID(excludeAgentID *kernel.UUID) error {
	if excludeAgentID == nil {
		return nil
	}

	if err := excludeAgentID.Validate(); err != nil {
		return err
	}

	c.excludeAgentID = excludeAgentID
	return nil
}

package order

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a bakery purchase in the system. It is the aggregate root
// that manages the delivery lifecycle from creation through assignment to
// completion, and carries the authoritative total against which point
// redemption is capped.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and customer identifier
//   - The total includes shipping and never changes after creation
//   - The delivery status advances through the DeliveryStatus state machine
//   - Assigning a delivery agent does not change the delivery status
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the user who placed the order
	customerID kernel.UUID

	// agentID is the assigned delivery agent's ID (nil if unassigned)
	agentID *kernel.UUID

	// total is the order amount including shipping
	total kernel.Money

	// status represents the current state in the delivery lifecycle
	status DeliveryStatus

	// createdAt is when the order was placed
	createdAt time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create a valid Order (besides RestoreOrder for persistence), ensuring all
// business invariants are maintained.
//
// The order starts in Pending status with no delivery agent assigned.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - customerID: The user placing the order (must be valid UUID)
//   - total: Order amount including shipping
//   - createdAt: Placement timestamp (must be non-zero)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id, customerID kernel.UUID, total kernel.Money, createdAt time.Time) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.total = total
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status and optional agent assignment.
func RestoreOrder(
	id, customerID kernel.UUID,
	total kernel.Money,
	status DeliveryStatus,
	agentID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
		id := *agentID
		o.agentID = &id
	}

	o.total = total
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
//
// This method should be called when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the user who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Agent returns the assigned delivery agent's ID.
// Returns nil if no agent is assigned.
func (o *Order) Agent() *kernel.UUID {
	return o.agentID
}

// Total returns the order amount including shipping.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current delivery status of the order.
func (o *Order) Status() DeliveryStatus {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsActive reports whether the order still counts toward its agent's workload.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// AssignAgent binds the order to a delivery agent.
//
// Assignment never changes the delivery status, and re-assigning an
// already-assigned order silently overwrites the previous agent; callers
// decide whether the prior agent must be excluded from selection.
//
// Returns an error only if the agent ID is invalid or the order is in a
// terminal status.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidError("cannot assign an agent to a " + o.status.String() + " order")
	}

	o.agentID = &agentID
	return nil
}

// TransitionTo advances the delivery status through the state machine.
//
// Valid transitions are the monotonic chain Pending → Preparing → InTransit
// → Delivered, plus Cancelled from Pending or Preparing. Invalid transitions
// return an error and leave the order unchanged.
func (o *Order) TransitionTo(target DeliveryStatus) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the owning customer.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setCreatedAt validates and sets the placement timestamp.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

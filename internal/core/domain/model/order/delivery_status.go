package order

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// DeliveryStatus represents the lifecycle state of an order's delivery.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Preparing ──> InTransit ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Assignment of a delivery agent never changes the status; only explicit
// transitions advance it. Delivered and Cancelled are terminal.
//
// DeliveryStatus is a value object that validates state transitions and
// provides string representations for persistence and display.
type DeliveryStatus int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized DeliveryStatus values.
	StatusUnknown DeliveryStatus = iota

	// Pending is the initial status when an order is first created.
	Pending

	// Preparing indicates the bakery is preparing the order.
	Preparing

	// InTransit indicates the order is out for delivery.
	InTransit

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before going out. Terminal.
	Cancelled
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Preparing:     "Preparing",
		InTransit:     "InTransit",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getValidDeliveryStatusStrings() map[DeliveryStatus]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[DeliveryStatus]string{
		Pending:   "Pending",
		Preparing: "Preparing",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the DeliveryStatus value is valid.
// Valid statuses are: Pending, Preparing, InTransit, Delivered, Cancelled.
func (s DeliveryStatus) Validate() error {
	if _, ok := getValidDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether the status counts toward a delivery agent's
// workload. Pending, Preparing and InTransit orders are active; Delivered
// and Cancelled are terminal.
func (s DeliveryStatus) IsActive() bool {
	return s == Pending || s == Preparing || s == InTransit
}

// IsTerminal reports whether no further transitions are possible.
func (s DeliveryStatus) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// next returns the successor in the monotonic advancement chain.
func (s DeliveryStatus) next() (DeliveryStatus, bool) {
	switch s {
	case Pending:
		return Preparing, true
	case Preparing:
		return InTransit, true
	case InTransit:
		return Delivered, true
	default:
		return StatusUnknown, false
	}
}

// TransitionTo validates the transition from the current status to target
// and returns the new status.
//
// Valid transitions:
//   - The immediate successor in Pending → Preparing → InTransit → Delivered
//   - Cancelled, from Pending or Preparing only
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s DeliveryStatus) TransitionTo(target DeliveryStatus) (DeliveryStatus, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if target == Cancelled {
		if s != Pending && s != Preparing {
			return 0, errs.NewValueIsInvalidErrorWithCause(
				"delivery status is invalid",
				fmt.Errorf("%s cannot be cancelled", s.String()),
			)
		}
		return Cancelled, nil
	}

	successor, ok := s.next()
	if !ok || successor != target {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%s cannot transition to %s", s.String(), target.String()),
		)
	}

	return target, nil
}

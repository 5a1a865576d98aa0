package order

import (
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

// ErrStatusHistoryIsNotConstructed is returned when using an improperly initialized StatusHistory.
var ErrStatusHistoryIsNotConstructed = errors.New("StatusHistory must be created via NewStatusHistory constructor")

// StatusHistory is an append-only record of a delivery status event for an
// order. Rows are written when the status changes and when an agent is
// assigned (in which case the row carries the order's current, unchanged
// status). Records are immutable after creation.
type StatusHistory struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    DeliveryStatus
	changedBy kernel.UUID
	note      string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewStatusHistory creates a history record for the given order event.
//
// Parameters:
//   - id: Unique identifier for the record
//   - orderID: The order the event belongs to
//   - status: The order's delivery status at the time of the event
//   - changedBy: The user the event is attributed to
//   - note: Optional human-readable description
//   - createdAt: Event timestamp (must be non-zero)
func NewStatusHistory(
	id, orderID kernel.UUID,
	status DeliveryStatus,
	changedBy kernel.UUID,
	note string,
	createdAt time.Time,
) (*StatusHistory, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
		changedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &StatusHistory{
		id:        id,
		orderID:   orderID,
		status:    status,
		changedBy: changedBy,
		note:      note,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was properly constructed.
func (h *StatusHistory) Validate() error {
	if h == nil {
		return ErrStatusHistoryIsNotConstructed
	}
	return h.guard.Validate(ErrStatusHistoryIsNotConstructed)
}

// ID returns the record's unique identifier.
func (h *StatusHistory) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the event belongs to.
func (h *StatusHistory) OrderID() kernel.UUID {
	return h.orderID
}

// Status returns the delivery status recorded for the event.
func (h *StatusHistory) Status() DeliveryStatus {
	return h.status
}

// ChangedBy returns the user the event is attributed to.
func (h *StatusHistory) ChangedBy() kernel.UUID {
	return h.changedBy
}

// Note returns the optional event description.
func (h *StatusHistory) Note() string {
	return h.note
}

// CreatedAt returns the event timestamp.
func (h *StatusHistory) CreatedAt() time.Time {
	return h.createdAt
}

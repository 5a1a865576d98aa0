package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
)

// OrderAssignedEvent notifies interested parties that an order was bound to a
// delivery agent.
type OrderAssignedEvent struct {
	OrderID    kernel.UUID
	AgentID    kernel.UUID
	AgentName  string
	Reassigned bool
	OccurredAt time.Time
}

// EventPublisher emits domain events to the outside world.
// Publishing is fire-and-forget: a failure to emit is logged by the caller
// but never fails the operation that produced the event.
type EventPublisher interface {
	// PublishOrderAssigned emits an order-assigned notification.
	PublishOrderAssigned(ctx context.Context, event OrderAssignedEvent) error
}

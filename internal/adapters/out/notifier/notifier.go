// Package notifier publishes domain events to downstream consumers.
// The current implementation writes structured log records; swapping in a
// message broker only requires another implementation of the
// ports.EventPublisher interface.
package notifier

import (
	"context"
	"log/slog"

	"bakery/internal/core/ports"
)

// SlogEventPublisher emits assignment events through the structured log.
type SlogEventPublisher struct {
	logger *slog.Logger
}

// NewSlogEventPublisher creates an event publisher backed by the given logger.
func NewSlogEventPublisher(logger *slog.Logger) *SlogEventPublisher {
	return &SlogEventPublisher{
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishOrderAssigned records an order assignment event.
func (p *SlogEventPublisher) PublishOrderAssigned(ctx context.Context, event ports.OrderAssignedEvent) error {
	p.logger.InfoContext(ctx, "order assigned",
		"order_id", event.OrderID.String(),
		"agent_id", event.AgentID.String(),
		"agent_name", event.AgentName,
		"reassigned", event.Reassigned,
		"occurred_at", event.OccurredAt)
	return nil
}

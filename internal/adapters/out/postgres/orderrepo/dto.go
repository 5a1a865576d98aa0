// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Handles the conversion between the order domain
// aggregate and its relational representation.
package orderrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The order total is stored in cents and the delivery status
// as its integer enum value. The composite index on (agent_id, status)
// serves the active-load counting query.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index:idx_orders_agent_status"`
	TotalCents int64
	Status     int `gorm:"index:idx_orders_agent_status"`
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		AgentID:    agentID,
		TotalCents: o.Total().Cents(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		total,
		order.DeliveryStatus(dto.Status),
		agentID,
		dto.CreatedAt,
	)
}

// Package historyrepo persists order status history records. The history
// is a pure append-only audit log: records are written once and never
// read back through the domain, so the repository only supports Add.
package historyrepo

import (
	"time"

	"bakery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusHistoryDTO represents the database structure for persisting status
// history records.
type StatusHistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int
	ChangedBy uuid.UUID `gorm:"type:uuid"`
	Note      string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming convention to use
// "order_status_history".
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(record *order.StatusHistory) StatusHistoryDTO {
	return StatusHistoryDTO{
		ID:        record.ID().Bytes(),
		OrderID:   record.OrderID().Bytes(),
		Status:    int(record.Status()),
		ChangedBy: record.ChangedBy().Bytes(),
		Note:      record.Note(),
		CreatedAt: record.CreatedAt(),
	}
}

// Package ledgerrepo provides data transfer objects and mapping functions
// for point ledger persistence. The ledger is append-only: entries are
// created, never updated, with the single exception of the expiry sweep
// rewriting an earned entry's type to expired.
package ledgerrepo

import (
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
// The entry type is stored as its integer enum value; redeemed entries
// carry a negative points figure. A partial unique index guarantees at
// most one earned and one redeemed entry per order even under concurrent
// requests.
type EntryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index:idx_point_transactions_order_type,unique,where:type IN (1, 2)"`
	Type        int        `gorm:"column:type;index:idx_point_transactions_order_type,unique,where:type IN (1, 2);index:idx_point_transactions_type_expires"`
	Points      int64
	Description string
	ExpiresAt   *time.Time `gorm:"index:idx_point_transactions_type_expires"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default naming convention to use
// "point_transactions".
func (EntryDTO) TableName() string {
	return "point_transactions"
}

func fromDomain(entry *ledger.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := entry.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:          entry.ID().Bytes(),
		UserID:      entry.UserID().Bytes(),
		OrderID:     orderID,
		Type:        int(entry.Type()),
		Points:      entry.Points(),
		Description: entry.Description(),
		ExpiresAt:   entry.ExpiresAt(),
		CreatedAt:   entry.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}

		orderID = &oID
	}

	return ledger.RestoreEntry(
		id,
		userID,
		orderID,
		ledger.EntryType(dto.Type),
		dto.Points,
		dto.Description,
		dto.ExpiresAt,
		dto.CreatedAt,
	)
}

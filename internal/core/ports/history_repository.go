package ports

import (
	"context"

	"bakery/internal/core/domain/model/order"
)

// HistoryRepository is the append sink for order status history records.
// Rows are written on every status transition and on every agent assignment,
// and are never updated or deleted.
type HistoryRepository interface {
	// Add appends a status history record.
	Add(ctx context.Context, record *order.StatusHistory) error
}

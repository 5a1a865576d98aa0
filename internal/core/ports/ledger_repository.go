package ports

import (
	"context"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for point ledger entries.
// The ledger is append-only: entries are inserted and never deleted, and the
// single permitted mutation is rewriting an earned entry to expired.
type LedgerRepository interface {
	// Add persists a new ledger entry.
	// Returns a ValueIsInvalidError when the order already carries an
	// earned or redeemed entry; other entry types are not constrained.
	Add(ctx context.Context, entry *ledger.Entry) error

	// GetRedeemedByOrder retrieves the single redeemed entry for an order.
	// Returns an ObjectNotFoundError when the order carries no redemption.
	GetRedeemedByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.Entry, error)

	// GetEarnedByOrder retrieves the single earned entry for an order.
	// Returns an ObjectNotFoundError when the order has not awarded points.
	GetEarnedByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.Entry, error)

	// GetExpirable retrieves earned entries whose expiry date is at or before
	// now, excluding entries that belong to users whose cached balance is
	// negative. Each returned entry is a candidate for the expiry batch.
	GetExpirable(ctx context.Context, now time.Time) ([]*ledger.Entry, error)

	// MarkExpired persists the earned→expired rewrite of an entry.
	// The entry must already have been expired in memory via Entry.Expire.
	MarkExpired(ctx context.Context, entry *ledger.Entry) error
}

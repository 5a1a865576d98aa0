package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"
	"bakery/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a new entry to the ledger. A second earned or redeemed entry
// for the same order trips the partial unique index and is reported as a
// validation error rather than a raw database error.
func (r *GormLedgerRepository) Add(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("order already has a ledger entry of this type", err)
		}
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetRedeemedByOrder retrieves the redeemed entry for an order, if any.
func (r *GormLedgerRepository) GetRedeemedByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND type = ?", orderID.Bytes(), int(ledger.Redeemed)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("redeemed entry for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEarnedByOrder retrieves the earned entry for an order, if any.
func (r *GormLedgerRepository) GetEarnedByOrder(ctx context.Context, orderID kernel.UUID) (*ledger.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND type = ?", orderID.Bytes(), int(ledger.Earned)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("earned entry for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpirable retrieves earned entries whose expiry date has passed,
// excluding entries owned by users whose cached balance is negative.
// Oldest entries first so long-overdue points are retired before fresher
// ones.
func (r *GormLedgerRepository) GetExpirable(ctx context.Context, now time.Time) ([]*ledger.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("type = ? AND expires_at IS NOT NULL AND expires_at <= ?", int(ledger.Earned), now).
		Where("user_id NOT IN (SELECT id FROM users WHERE points < 0)").
		Order("expires_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkExpired persists the earned-to-expired type rewrite. The update is
// guarded on the stored type still being earned, so a concurrent sweep
// that got there first surfaces as not found instead of a double expiry.
func (r *GormLedgerRepository) MarkExpired(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.Type() != ledger.Expired {
		return errs.NewValueIsInvalidError("entry is not expired")
	}

	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ? AND type = ?", entry.ID().Bytes(), int(ledger.Earned)).
		Update("type", int(ledger.Expired))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("expirable entry", entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

package ledger

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

// expiryTTL is how long earned points remain valid.
const expiryTTLYears = 1

// Domain errors for ledger operations.
var (
	// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via a ledger constructor")
	// ErrEntryNotExpirable is returned when attempting to expire an entry that is not an earned entry.
	ErrEntryNotExpirable = errors.New("only earned entries can expire")
)

// Entry is one record of a point-balance-affecting event. Entries are
// immutable after creation with a single exception: an Earned entry may be
// rewritten to Expired in place when its expiry date passes.
//
// Business rules:
//   - Earned, Refunded entries carry positive points; Redeemed entries
//     carry negative points; Adjusted entries carry any non-zero value
//   - Only Earned entries carry an expiry date (one year after creation)
//   - An order has at most one Earned and at most one Redeemed entry
//     (enforced by the ledger use cases, mirrored by a partial unique
//     index in the persistence layer)
//
// Example usage:
//
//	entry, err := ledger.NewEarnedEntry(kernel.NewUUID(), userID, orderID,
//	    100, "Points earned for order", time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
type Entry struct {
	// id uniquely identifies the entry
	id kernel.UUID
	// userID is the owner of the points
	userID kernel.UUID
	// orderID ties the entry to an order; nil for order-less adjustments and expiry
	orderID *kernel.UUID
	// entryType classifies the recorded event
	entryType EntryType
	// points is the signed balance delta
	points int64
	// description is a human-readable account of the event
	description string
	// expiresAt is set for earned entries only
	expiresAt *time.Time
	// createdAt is when the entry was recorded
	createdAt time.Time
	// guard ensures the entry was properly constructed
	guard guard.ConstructorGuard
}

// NewEarnedEntry creates an Earned entry granting points for an order.
// The entry expires one year after createdAt. Points must be positive.
func NewEarnedEntry(id, userID, orderID kernel.UUID, points int64, description string, createdAt time.Time) (*Entry, error) {
	if points <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	expiresAt := createdAt.AddDate(expiryTTLYears, 0, 0)
	oid := orderID
	return newEntry(id, userID, &oid, Earned, points, description, &expiresAt, createdAt)
}

// NewRedeemedEntry creates a Redeemed entry spending points on an order.
// The points parameter is the positive amount being redeemed; the entry
// stores its negation.
func NewRedeemedEntry(id, userID, orderID kernel.UUID, points int64, description string, createdAt time.Time) (*Entry, error) {
	if points <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	oid := orderID
	return newEntry(id, userID, &oid, Redeemed, -points, description, nil, createdAt)
}

// NewRefundedEntry creates a Refunded entry returning previously redeemed
// points after an order cancellation. Points must be positive.
func NewRefundedEntry(id, userID, orderID kernel.UUID, points int64, description string, createdAt time.Time) (*Entry, error) {
	if points <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	oid := orderID
	return newEntry(id, userID, &oid, Refunded, points, description, nil, createdAt)
}

// NewAdjustedEntry creates an Adjusted entry recording a manual correction.
// The signed points value must be non-zero; orderID may be nil.
func NewAdjustedEntry(id, userID kernel.UUID, orderID *kernel.UUID, points int64, description string, createdAt time.Time) (*Entry, error) {
	if points == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("adjustment of 0 points records nothing"))
	}

	return newEntry(id, userID, orderID, Adjusted, points, description, nil, createdAt)
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id, userID kernel.UUID,
	orderID *kernel.UUID,
	entryType EntryType,
	points int64,
	description string,
	expiresAt *time.Time,
	createdAt time.Time,
) (*Entry, error) {
	return newEntry(id, userID, orderID, entryType, points, description, expiresAt, createdAt)
}

func newEntry(
	id, userID kernel.UUID,
	orderID *kernel.UUID,
	entryType EntryType,
	points int64,
	description string,
	expiresAt *time.Time,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		entryType.Validate(),
	); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	e := &Entry{
		id:          id,
		userID:      userID,
		entryType:   entryType,
		points:      points,
		description: description,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}
	if orderID != nil {
		oid := *orderID
		e.orderID = &oid
	}
	if expiresAt != nil {
		exp := *expiresAt
		e.expiresAt = &exp
	}

	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// IsEqual compares two entries by their unique identifiers.
func (e *Entry) IsEqual(other *Entry) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// UserID returns the owner of the points.
func (e *Entry) UserID() kernel.UUID {
	return e.userID
}

// OrderID returns the order the entry is tied to, or nil.
func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

// Type returns the entry's classification.
func (e *Entry) Type() EntryType {
	return e.entryType
}

// Points returns the signed balance delta recorded by the entry.
func (e *Entry) Points() int64 {
	return e.points
}

// PointsMagnitude returns the absolute point value of the entry.
func (e *Entry) PointsMagnitude() int64 {
	if e.points < 0 {
		return -e.points
	}
	return e.points
}

// Description returns the human-readable account of the event.
func (e *Entry) Description() string {
	return e.description
}

// ExpiresAt returns when the earned points lapse, or nil for other types.
func (e *Entry) ExpiresAt() *time.Time {
	return e.expiresAt
}

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// IsExpirable reports whether the entry is an Earned entry whose expiry
// date is at or before now.
func (e *Entry) IsExpirable(now time.Time) bool {
	return e.entryType == Earned && e.expiresAt != nil && !e.expiresAt.After(now)
}

// Expire rewrites an Earned entry to Expired in place. This is the single
// permitted post-creation mutation of a ledger entry.
//
// Returns ErrEntryNotExpirable for any other entry type; an already expired
// entry cannot expire again.
func (e *Entry) Expire() error {
	if e.entryType != Earned {
		return ErrEntryNotExpirable
	}

	e.entryType = Expired
	return nil
}

// RedemptionDiscount returns the checkout discount obtained by redeeming the
// given number of points against an order total: one point is worth one
// currency unit, and the discount never exceeds the total (which already
// includes shipping). Non-positive point values yield a zero discount.
//
// Pure function with no side effects; used by the checkout workflow to
// preview the effect of a redemption before committing it.
func RedemptionDiscount(points int64, total kernel.Money) kernel.Money {
	if points <= 0 {
		return kernel.Money{}
	}

	asMoney, err := kernel.MoneyFromUnits(points)
	if err != nil || asMoney.Cents() > total.Cents() {
		return total
	}
	return asMoney
}

package user

import (
	"errors"
	"fmt"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"
	"bakery/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrNameIsRequired is returned when attempting to create a user without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a user without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrNotADeliveryAgent is returned when a delivery-only operation is applied to a non-delivery user.
	ErrNotADeliveryAgent = errors.New("user does not have the delivery role")
)

// User represents a platform user in the system. It is an aggregate root that
// carries identity, role, and the loyalty state mutated by the points ledger.
//
// Key responsibilities:
//   - Managing user identity (ID, name, email, role)
//   - Carrying the delivery-agent availability state for delivery-role users
//   - Carrying the membership tier that determines the point earn rate
//   - Mutating the cached points balance via credit/debit operations
//
// Business rules:
//   - Users must have a valid UUID, non-empty name and email, and a valid role
//   - The driver status is only meaningful for users with the Delivery role
//   - Points credits and debits must be positive amounts; the resulting
//     balance may go negative only through expiry of already-spent points
//   - The cached balance must always equal the sum of the user's ledger entries
//
// Example usage:
//
//	agent, err := user.NewUser(kernel.NewUUID(), "June Baker", "june@example.com",
//	    user.RoleDelivery, user.TierNone, registeredAt)
//	if err != nil {
//	    // Handle construction error
//	}
type User struct {
	// id uniquely identifies the user
	id kernel.UUID
	// name is the human-readable name of the user
	name string
	// email is the user's contact address
	email string
	// role is the user's platform role
	role Role
	// driverStatus is the availability of a delivery-role user
	driverStatus DriverStatus
	// tier is the loyalty membership tier
	tier Tier
	// points is the cached loyalty balance, kept in sync with the ledger
	points int64
	// registeredAt is when the user registered; used as the allocator tie-break
	registeredAt time.Time
	// guard ensures the user was properly constructed
	guard guard.ConstructorGuard
}

// NewUser creates a new User with the specified parameters.
// This is the only way to create a valid User instance.
//
// Delivery-role users start in DriverAvailable status; all users start with a
// zero points balance.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - email: Contact address (must be non-empty)
//   - role: Platform role (must be valid)
//   - tier: Loyalty membership tier (must be valid)
//   - registeredAt: Registration timestamp (must be non-zero)
//
// Returns:
//   - *User: A fully initialized user
//   - error: Validation error if any parameter is invalid (aggregated for multiple issues)
func NewUser(id kernel.UUID, name, email string, role Role, tier Tier, registeredAt time.Time) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
		u.setTier(tier),
		u.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	if role == RoleDelivery {
		u.driverStatus = DriverAvailable
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence without applying the
// NewUser defaults. All fields must already satisfy the aggregate invariants.
func RestoreUser(
	id kernel.UUID,
	name, email string,
	role Role,
	driverStatus DriverStatus,
	tier Tier,
	points int64,
	registeredAt time.Time,
) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
		u.setTier(tier),
		u.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	if role == RoleDelivery {
		if err := driverStatus.Validate(); err != nil {
			return nil, err
		}
		u.driverStatus = driverStatus
	}

	u.points = points
	return u, nil
}

// Validate ensures the User instance was properly constructed.
// Returns ErrUserIsNotConstructed if the user was not created via a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's human-readable name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's contact address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's platform role.
func (u *User) Role() Role {
	return u.role
}

// DriverStatus returns the delivery availability of the user.
// Only meaningful when the user has the Delivery role.
func (u *User) DriverStatus() DriverStatus {
	return u.driverStatus
}

// Tier returns the user's loyalty membership tier.
func (u *User) Tier() Tier {
	return u.tier
}

// Points returns the cached loyalty balance.
func (u *User) Points() int64 {
	return u.points
}

// RegisteredAt returns the registration timestamp.
func (u *User) RegisteredAt() time.Time {
	return u.registeredAt
}

// IsAvailableAgent reports whether the user is a delivery agent currently
// eligible for order assignment.
func (u *User) IsAvailableAgent() bool {
	return u.role == RoleDelivery && u.driverStatus == DriverAvailable
}

// SetDriverStatus updates the availability of a delivery-role user.
//
// Returns ErrNotADeliveryAgent for users without the Delivery role, or a
// validation error for an invalid status value.
func (u *User) SetDriverStatus(status DriverStatus) error {
	if u.role != RoleDelivery {
		return ErrNotADeliveryAgent
	}
	if err := status.Validate(); err != nil {
		return err
	}

	u.driverStatus = status
	return nil
}

// CreditPoints increases the cached balance by the given positive amount.
// Must only be called in the same transaction that appends the matching
// ledger entry.
func (u *User) CreditPoints(points int64) error {
	if points <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	u.points += points
	return nil
}

// DebitPoints decreases the cached balance by the given positive amount.
// The resulting balance is allowed to go negative: expiry of points that
// were already spent can legitimately overdraw the counter, and such
// accounts are excluded from further expiry until reconciled.
// Must only be called in the same transaction that appends the matching
// ledger entry.
func (u *User) DebitPoints(points int64) error {
	if points <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is not greater than 0", points))
	}

	u.points -= points
	return nil
}

// setID validates and sets the user's unique identifier.
func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

// setName validates and sets the user's name.
func (u *User) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

// setEmail validates and sets the user's email.
func (u *User) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	u.email = email
	return nil
}

// setRole validates and sets the user's role.
func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// setTier validates and sets the user's membership tier.
func (u *User) setTier(tier Tier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	u.tier = tier
	return nil
}

// setRegisteredAt validates and sets the registration timestamp.
func (u *User) setRegisteredAt(registeredAt time.Time) error {
	if registeredAt.IsZero() {
		return errs.NewValueIsRequiredError("registeredAt")
	}
	u.registeredAt = registeredAt
	return nil
}

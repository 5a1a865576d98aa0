package user

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Role represents a user's platform role.
// The allocator only ever selects users with the Delivery role; the ledger
// applies to any role that can place orders.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleClient is a regular customer placing orders.
	RoleClient

	// RoleDelivery is a delivery agent eligible for order assignment.
	RoleDelivery

	// RoleAdmin is a back-office administrator.
	RoleAdmin

	// RoleSuperadmin is a privileged administrator.
	RoleSuperadmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleClient:     "Client",
		RoleDelivery:   "Delivery",
		RoleAdmin:      "Admin",
		RoleSuperadmin: "Superadmin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient:     "Client",
		RoleDelivery:   "Delivery",
		RoleAdmin:      "Admin",
		RoleSuperadmin: "Superadmin",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are: Client, Delivery, Admin, Superadmin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// Implements the fmt.Stringer interface and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

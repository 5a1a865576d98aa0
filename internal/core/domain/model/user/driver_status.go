package user

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// DriverStatus represents the availability of a delivery agent.
// It is only meaningful for users with the Delivery role. Only agents in
// DriverAvailable status are candidates for order assignment.
//
// State transitions:
//
//	Available <──> Busy
//	    │
//	    └──> OffDuty ──> Available
//
// DriverStatus is a value object that validates state values and provides
// string representations for persistence and display.
type DriverStatus int

const (
	// DriverStatusUnknown represents an invalid or undefined driver status.
	// This value (0) helps catch uninitialized DriverStatus values.
	DriverStatusUnknown DriverStatus = iota

	// DriverAvailable means the agent can accept new deliveries.
	DriverAvailable

	// DriverBusy means the agent is occupied and excluded from selection.
	DriverBusy

	// DriverOffDuty means the agent is not working and excluded from selection.
	DriverOffDuty
)

func getDriverStatusStrings() map[DriverStatus]string {
	return map[DriverStatus]string{
		DriverStatusUnknown: "Unknown",
		DriverAvailable:     "Available",
		DriverBusy:          "Busy",
		DriverOffDuty:       "OffDuty",
	}
}

func getValidDriverStatusStrings() map[DriverStatus]string {
	//nolint:exhaustive // DriverStatusUnknown is intentionally excluded as it's invalid
	return map[DriverStatus]string{
		DriverAvailable: "Available",
		DriverBusy:      "Busy",
		DriverOffDuty:   "OffDuty",
	}
}

// Validate checks if the DriverStatus value is valid.
// Valid statuses are: Available, Busy, OffDuty.
func (s DriverStatus) Validate() error {
	if _, ok := getValidDriverStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver status is invalid",
			fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}

// String returns the human-readable name of the driver status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s DriverStatus) String() string {
	if str, ok := getDriverStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

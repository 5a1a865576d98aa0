package ledger

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// EntryType classifies a ledger entry by the event it records.
//
// Sign convention:
//
//	Earned    positive points, carries an expiry date
//	Redeemed  negative points
//	Expired   an Earned entry whose expiry date passed (rewritten in place)
//	Adjusted  signed points, manual correction, may be order-less
//	Refunded  positive points, compensates a redemption on cancellation
type EntryType int

const (
	// EntryTypeUnknown represents an invalid or undefined entry type.
	// This value (0) helps catch uninitialized EntryType values.
	EntryTypeUnknown EntryType = iota

	// Earned records points granted for a paid order.
	Earned

	// Redeemed records points spent to discount an order.
	Redeemed

	// Expired marks an Earned entry whose points lapsed.
	Expired

	// Adjusted records a manual balance correction.
	Adjusted

	// Refunded records points returned after a cancelled redemption.
	Refunded
)

func getEntryTypeStrings() map[EntryType]string {
	return map[EntryType]string{
		EntryTypeUnknown: "Unknown",
		Earned:           "Earned",
		Redeemed:         "Redeemed",
		Expired:          "Expired",
		Adjusted:         "Adjusted",
		Refunded:         "Refunded",
	}
}

func getValidEntryTypeStrings() map[EntryType]string {
	//nolint:exhaustive // EntryTypeUnknown is intentionally excluded as it's invalid
	return map[EntryType]string{
		Earned:   "Earned",
		Redeemed: "Redeemed",
		Expired:  "Expired",
		Adjusted: "Adjusted",
		Refunded: "Refunded",
	}
}

// Validate checks if the EntryType value is valid.
// Valid types are: Earned, Redeemed, Expired, Adjusted, Refunded.
func (t EntryType) Validate() error {
	if _, ok := getValidEntryTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entry type is invalid",
			fmt.Errorf("%d is not a valid entry type", t))
	}
	return nil
}

// String returns the human-readable name of the entry type.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (t EntryType) String() string {
	if str, ok := getEntryTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

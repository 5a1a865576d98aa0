package user

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// Tier represents a user's loyalty membership tier.
// The tier determines the percentage of an order's total that is converted
// into loyalty points when the order is paid.
//
// Earn rates are fixed and expose no configuration surface:
//
//	TierNone    2%
//	TierPremium 5%
//	TierVIP     10%
type Tier int

const (
	// TierUnknown represents an invalid or undefined tier.
	// This value (0) helps catch uninitialized Tier values.
	TierUnknown Tier = iota

	// TierNone is the default tier without a paid membership.
	TierNone

	// TierPremium is the paid premium membership tier.
	TierPremium

	// TierVIP is the top membership tier.
	TierVIP
)

func getTierStrings() map[Tier]string {
	return map[Tier]string{
		TierUnknown: "Unknown",
		TierNone:    "None",
		TierPremium: "Premium",
		TierVIP:     "VIP",
	}
}

func getValidTierStrings() map[Tier]string {
	//nolint:exhaustive // TierUnknown is intentionally excluded as it's invalid
	return map[Tier]string{
		TierNone:    "None",
		TierPremium: "Premium",
		TierVIP:     "VIP",
	}
}

// Validate checks if the Tier value is valid.
// Valid tiers are: None, Premium, VIP.
func (t Tier) Validate() error {
	if _, ok := getValidTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tier is invalid", fmt.Errorf("%d is not a valid tier", t))
	}
	return nil
}

// String returns the human-readable name of the tier.
// Implements the fmt.Stringer interface and is safe to call on any Tier value.
func (t Tier) String() string {
	if str, ok := getTierStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// EarnRatePercent returns the earn rate for the tier as a whole percentage:
// None→2, Premium→5, VIP→10. Invalid tiers earn nothing.
func (t Tier) EarnRatePercent() int64 {
	switch t {
	case TierPremium:
		return 5
	case TierVIP:
		return 10
	case TierNone:
		return 2
	default:
		return 0
	}
}

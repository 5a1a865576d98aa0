package user_test

import (
	"testing"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredAt() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestNewUser(t *testing.T) {
	t.Run("creates_valid_client", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, "June Baker", "june@example.com",
			user.RoleClient, user.TierPremium, registeredAt())

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "June Baker", u.Name())
		assert.Equal(t, "june@example.com", u.Email())
		assert.Equal(t, user.RoleClient, u.Role())
		assert.Equal(t, user.TierPremium, u.Tier())
		assert.Equal(t, int64(0), u.Points())
		assert.False(t, u.IsAvailableAgent())
	})

	t.Run("delivery_user_starts_available", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Sam Rider", "sam@example.com",
			user.RoleDelivery, user.TierNone, registeredAt())

		require.NoError(t, err)
		assert.Equal(t, user.DriverAvailable, u.DriverStatus())
		assert.True(t, u.IsAvailableAgent())
	})

	t.Run("rejects_invalid_parameters", func(t *testing.T) {
		testCases := []struct {
			name  string
			build func() (*user.User, error)
		}{
			{"empty name", func() (*user.User, error) {
				return user.NewUser(kernel.NewUUID(), "", "a@b.c", user.RoleClient, user.TierNone, registeredAt())
			}},
			{"empty email", func() (*user.User, error) {
				return user.NewUser(kernel.NewUUID(), "A", "", user.RoleClient, user.TierNone, registeredAt())
			}},
			{"invalid role", func() (*user.User, error) {
				return user.NewUser(kernel.NewUUID(), "A", "a@b.c", user.RoleUnknown, user.TierNone, registeredAt())
			}},
			{"invalid tier", func() (*user.User, error) {
				return user.NewUser(kernel.NewUUID(), "A", "a@b.c", user.RoleClient, user.TierUnknown, registeredAt())
			}},
			{"zero uuid", func() (*user.User, error) {
				var id kernel.UUID
				return user.NewUser(id, "A", "a@b.c", user.RoleClient, user.TierNone, registeredAt())
			}},
			{"zero registered at", func() (*user.User, error) {
				return user.NewUser(kernel.NewUUID(), "A", "a@b.c", user.RoleClient, user.TierNone, time.Time{})
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.build()
				require.Error(t, err)
			})
		}
	})
}

func TestUser_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var u user.User
		assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})

	t.Run("nil_is_invalid", func(t *testing.T) {
		var u *user.User
		assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}

func TestUser_SetDriverStatus(t *testing.T) {
	t.Run("delivery_user_can_change_status", func(t *testing.T) {
		u, _ := user.NewUser(kernel.NewUUID(), "Sam Rider", "sam@example.com",
			user.RoleDelivery, user.TierNone, registeredAt())

		require.NoError(t, u.SetDriverStatus(user.DriverBusy))
		assert.Equal(t, user.DriverBusy, u.DriverStatus())
		assert.False(t, u.IsAvailableAgent())
	})

	t.Run("client_cannot_have_driver_status", func(t *testing.T) {
		u, _ := user.NewUser(kernel.NewUUID(), "June Baker", "june@example.com",
			user.RoleClient, user.TierNone, registeredAt())

		assert.ErrorIs(t, u.SetDriverStatus(user.DriverBusy), user.ErrNotADeliveryAgent)
	})

	t.Run("invalid_status_rejected", func(t *testing.T) {
		u, _ := user.NewUser(kernel.NewUUID(), "Sam Rider", "sam@example.com",
			user.RoleDelivery, user.TierNone, registeredAt())

		require.Error(t, u.SetDriverStatus(user.DriverStatusUnknown))
	})
}

func TestUser_Points(t *testing.T) {
	newClient := func() *user.User {
		u, err := user.NewUser(kernel.NewUUID(), "June Baker", "june@example.com",
			user.RoleClient, user.TierVIP, registeredAt())
		require.NoError(t, err)
		return u
	}

	t.Run("credit_and_debit", func(t *testing.T) {
		u := newClient()

		require.NoError(t, u.CreditPoints(100))
		assert.Equal(t, int64(100), u.Points())

		require.NoError(t, u.DebitPoints(40))
		assert.Equal(t, int64(60), u.Points())
	})

	t.Run("debit_may_overdraw", func(t *testing.T) {
		u := newClient()

		require.NoError(t, u.CreditPoints(10))
		require.NoError(t, u.DebitPoints(25))
		assert.Equal(t, int64(-15), u.Points())
	})

	t.Run("non_positive_amounts_rejected", func(t *testing.T) {
		u := newClient()

		require.Error(t, u.CreditPoints(0))
		require.Error(t, u.CreditPoints(-5))
		require.Error(t, u.DebitPoints(0))
		require.Error(t, u.DebitPoints(-5))
		assert.Equal(t, int64(0), u.Points())
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.RestoreUser(id, "Sam Rider", "sam@example.com",
			user.RoleDelivery, user.DriverOffDuty, user.TierPremium, 250, registeredAt())

		require.NoError(t, err)
		assert.Equal(t, user.DriverOffDuty, u.DriverStatus())
		assert.Equal(t, int64(250), u.Points())
		assert.False(t, u.IsAvailableAgent())
	})

	t.Run("restores_negative_balance", func(t *testing.T) {
		u, err := user.RestoreUser(kernel.NewUUID(), "June Baker", "june@example.com",
			user.RoleClient, user.DriverStatusUnknown, user.TierNone, -30, registeredAt())

		require.NoError(t, err)
		assert.Equal(t, int64(-30), u.Points())
	})

	t.Run("delivery_user_requires_valid_driver_status", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "Sam Rider", "sam@example.com",
			user.RoleDelivery, user.DriverStatusUnknown, user.TierNone, 0, registeredAt())

		require.Error(t, err)
	})
}

func TestTier_EarnRatePercent(t *testing.T) {
	assert.Equal(t, int64(2), user.TierNone.EarnRatePercent())
	assert.Equal(t, int64(5), user.TierPremium.EarnRatePercent())
	assert.Equal(t, int64(10), user.TierVIP.EarnRatePercent())
	assert.Equal(t, int64(0), user.TierUnknown.EarnRatePercent())
}

func TestRole_Validate(t *testing.T) {
	for _, r := range []user.Role{user.RoleClient, user.RoleDelivery, user.RoleAdmin, user.RoleSuperadmin} {
		require.NoError(t, r.Validate())
	}
	require.Error(t, user.RoleUnknown.Validate())
	require.Error(t, user.Role(42).Validate())
}

func TestDriverStatus_String(t *testing.T) {
	assert.Equal(t, "Available", user.DriverAvailable.String())
	assert.Equal(t, "Busy", user.DriverBusy.String())
	assert.Equal(t, "OffDuty", user.DriverOffDuty.String())
	assert.Equal(t, "Unknown", user.DriverStatus(99).String())
}

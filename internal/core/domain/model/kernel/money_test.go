package kernel_test

import (
	"testing"

	"bakery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("valid_amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(2550)

		require.NoError(t, err)
		assert.Equal(t, int64(2550), m.Cents())
		assert.Equal(t, "25.50", m.String())
	})

	t.Run("zero_amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
		assert.False(t, m.IsPositive())
	})

	t.Run("negative_amount", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)

		require.Error(t, err)
	})
}

func TestMoneyFromUnits(t *testing.T) {
	m, err := kernel.MoneyFromUnits(1000)

	require.NoError(t, err)
	assert.Equal(t, int64(100000), m.Cents())
	assert.Equal(t, "1000.00", m.String())

	_, err = kernel.MoneyFromUnits(-5)
	require.Error(t, err)
}

func TestMoney_Percent(t *testing.T) {
	testCases := []struct {
		name     string
		cents    int64
		pct      int64
		expected int64
	}{
		{"ten_percent_of_1000", 100000, 10, 100},
		{"five_percent_of_1000", 100000, 5, 50},
		{"two_percent_of_1000", 100000, 2, 20},
		{"floors_fractional_result", 9999, 2, 1},   // 99.99 × 2% = 1.9998 -> 1
		{"small_amount_floors_to_zero", 100, 2, 0}, // 1.00 × 2% = 0.02 -> 0
		{"zero_total", 0, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := kernel.NewMoneyFromCents(tc.cents)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, m.Percent(tc.pct))
		})
	}
}

func TestMoney_CoversUnits(t *testing.T) {
	m, _ := kernel.NewMoneyFromCents(20000) // 200.00

	assert.True(t, m.CoversUnits(200))
	assert.True(t, m.CoversUnits(199))
	assert.False(t, m.CoversUnits(201))
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoneyFromCents(500)
	b, _ := kernel.NewMoneyFromCents(500)
	c, _ := kernel.NewMoneyFromCents(501)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

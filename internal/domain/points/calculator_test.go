package points

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ierr "github.com/tugohq/tugo/internal/errors"
)

func TestAward(t *testing.T) {
	testCases := []struct {
		name          string
		amount        string
		coinRatio     int
		minOrderValue string
		expected      int64
		expectedError bool
	}{
		{
			name:          "basic_award",
			amount:        "100",
			coinRatio:     10,
			minOrderValue: "0",
			expected:      10,
		},
		{
			name:          "below_minimum_earns_nothing",
			amount:        "99",
			coinRatio:     10,
			minOrderValue: "100",
			expected:      0,
		},
		{
			name:          "boundary_is_inclusive",
			amount:        "100",
			coinRatio:     10,
			minOrderValue: "100",
			expected:      10,
		},
		{
			name:          "zero_ratio_earns_nothing",
			amount:        "10000",
			coinRatio:     0,
			minOrderValue: "0",
			expected:      0,
		},
		{
			name:          "award_floors_fractional_points",
			amount:        "249.99",
			coinRatio:     8,
			minOrderValue: "100",
			expected:      19,
		},
		{
			name:          "save10_scenario",
			amount:        "250",
			coinRatio:     8,
			minOrderValue: "100",
			expected:      20,
		},
		{
			name:          "zero_amount_with_zero_minimum",
			amount:        "0",
			coinRatio:     50,
			minOrderValue: "0",
			expected:      0,
		},
		{
			name:          "negative_amount_rejected",
			amount:        "-5",
			coinRatio:     10,
			minOrderValue: "0",
			expectedError: true,
		},
		{
			name:          "negative_min_order_rejected",
			amount:        "100",
			coinRatio:     10,
			minOrderValue: "-1",
			expectedError: true,
		},
		{
			name:          "ratio_above_100_rejected",
			amount:        "100",
			coinRatio:     101,
			minOrderValue: "0",
			expectedError: true,
		},
		{
			name:          "negative_ratio_rejected",
			amount:        "100",
			coinRatio:     -1,
			minOrderValue: "0",
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			minOrder := decimal.RequireFromString(tc.minOrderValue)

			award, err := Award(amount, tc.coinRatio, minOrder)
			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, award)
		})
	}
}

func TestAwardIsDeterministic(t *testing.T) {
	amount := decimal.RequireFromString("123.45")
	minOrder := decimal.RequireFromString("50")

	first, err := Award(amount, 7, minOrder)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Award(amount, 7, minOrder)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAwardNeverPositiveBelowMinimum(t *testing.T) {
	minOrder := decimal.RequireFromString("100")

	for _, raw := range []string{"0", "0.01", "50", "99.99"} {
		amount := decimal.RequireFromString(raw)
		award, err := Award(amount, 100, minOrder)
		require.NoError(t, err)
		assert.Zero(t, award, "amount %s is below the minimum", raw)
	}
}

func TestQualifies(t *testing.T) {
	minOrder := decimal.RequireFromString("100")

	assert.True(t, Qualifies(decimal.RequireFromString("100"), minOrder))
	assert.True(t, Qualifies(decimal.RequireFromString("100.01"), minOrder))
	assert.False(t, Qualifies(decimal.RequireFromString("99.99"), minOrder))
	assert.False(t, Qualifies(decimal.RequireFromString("-1"), minOrder))
}

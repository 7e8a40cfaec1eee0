package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyRatePricing(t *testing.T) {
	pricing := NewDailyRatePricing()

	t.Run("multi-day rental", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		total, err := pricing.TotalPriceCents(5000, dates)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), total)
	})

	t.Run("single day rental", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-10")
		require.NoError(t, err)

		total, err := pricing.TotalPriceCents(5000, dates)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), total)
	})

	t.Run("zero rate rejected", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		_, err = pricing.TotalPriceCents(0, dates)
		assert.Error(t, err)
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		dates, err := NewDateRange("2025-07-10", "2025-07-12")
		require.NoError(t, err)

		_, err = pricing.TotalPriceCents(-100, dates)
		assert.Error(t, err)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		start, err := ParseDate("2025-07-12")
		require.NoError(t, err)
		end, err := ParseDate("2025-07-10")
		require.NoError(t, err)

		_, err = pricing.TotalPriceCents(5000, DateRange{Start: start, End: end})
		assert.Error(t, err)
	})
}

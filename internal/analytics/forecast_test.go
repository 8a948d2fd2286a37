package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfin/tally/internal/model"
)

func TestForecastGrowth(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("linear series projects linearly", func(t *testing.T) {
		series := []model.Money{1000, 2000, 3000, 4000, 5000, 6000}

		forecast, ok := ForecastGrowth(series, 3, cfg)

		require.True(t, ok)
		assert.InDelta(t, 1000.0, forecast.Slope, 0.001)
		assert.Equal(t, model.Money(9000), forecast.Projected)
	})

	t.Run("flat series has zero slope", func(t *testing.T) {
		series := []model.Money{5000, 5000, 5000, 5000, 5000, 5000}

		forecast, ok := ForecastGrowth(series, 6, cfg)

		require.True(t, ok)
		assert.InDelta(t, 0.0, forecast.Slope, 0.001)
		assert.InDelta(t, 0.0, forecast.GrowthRatePercent, 0.001)
		assert.Equal(t, model.Money(5000), forecast.Projected)
	})

	t.Run("declining series projects downward", func(t *testing.T) {
		series := []model.Money{6000, 5000, 4000, 3000, 2000, 1000}

		forecast, ok := ForecastGrowth(series, 1, cfg)

		require.True(t, ok)
		assert.Negative(t, forecast.Slope)
		assert.Equal(t, model.Money(0), forecast.Projected)
	})

	t.Run("projection never goes below zero", func(t *testing.T) {
		series := []model.Money{6000, 5000, 4000, 3000, 2000, 1000}

		forecast, ok := ForecastGrowth(series, 4, cfg)

		require.True(t, ok)
		assert.Equal(t, model.Money(0), forecast.Projected)
	})

	t.Run("too few months reports no forecast", func(t *testing.T) {
		series := []model.Money{1000, 2000, 3000}

		_, ok := ForecastGrowth(series, 3, cfg)

		assert.False(t, ok)
	})

	t.Run("too few non-zero points reports no forecast", func(t *testing.T) {
		series := []model.Money{0, 0, 0, 0, 1000, 2000}

		_, ok := ForecastGrowth(series, 3, cfg)

		assert.False(t, ok)
	})

	t.Run("growth rate is slope relative to the mean", func(t *testing.T) {
		series := []model.Money{1000, 1100, 1200, 1300, 1400, 1500}

		forecast, ok := ForecastGrowth(series, 1, cfg)

		require.True(t, ok)
		// Slope 100 over a mean of 1250 is 8%.
		assert.InDelta(t, 8.0, forecast.GrowthRatePercent, 0.001)
	})
}

func TestMonthlyCategorySeries(t *testing.T) {
	months := []CategoryBreakdown{
		{Categories: []CategoryTotal{{ID: "food", Total: 1000}}},
		{Categories: []CategoryTotal{{ID: "transport", Total: 500}}},
		{Categories: []CategoryTotal{{ID: "food", Total: 3000}, {ID: "transport", Total: 200}}},
	}

	series := MonthlyCategorySeries(months, "food")

	assert.Equal(t, []model.Money{1000, 0, 3000}, series)
}

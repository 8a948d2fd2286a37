package analytics

import (
	"math"

	"github.com/tallyfin/tally/internal/model"
)

// Forecast is a simple linear projection of a monthly series.
type Forecast struct {
	// Slope is the fitted monthly change in minor units.
	Slope float64
	// GrowthRatePercent is the slope relative to the series mean.
	GrowthRatePercent float64
	// Projected is the value expected after the forecast horizon.
	Projected model.Money
}

// ForecastGrowth fits an ordinary least-squares line over a trailing
// monthly series (index as x) and projects horizonMonths past the last
// point. Series shorter than cfg.ForecastMinMonths, or with fewer than
// cfg.ForecastMinNonZero non-zero points, carry too little signal and
// report ok=false.
func ForecastGrowth(series []model.Money, horizonMonths int, cfg Config) (Forecast, bool) {
	if len(series) < cfg.ForecastMinMonths {
		return Forecast{}, false
	}

	nonZero := 0
	for _, v := range series {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero < cfg.ForecastMinNonZero {
		return Forecast{}, false
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range series {
		x := float64(i)
		y := float64(v)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Forecast{}, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	mean := sumY / n

	forecast := Forecast{Slope: slope}
	if mean != 0 {
		forecast.GrowthRatePercent = slope / mean * 100
	}

	last := float64(series[len(series)-1])
	projected := math.Round(last + slope*float64(horizonMonths))
	// A negative projected spend carries no meaning.
	if projected < 0 {
		projected = 0
	}
	forecast.Projected = model.Money(projected)
	return forecast, true
}

// MonthlyCategorySeries extracts a per-month total series for one
// category from consecutive monthly breakdowns, oldest first. Months
// where the category is absent contribute zero.
func MonthlyCategorySeries(months []CategoryBreakdown, categoryID string) []model.Money {
	series := make([]model.Money, len(months))
	for i, month := range months {
		for _, row := range month.Categories {
			if row.ID == categoryID {
				series[i] = row.Total
				break
			}
		}
	}
	return series
}

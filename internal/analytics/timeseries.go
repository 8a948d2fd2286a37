package analytics

import (
	"time"

	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// Series is a bucketed income/expense time series. All three slices have
// identical length, one entry per bucket, oldest first.
type Series struct {
	Labels  []string
	Income  []model.Money
	Expense []model.Money
}

// TimeSeries buckets records into exactly count consecutive intervals of
// the given unit ending at now, oldest first. Each record lands in the
// bucket containing its date; records outside every bucket are skipped.
// Buckets with no records stay zero, so the output never has gaps.
func TimeSeries(records []model.Transaction, unit dates.BucketUnit, count int, now time.Time) Series {
	if count <= 0 {
		return Series{Labels: []string{}, Income: []model.Money{}, Expense: []model.Money{}}
	}

	series := Series{
		Labels:  make([]string, count),
		Income:  make([]model.Money, count),
		Expense: make([]model.Money, count),
	}

	// Keyed on Unix seconds so that records carrying a different location
	// than now still land in the right bucket.
	index := make(map[int64]int, count)
	bucket := unit.Truncate(now)
	for i := count - 1; i >= 0; i-- {
		series.Labels[i] = unit.Label(bucket)
		index[bucket.Unix()] = i
		bucket = unit.Truncate(bucket.Add(-time.Nanosecond))
	}

	for _, txn := range records {
		i, ok := index[unit.Truncate(txn.Date.In(now.Location())).Unix()]
		if !ok {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			series.Income[i] += txn.Amount
		case model.TypeExpense:
			series.Expense[i] += txn.Amount
		}
	}
	return series
}

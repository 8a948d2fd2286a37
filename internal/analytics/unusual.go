package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/tallyfin/tally/internal/model"
)

// UnusualExpense is an expense that sits far above the trailing-window
// average.
type UnusualExpense struct {
	Transaction model.Transaction
	Average     model.Money
	Threshold   model.Money
}

// DetectUnusual flags expenses in the trailing cfg.UnusualWindowDays
// window whose amount exceeds mean + cfg.UnusualStdDevFactor standard
// deviations (population stddev) of the window. Fewer than
// cfg.UnusualMinRecords records in the window is insufficient data and
// yields an empty result, not an error. Results are sorted by amount
// descending.
func DetectUnusual(records []model.Transaction, now time.Time, cfg Config) []UnusualExpense {
	windowStart := now.AddDate(0, 0, -cfg.UnusualWindowDays)

	window := make([]model.Transaction, 0, len(records))
	for _, txn := range records {
		if txn.Type != model.TypeExpense {
			continue
		}
		if txn.Date.Before(windowStart) || txn.Date.After(now) {
			continue
		}
		window = append(window, txn)
	}

	if len(window) < cfg.UnusualMinRecords {
		return nil
	}

	var sum float64
	for _, txn := range window {
		sum += float64(txn.Amount)
	}
	mean := sum / float64(len(window))

	var variance float64
	for _, txn := range window {
		diff := float64(txn.Amount) - mean
		variance += diff * diff
	}
	variance /= float64(len(window))
	threshold := mean + cfg.UnusualStdDevFactor*math.Sqrt(variance)

	average := model.Money(math.Round(mean))
	limit := model.Money(math.Round(threshold))

	unusual := make([]UnusualExpense, 0)
	for _, txn := range window {
		if float64(txn.Amount) > threshold {
			unusual = append(unusual, UnusualExpense{
				Transaction: txn,
				Average:     average,
				Threshold:   limit,
			})
		}
	}

	sort.SliceStable(unusual, func(i, j int) bool {
		return unusual[i].Transaction.Amount > unusual[j].Transaction.Amount
	})
	return unusual
}

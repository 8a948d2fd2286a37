package analytics

import (
	"time"

	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// PeriodSummary aggregates income and expense over a date range.
type PeriodSummary struct {
	Income  model.Money
	Expense model.Money
	Balance model.Money
	// SavingsRate is balance over income as a percentage, zero when the
	// period has no income.
	SavingsRate  float64
	Count        int
	Days         int
	DailyIncome  model.Money
	DailyExpense model.Money
}

// Summary computes totals for records dated within [start, end]. The end
// bound is extended to the last nanosecond of its calendar day, so a
// plain date covers the whole day. Empty input yields an all-zero
// summary.
func Summary(records []model.Transaction, start, end time.Time) PeriodSummary {
	end = dates.EndOfDay(end)

	summary := PeriodSummary{Days: dates.DaysBetween(start, end)}
	for _, txn := range records {
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		summary.Count++
		switch txn.Type {
		case model.TypeIncome:
			summary.Income += txn.Amount
		case model.TypeExpense:
			summary.Expense += txn.Amount
		}
	}

	summary.Balance = summary.Income - summary.Expense
	if summary.Income > 0 {
		summary.SavingsRate = float64(summary.Balance) / float64(summary.Income) * 100
	}
	if summary.Days > 0 {
		summary.DailyIncome = summary.Income / model.Money(summary.Days)
		summary.DailyExpense = summary.Expense / model.Money(summary.Days)
	}
	return summary
}

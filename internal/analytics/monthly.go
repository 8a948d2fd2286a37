package analytics

import (
	"time"

	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// MonthSummary is one month of a monthly evolution report.
type MonthSummary struct {
	Year        int
	Month       time.Month
	Label       string
	Income      model.Money
	Expense     model.Money
	Balance     model.Money
	SavingsRate float64
	Count       int
}

// Trend is the direction of a metric across recent months.
type Trend string

const (
	// TrendUp means the metric grew beyond the shift threshold.
	TrendUp Trend = "up"
	// TrendDown means the metric shrank beyond the shift threshold.
	TrendDown Trend = "down"
	// TrendStable means no significant change, or not enough months.
	TrendStable Trend = "stable"
)

// MonthlyTrends reports the direction of each headline metric.
type MonthlyTrends struct {
	Income  Trend
	Expense Trend
	Balance Trend
}

// MonthlyReport is the monthly evolution view: one summary per month
// plus totals, averages, extremes, and trends.
type MonthlyReport struct {
	Months        []MonthSummary
	TotalIncome   model.Money
	TotalExpense  model.Money
	TotalBalance  model.Money
	AvgIncome     model.Money
	AvgExpense    model.Money
	BestMonthIdx  int
	WorstMonthIdx int
	Trends        MonthlyTrends
}

// Monthly builds a months-long evolution report starting at the month
// containing startMonth. Best and worst months are picked by balance;
// trends compare the last cfg.TrendWindowMonths months against the
// preceding window and need at least twice the window to move off
// stable.
func Monthly(records []model.Transaction, startMonth time.Time, months int, cfg Config) MonthlyReport {
	report := MonthlyReport{BestMonthIdx: -1, WorstMonthIdx: -1}
	if months <= 0 {
		return report
	}

	report.Months = make([]MonthSummary, 0, months)
	cursor := dates.StartOfMonth(startMonth)

	for i := 0; i < months; i++ {
		monthEnd := dates.AddMonths(cursor, 1).AddDate(0, 0, -1)
		summary := Summary(records, cursor, monthEnd)

		report.Months = append(report.Months, MonthSummary{
			Year:        cursor.Year(),
			Month:       cursor.Month(),
			Label:       cursor.Format("Jan 2006"),
			Income:      summary.Income,
			Expense:     summary.Expense,
			Balance:     summary.Balance,
			SavingsRate: summary.SavingsRate,
			Count:       summary.Count,
		})
		cursor = dates.AddMonths(cursor, 1)
	}

	for i, month := range report.Months {
		report.TotalIncome += month.Income
		report.TotalExpense += month.Expense

		if report.BestMonthIdx < 0 || month.Balance > report.Months[report.BestMonthIdx].Balance {
			report.BestMonthIdx = i
		}
		if report.WorstMonthIdx < 0 || month.Balance < report.Months[report.WorstMonthIdx].Balance {
			report.WorstMonthIdx = i
		}
	}
	report.TotalBalance = report.TotalIncome - report.TotalExpense
	report.AvgIncome = report.TotalIncome / model.Money(months)
	report.AvgExpense = report.TotalExpense / model.Money(months)

	report.Trends = monthlyTrends(report.Months, cfg)
	return report
}

func monthlyTrends(months []MonthSummary, cfg Config) MonthlyTrends {
	trends := MonthlyTrends{Income: TrendStable, Expense: TrendStable, Balance: TrendStable}

	window := cfg.TrendWindowMonths
	if window <= 0 || len(months) < 2*window {
		return trends
	}

	last := months[len(months)-window:]
	prev := months[len(months)-2*window : len(months)-window]

	var lastIncome, prevIncome, lastExpense, prevExpense, lastBalance, prevBalance float64
	for i := 0; i < window; i++ {
		lastIncome += float64(last[i].Income)
		prevIncome += float64(prev[i].Income)
		lastExpense += float64(last[i].Expense)
		prevExpense += float64(prev[i].Expense)
		lastBalance += float64(last[i].Balance)
		prevBalance += float64(prev[i].Balance)
	}

	trends.Income = shift(lastIncome, prevIncome, cfg.TrendShiftPercent)
	trends.Expense = shift(lastExpense, prevExpense, cfg.TrendShiftPercent)
	trends.Balance = shift(lastBalance, prevBalance, cfg.TrendShiftPercent)
	return trends
}

// shift grades the relative change between two window sums. A zero or
// negative baseline cannot produce a meaningful percentage for income
// and expense; balance baselines use the absolute value.
func shift(last, prev, threshold float64) Trend {
	if prev == 0 {
		return TrendStable
	}
	change := (last - prev) / abs(prev) * 100
	switch {
	case change > threshold:
		return TrendUp
	case change < -threshold:
		return TrendDown
	default:
		return TrendStable
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

package analytics

import (
	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// BudgetStatus describes how far along a budget is.
type BudgetStatus string

const (
	// BudgetOK means spending is comfortably inside the budget.
	BudgetOK BudgetStatus = "ok"
	// BudgetWarning means spending has crossed the warning threshold.
	BudgetWarning BudgetStatus = "warning"
	// BudgetExceeded means the budget is spent or overspent.
	BudgetExceeded BudgetStatus = "exceeded"
)

// BudgetProgressReport summarizes spending against one budget.
type BudgetProgressReport struct {
	Spent     model.Money
	Remaining model.Money
	// Percentage of the budget spent, clamped to [0, 100].
	Percentage float64
	Status     BudgetStatus
}

// BudgetProgress sums the expense records that fall inside the budget's
// date range and category scope and grades the result against the
// configured warning and exceeded thresholds.
func BudgetProgress(budget model.Budget, records []model.Transaction, cfg Config) BudgetProgressReport {
	start := dates.StartOfDay(budget.StartDate)
	end := dates.EndOfDay(budget.EndDate)

	report := BudgetProgressReport{Status: BudgetOK}
	for _, txn := range records {
		if txn.Type != model.TypeExpense {
			continue
		}
		if txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}
		if !budget.CoversCategory(txn.CategoryID) {
			continue
		}
		report.Spent += txn.Amount
	}

	report.Remaining = budget.Amount - report.Spent
	if report.Remaining < 0 {
		report.Remaining = 0
	}

	if budget.Amount > 0 {
		report.Percentage = float64(report.Spent) / float64(budget.Amount) * 100
	}
	if report.Percentage > 100 {
		report.Percentage = 100
	}
	if report.Percentage < 0 {
		report.Percentage = 0
	}

	switch {
	case report.Percentage >= cfg.BudgetExceededPercent:
		report.Status = BudgetExceeded
	case report.Percentage >= cfg.BudgetWarningPercent:
		report.Status = BudgetWarning
	}
	return report
}

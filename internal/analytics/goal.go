package analytics

import (
	"time"

	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// GoalStatus describes where a goal stands.
type GoalStatus string

const (
	// GoalCompleted means the target has been reached.
	GoalCompleted GoalStatus = "completed"
	// GoalOverdue means the deadline passed before completion.
	GoalOverdue GoalStatus = "overdue"
	// GoalAtRisk means the deadline is close and progress is behind.
	GoalAtRisk GoalStatus = "atRisk"
	// GoalInProgress is the default state.
	GoalInProgress GoalStatus = "inProgress"
)

// GoalProgressReport summarizes progress toward one goal.
type GoalProgressReport struct {
	// Percentage of the target reached, clamped to [0, 100].
	Percentage float64
	Remaining  model.Money
	Status     GoalStatus
	// DaysRemaining and DailyNeeded are set only when the goal has a
	// deadline that has not passed.
	DaysRemaining *int
	DailyNeeded   *model.Money
}

// GoalProgress grades a goal against its target and optional deadline.
// Completed wins over every deadline-derived status.
func GoalProgress(goal model.Goal, now time.Time, cfg Config) GoalProgressReport {
	report := GoalProgressReport{Status: GoalInProgress}

	if goal.TargetAmount > 0 {
		report.Percentage = float64(goal.CurrentAmount) / float64(goal.TargetAmount) * 100
	}
	if report.Percentage > 100 {
		report.Percentage = 100
	}
	if report.Percentage < 0 {
		report.Percentage = 0
	}

	report.Remaining = goal.TargetAmount - goal.CurrentAmount
	if report.Remaining < 0 {
		report.Remaining = 0
	}

	if goal.Completed() {
		report.Status = GoalCompleted
		return report
	}

	if goal.Deadline == nil {
		return report
	}

	deadline := dates.EndOfDay(*goal.Deadline)
	if deadline.Before(now) {
		report.Status = GoalOverdue
		return report
	}

	daysLeft := dates.DaysBetween(now, deadline) - 1
	report.DaysRemaining = &daysLeft
	if daysLeft > 0 {
		needed := report.Remaining / model.Money(daysLeft)
		report.DailyNeeded = &needed
	}

	if daysLeft <= cfg.GoalAtRiskDays && report.Percentage < cfg.GoalAtRiskPercent {
		report.Status = GoalAtRisk
	}
	return report
}

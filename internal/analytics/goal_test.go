package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfin/tally/internal/model"
)

func testGoal(target, current model.Money, deadline *time.Time) model.Goal {
	return model.Goal{
		ID:            "g1",
		Name:          "Test goal",
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		IsActive:      true,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestGoalProgress(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("reached target is completed", func(t *testing.T) {
		goal := testGoal(100000, 100000, nil)

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalCompleted, report.Status)
		assert.InDelta(t, 100.0, report.Percentage, 0.001)
		assert.Equal(t, model.Money(0), report.Remaining)
	})

	t.Run("completed wins over a passed deadline", func(t *testing.T) {
		goal := testGoal(100000, 120000, datePtr(now.AddDate(0, 0, -10)))

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalCompleted, report.Status)
		assert.InDelta(t, 100.0, report.Percentage, 0.001, "overfunded goals clamp to 100")
	})

	t.Run("passed deadline without completion is overdue", func(t *testing.T) {
		goal := testGoal(100000, 50000, datePtr(now.AddDate(0, 0, -1)))

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalOverdue, report.Status)
		assert.Nil(t, report.DaysRemaining)
		assert.Nil(t, report.DailyNeeded)
	})

	t.Run("near deadline with low progress is at risk", func(t *testing.T) {
		goal := testGoal(100000, 50000, datePtr(now.AddDate(0, 0, 20)))

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalAtRisk, report.Status)
	})

	t.Run("near deadline with high progress stays in progress", func(t *testing.T) {
		goal := testGoal(100000, 90000, datePtr(now.AddDate(0, 0, 20)))

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalInProgress, report.Status)
	})

	t.Run("distant deadline with low progress stays in progress", func(t *testing.T) {
		goal := testGoal(100000, 10000, datePtr(now.AddDate(0, 6, 0)))

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalInProgress, report.Status)
	})

	t.Run("daily needed divides remaining by days left", func(t *testing.T) {
		goal := testGoal(100000, 50000, datePtr(now.AddDate(0, 0, 50)))

		report := GoalProgress(goal, now, cfg)

		require.NotNil(t, report.DaysRemaining)
		require.NotNil(t, report.DailyNeeded)
		assert.Equal(t, 50, *report.DaysRemaining)
		assert.Equal(t, model.Money(1000), *report.DailyNeeded)
	})

	t.Run("no deadline means no day fields", func(t *testing.T) {
		goal := testGoal(100000, 50000, nil)

		report := GoalProgress(goal, now, cfg)

		assert.Equal(t, GoalInProgress, report.Status)
		assert.Nil(t, report.DaysRemaining)
		assert.Nil(t, report.DailyNeeded)
	})
}

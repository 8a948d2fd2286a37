package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfin/tally/internal/sanitize"
)

// Goal is a savings target, optionally with a deadline.
type Goal struct {
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	Name          string
	Description   string
	Icon          string
	TargetAmount  Money
	CurrentAmount Money
	IsActive      bool
}

// GoalInput carries raw form values for a goal.
type GoalInput struct {
	Name          string
	TargetAmount  string
	CurrentAmount string
	Deadline      string
	Description   string
	Icon          string
	IsActive      string
}

// NewGoal builds a Goal from raw input. The deadline is optional; a
// missing current amount defaults to zero.
func NewGoal(in GoalInput, now time.Time) (Goal, ValidationResult) {
	var result ValidationResult

	goal := Goal{
		ID:          uuid.New().String(),
		Name:        sanitize.Text(in.Name, nameMaxLen),
		Description: sanitize.Text(in.Description, notesMaxLen),
		Icon:        sanitize.Text(in.Icon, 30),
		IsActive:    sanitize.Bool(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if len(goal.Name) < nameMinLen {
		result.Add("name", fmt.Sprintf("name must be at least %d characters", nameMinLen))
	}

	target, err := ParseMoney(in.TargetAmount)
	switch {
	case err != nil:
		result.Add("targetAmount", "target amount must be a number")
	case target <= 0:
		result.Add("targetAmount", "target amount must be greater than zero")
	default:
		goal.TargetAmount = target
	}

	if in.CurrentAmount != "" {
		current, parseErr := ParseMoney(in.CurrentAmount)
		switch {
		case parseErr != nil:
			result.Add("currentAmount", "current amount must be a number")
		case current < 0:
			result.Add("currentAmount", "current amount cannot be negative")
		default:
			goal.CurrentAmount = current
		}
	}

	if in.Deadline != "" {
		if deadline, ok := sanitize.Date(in.Deadline); ok {
			goal.Deadline = &deadline
		} else {
			result.Add("deadline", "deadline is invalid")
		}
	}

	if !result.Valid() {
		return Goal{}, result
	}
	return goal, result
}

// ApplyUpdate replaces the mutable fields of a goal from raw input,
// re-running the full sanitize-and-validate pass.
func (g *Goal) ApplyUpdate(in GoalInput, now time.Time) ValidationResult {
	updated, result := NewGoal(in, now)
	if !result.Valid() {
		return result
	}

	updated.ID = g.ID
	updated.CreatedAt = g.CreatedAt
	*g = updated
	return result
}

// Contribute adds a positive amount to the goal's current balance.
func (g *Goal) Contribute(amount Money, now time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("contribution must be greater than zero")
	}
	g.CurrentAmount += amount
	g.UpdatedAt = now
	return nil
}

// Completed reports whether the goal has reached its target.
func (g *Goal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}

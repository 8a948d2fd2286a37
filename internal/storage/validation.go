// Package storage provides the data persistence layer for the tally
// application: a SQLite implementation with versioned migrations, and a
// JSON document store used as an automatic fallback.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tallyfin/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidRecord    = errors.New("invalid record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a transaction before persistence.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if txn.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidRecord)
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	return nil
}

// validateBudget validates a budget before persistence.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if budget.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if budget.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if budget.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if budget.EndDate.Before(budget.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// validateGoal validates a goal before persistence.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if goal.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if goal.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidRecord)
	}
	if goal.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount cannot be negative", ErrInvalidRecord)
	}
	return nil
}

// validateCategory validates a category before persistence.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if category.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if category.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if category.Type != model.CategoryTypeIncome && category.Type != model.CategoryTypeExpense {
		return fmt.Errorf("%w: type must be income or expense", ErrInvalidRecord)
	}
	return nil
}

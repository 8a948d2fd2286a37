package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfin/tally/internal/sanitize"
)

// BudgetAllCategories is the sentinel category id for a budget that
// covers every expense category.
const BudgetAllCategories = "all"

// Budget is a spending cap over a date range, optionally scoped to one
// expense category.
type Budget struct {
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	CategoryID  string
	Description string
	Amount      Money
	IsActive    bool
}

// BudgetInput carries raw form values for a budget.
type BudgetInput struct {
	Name        string
	Amount      string
	CategoryID  string
	StartDate   string
	EndDate     string
	Description string
	IsActive    string
}

// NewBudget builds a Budget from raw input. An end date earlier than the
// start date is auto-corrected to the start date rather than rejected.
func NewBudget(in BudgetInput, now time.Time) (Budget, ValidationResult) {
	var result ValidationResult

	budget := Budget{
		ID:          uuid.New().String(),
		Name:        sanitize.Text(in.Name, nameMaxLen),
		CategoryID:  sanitize.Identifier(in.CategoryID),
		Description: sanitize.Text(in.Description, notesMaxLen),
		IsActive:    sanitize.Bool(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if budget.CategoryID == "" {
		budget.CategoryID = BudgetAllCategories
	}

	if len(budget.Name) < nameMinLen {
		result.Add("name", fmt.Sprintf("name must be at least %d characters", nameMinLen))
	}

	amount, err := ParseMoney(in.Amount)
	switch {
	case err != nil:
		result.Add("amount", "amount must be a number")
	case amount <= 0:
		result.Add("amount", "amount must be greater than zero")
	default:
		budget.Amount = amount
	}

	if start, ok := sanitize.Date(in.StartDate); ok {
		budget.StartDate = start
	} else {
		result.Add("startDate", "start date is invalid")
	}
	if end, ok := sanitize.Date(in.EndDate); ok {
		budget.EndDate = end
	} else {
		result.Add("endDate", "end date is invalid")
	}

	// An inverted range is corrected, not rejected.
	if !budget.StartDate.IsZero() && budget.EndDate.Before(budget.StartDate) {
		budget.EndDate = budget.StartDate
	}

	if !result.Valid() {
		return Budget{}, result
	}
	return budget, result
}

// ApplyUpdate replaces the mutable fields of a budget from raw input,
// re-running the full sanitize-and-validate pass.
func (b *Budget) ApplyUpdate(in BudgetInput, now time.Time) ValidationResult {
	updated, result := NewBudget(in, now)
	if !result.Valid() {
		return result
	}

	updated.ID = b.ID
	updated.CreatedAt = b.CreatedAt
	*b = updated
	return result
}

// CoversCategory reports whether the budget applies to a category.
func (b *Budget) CoversCategory(categoryID string) bool {
	return b.CategoryID == BudgetAllCategories || b.CategoryID == categoryID
}

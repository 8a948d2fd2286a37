package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallyfin/tally/internal/common"
	"github.com/tallyfin/tally/internal/model"
)

// SaveBudget upserts a budget by id.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, name, amount_cents, category_id, start_date, end_date, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			amount_cents = excluded.amount_cents,
			category_id = excluded.category_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			description = excluded.description,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		budget.ID, budget.Name, int64(budget.Amount), budget.CategoryID,
		budget.StartDate, budget.EndDate, budget.Description, budget.IsActive,
		budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

// GetBudgetByID returns a budget, or an error wrapping
// common.ErrNotFound when it does not exist.
func (s *SQLiteStorage) GetBudgetByID(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, amount_cents, category_id, start_date, end_date, description, is_active, created_at, updated_at
		FROM budgets WHERE id = ?`, id)

	budget, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return budget, nil
}

// ListBudgets returns budgets ordered by start date descending.
func (s *SQLiteStorage) ListBudgets(ctx context.Context, includeInactive bool) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, amount_cents, category_id, start_date, end_date, description, is_active, created_at, updated_at
		FROM budgets`
	if !includeInactive {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY start_date DESC, id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, scanErr := scanBudget(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", scanErr)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget removes a budget by id.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var budget model.Budget
	var amount int64
	var description sql.NullString
	var startDate, endDate, createdAt, updatedAt time.Time

	if err := row.Scan(&budget.ID, &budget.Name, &amount, &budget.CategoryID,
		&startDate, &endDate, &description, &budget.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	budget.Amount = model.Money(amount)
	budget.Description = description.String
	budget.StartDate = startDate
	budget.EndDate = endDate
	budget.CreatedAt = createdAt
	budget.UpdatedAt = updatedAt
	return &budget, nil
}

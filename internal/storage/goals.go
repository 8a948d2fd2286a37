package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallyfin/tally/internal/common"
	"github.com/tallyfin/tally/internal/model"
)

// SaveGoal upserts a goal by id.
func (s *SQLiteStorage) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	var deadline any
	if goal.Deadline != nil {
		deadline = *goal.Deadline
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_cents, current_cents, deadline, description, icon, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_cents = excluded.target_cents,
			current_cents = excluded.current_cents,
			deadline = excluded.deadline,
			description = excluded.description,
			icon = excluded.icon,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		goal.ID, goal.Name, int64(goal.TargetAmount), int64(goal.CurrentAmount),
		deadline, goal.Description, goal.Icon, goal.IsActive, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// GetGoalByID returns a goal, or an error wrapping common.ErrNotFound
// when it does not exist.
func (s *SQLiteStorage) GetGoalByID(ctx context.Context, id string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, target_cents, current_cents, deadline, description, icon, is_active, created_at, updated_at
		FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	return goal, nil
}

// ListGoals returns goals ordered by creation date.
func (s *SQLiteStorage) ListGoals(ctx context.Context, includeInactive bool) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, target_cents, current_cents, deadline, description, icon, is_active, created_at, updated_at
		FROM goals`
	if !includeInactive {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", scanErr)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// DeleteGoal removes a goal by id.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	var goal model.Goal
	var target, current int64
	var deadline sql.NullTime
	var description, icon sql.NullString
	var createdAt, updatedAt time.Time

	if err := row.Scan(&goal.ID, &goal.Name, &target, &current, &deadline,
		&description, &icon, &goal.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	goal.TargetAmount = model.Money(target)
	goal.CurrentAmount = model.Money(current)
	if deadline.Valid {
		d := deadline.Time
		goal.Deadline = &d
	}
	goal.Description = description.String
	goal.Icon = icon.String
	goal.CreatedAt = createdAt
	goal.UpdatedAt = updatedAt
	return &goal, nil
}

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyfin/tally/internal/model"
)

// ListCategories returns all active categories ordered by namespace and
// registry order.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, type, sort_order, is_active
		FROM categories
		WHERE is_active = 1
		ORDER BY type, sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var catType string
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &catType, &cat.SortOrder, &cat.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Type = model.CategoryType(catType)
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// SaveCategory upserts a category by id.
func (s *SQLiteStorage) SaveCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, type, sort_order, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			type = excluded.type,
			sort_order = excluded.sort_order,
			is_active = excluded.is_active`,
		category.ID, category.Name, category.Icon, string(category.Type),
		category.SortOrder, category.IsActive)
	if err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

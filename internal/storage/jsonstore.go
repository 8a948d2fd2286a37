package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tallyfin/tally/internal/common"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/service"
)

// JSONStore is a document-store fallback for environments where SQLite
// cannot be opened. It keeps every collection in memory behind a single
// mutex (one logical writer, mirroring the single-writer redesign) and
// persists the whole document on every mutation with an atomic
// write-then-rename.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  jsonDocument
}

type jsonDocument struct {
	Transactions []model.Transaction `json:"transactions"`
	Budgets      []model.Budget      `json:"budgets"`
	Goals        []model.Goal        `json:"goals"`
	Categories   []model.Category    `json:"categories"`
}

// NewJSONStore opens or creates a JSON document store at path.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	store := &JSONStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fresh store; Migrate seeds the registry.
	case err != nil:
		return nil, fmt.Errorf("failed to read store: %w", err)
	default:
		if err := json.Unmarshal(data, &store.doc); err != nil {
			return nil, fmt.Errorf("failed to parse store: %w", err)
		}
	}
	return store, nil
}

// Migrate seeds the default category registry when the store is empty.
func (s *JSONStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.doc.Categories) == 0 {
		s.doc.Categories = model.DefaultCategories()
		return s.flushLocked()
	}
	return nil
}

// Close persists any in-memory state.
func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked writes the document atomically. Callers hold the mutex.
func (s *JSONStore) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

// SaveTransaction upserts a transaction by id.
func (s *JSONStore) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Transactions {
		if s.doc.Transactions[i].ID == txn.ID {
			s.doc.Transactions[i] = *txn
			return s.flushLocked()
		}
	}
	s.doc.Transactions = append(s.doc.Transactions, *txn)
	return s.flushLocked()
}

// GetTransactionByID returns a transaction, or ErrNotFound.
func (s *JSONStore) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Transactions {
		if s.doc.Transactions[i].ID == id {
			txn := s.doc.Transactions[i]
			return &txn, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
}

// ListTransactions returns matching transactions ordered by date
// descending.
func (s *JSONStore) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, ErrInvalidDateRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.Transaction, 0, len(s.doc.Transactions))
	for _, txn := range s.doc.Transactions {
		if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Type != "" && txn.Type != filter.Type {
			continue
		}
		if filter.CategoryID != "" && txn.CategoryID != filter.CategoryID {
			continue
		}
		matched = append(matched, txn)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].Date.After(matched[j].Date)
	})

	if filter.Limit > 0 {
		if filter.Offset >= len(matched) {
			return []model.Transaction{}, nil
		}
		matched = matched[filter.Offset:]
		if len(matched) > filter.Limit {
			matched = matched[:filter.Limit]
		}
	}
	return matched, nil
}

// DeleteTransaction removes a transaction by id.
func (s *JSONStore) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Transactions {
		if s.doc.Transactions[i].ID == id {
			s.doc.Transactions = append(s.doc.Transactions[:i], s.doc.Transactions[i+1:]...)
			return s.flushLocked()
		}
	}
	return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
}

// CountTransactions returns the number of stored transactions.
func (s *JSONStore) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.Transactions), nil
}

// ReplaceAllTransactions swaps the whole collection.
func (s *JSONStore) ReplaceAllTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range txns {
		if err := validateTransaction(&txns[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Transactions = append([]model.Transaction(nil), txns...)
	return s.flushLocked()
}

// SaveBudget upserts a budget by id.
func (s *JSONStore) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Budgets {
		if s.doc.Budgets[i].ID == budget.ID {
			s.doc.Budgets[i] = *budget
			return s.flushLocked()
		}
	}
	s.doc.Budgets = append(s.doc.Budgets, *budget)
	return s.flushLocked()
}

// GetBudgetByID returns a budget, or ErrNotFound.
func (s *JSONStore) GetBudgetByID(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Budgets {
		if s.doc.Budgets[i].ID == id {
			budget := s.doc.Budgets[i]
			return &budget, nil
		}
	}
	return nil, fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
}

// ListBudgets returns budgets ordered by start date descending.
func (s *JSONStore) ListBudgets(ctx context.Context, includeInactive bool) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := make([]model.Budget, 0, len(s.doc.Budgets))
	for _, budget := range s.doc.Budgets {
		if !includeInactive && !budget.IsActive {
			continue
		}
		budgets = append(budgets, budget)
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		if budgets[i].StartDate.Equal(budgets[j].StartDate) {
			return budgets[i].ID < budgets[j].ID
		}
		return budgets[i].StartDate.After(budgets[j].StartDate)
	})
	return budgets, nil
}

// DeleteBudget removes a budget by id.
func (s *JSONStore) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Budgets {
		if s.doc.Budgets[i].ID == id {
			s.doc.Budgets = append(s.doc.Budgets[:i], s.doc.Budgets[i+1:]...)
			return s.flushLocked()
		}
	}
	return fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
}

// SaveGoal upserts a goal by id.
func (s *JSONStore) SaveGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Goals {
		if s.doc.Goals[i].ID == goal.ID {
			s.doc.Goals[i] = *goal
			return s.flushLocked()
		}
	}
	s.doc.Goals = append(s.doc.Goals, *goal)
	return s.flushLocked()
}

// GetGoalByID returns a goal, or ErrNotFound.
func (s *JSONStore) GetGoalByID(ctx context.Context, id string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Goals {
		if s.doc.Goals[i].ID == id {
			goal := s.doc.Goals[i]
			return &goal, nil
		}
	}
	return nil, fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
}

// ListGoals returns goals in creation order.
func (s *JSONStore) ListGoals(ctx context.Context, includeInactive bool) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goals := make([]model.Goal, 0, len(s.doc.Goals))
	for _, goal := range s.doc.Goals {
		if !includeInactive && !goal.IsActive {
			continue
		}
		goals = append(goals, goal)
	}
	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

// DeleteGoal removes a goal by id.
func (s *JSONStore) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Goals {
		if s.doc.Goals[i].ID == id {
			s.doc.Goals = append(s.doc.Goals[:i], s.doc.Goals[i+1:]...)
			return s.flushLocked()
		}
	}
	return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
}

// ListCategories returns active categories ordered by namespace and
// registry order.
func (s *JSONStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]model.Category, 0, len(s.doc.Categories))
	for _, cat := range s.doc.Categories {
		if cat.IsActive {
			categories = append(categories, cat)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Type != categories[j].Type {
			return categories[i].Type < categories[j].Type
		}
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// SaveCategory upserts a category by id.
func (s *JSONStore) SaveCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Categories {
		if s.doc.Categories[i].ID == category.ID {
			s.doc.Categories[i] = *category
			return s.flushLocked()
		}
	}
	s.doc.Categories = append(s.doc.Categories, *category)
	return s.flushLocked()
}

var (
	_ service.Storage = (*JSONStore)(nil)
	_ service.Storage = (*SQLiteStorage)(nil)
)

// Package service defines the interfaces for the persistence layer. The
// analytics engine never talks to storage directly; commands fetch
// record slices through these interfaces and hand them to the engine.
package service

import (
	"context"
	"time"

	"github.com/tallyfin/tally/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Nil bounds mean unbounded; an empty type or category matches all.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       model.TransactionType
	CategoryID string
	Limit      int
	Offset     int
}

// Storage defines the contract for the persistence layer. Mutations are
// per-record upserts and deletes; there is no whole-collection
// read-modify-write cycle to race against. Getters and deletes report a
// missing id with an error wrapping common.ErrNotFound.
type Storage interface {
	// Transaction operations.
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	CountTransactions(ctx context.Context) (int, error)
	// ReplaceAllTransactions swaps the entire collection atomically.
	// Only the import path uses it.
	ReplaceAllTransactions(ctx context.Context, txns []model.Transaction) error

	// Budget operations.
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetBudgetByID(ctx context.Context, id string) (*model.Budget, error)
	ListBudgets(ctx context.Context, includeInactive bool) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, id string) error

	// Goal operations.
	SaveGoal(ctx context.Context, goal *model.Goal) error
	GetGoalByID(ctx context.Context, id string) (*model.Goal, error)
	ListGoals(ctx context.Context, includeInactive bool) ([]model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	// Category operations.
	ListCategories(ctx context.Context) ([]model.Category, error)
	SaveCategory(ctx context.Context, category *model.Category) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// Package testutil provides shared helpers for storage-backed tests:
// isolated in-memory databases and transaction fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/service"
	"github.com/tallyfin/tally/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database, seeded with
// the default categories, and registers cleanup.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// TxnOption mutates a fixture transaction.
type TxnOption func(*model.Transaction)

// WithType sets the transaction type.
func WithType(txType model.TransactionType) TxnOption {
	return func(txn *model.Transaction) { txn.Type = txType }
}

// WithAmount sets the amount in minor units.
func WithAmount(amount model.Money) TxnOption {
	return func(txn *model.Transaction) { txn.Amount = amount }
}

// WithCategory sets the category id.
func WithCategory(id string) TxnOption {
	return func(txn *model.Transaction) { txn.CategoryID = id }
}

// WithDate sets the transaction date.
func WithDate(date time.Time) TxnOption {
	return func(txn *model.Transaction) { txn.Date = date }
}

// WithDescription sets the description.
func WithDescription(description string) TxnOption {
	return func(txn *model.Transaction) { txn.Description = description }
}

// Txn builds a valid expense fixture and applies the given options.
func Txn(opts ...TxnOption) model.Transaction {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	txn := model.Transaction{
		ID:          uuid.New().String(),
		Type:        model.TypeExpense,
		Description: "Grocery run",
		Amount:      model.Money(2500),
		CategoryID:  "food",
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(&txn)
	}
	return txn
}

// SeedTransactions saves fixtures into the store, failing the test on
// any error.
func SeedTransactions(t *testing.T, store service.Storage, txns ...model.Transaction) {
	t.Helper()

	ctx := context.Background()
	for i := range txns {
		if err := store.SaveTransaction(ctx, &txns[i]); err != nil {
			t.Fatalf("failed to seed transaction %d: %v", i, err)
		}
	}
}

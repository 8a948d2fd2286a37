package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tallyfin/tally/internal/common"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/service"
	"github.com/tallyfin/tally/internal/storage"
	"github.com/tallyfin/tally/internal/testutil"
)

func TestSQLiteMigrate(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	// Migrations must be idempotent.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) == 0 {
		t.Error("migration must seed default categories")
	}
}

func TestSQLiteOnDisk(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tally.db")
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	txn := testutil.Txn()
	if err := store.SaveTransaction(ctx, &txn); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	// Data survives reopening.
	reopened, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetTransactionByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("failed to load after reopen: %v", err)
	}
	if got.Description != txn.Description {
		t.Errorf("Description = %q, want %q", got.Description, txn.Description)
	}

	version, err := reopened.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != storage.ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, storage.ExpectedSchemaVersion)
	}
}

func TestSQLiteTransactionCRUD(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	txn := testutil.Txn(testutil.WithDescription("Corner shop"))
	if err := store.SaveTransaction(ctx, &txn); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	got, err := store.GetTransactionByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Description != "Corner shop" || got.Amount != txn.Amount {
		t.Errorf("loaded %+v, want %+v", got, txn)
	}

	// Saving the same id again updates in place.
	txn.Description = "Corner shop updated"
	txn.Amount = 9999
	if err := store.SaveTransaction(ctx, &txn); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	count, err := store.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("count after upsert = %d, want 1", count)
	}
	got, err = store.GetTransactionByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Amount != 9999 {
		t.Errorf("upsert did not apply, amount = %d", got.Amount)
	}

	if err := store.DeleteTransaction(ctx, txn.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := store.GetTransactionByID(ctx, txn.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := store.DeleteTransaction(ctx, txn.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestSQLiteIdenticalContentTransactions(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	// Two identical coffee purchases on the same day are distinct
	// records with distinct ids, even though their content hashes
	// collide. Both must persist.
	first := testutil.Txn()
	second := testutil.Txn()
	if first.Hash() != second.Hash() {
		t.Fatalf("fixtures must share a content hash, got %q and %q", first.Hash(), second.Hash())
	}

	if err := store.SaveTransaction(ctx, &first); err != nil {
		t.Fatalf("failed to save first: %v", err)
	}
	if err := store.SaveTransaction(ctx, &second); err != nil {
		t.Fatalf("failed to save second: %v", err)
	}

	count, err := store.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSQLiteListTransactions(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
	}
	testutil.SeedTransactions(t, store,
		testutil.Txn(testutil.WithDate(day(1)), testutil.WithCategory("food")),
		testutil.Txn(testutil.WithDate(day(5)), testutil.WithCategory("transport")),
		testutil.Txn(testutil.WithDate(day(10)), testutil.WithCategory("food"),
			testutil.WithType(model.TypeIncome)),
		testutil.Txn(testutil.WithDate(day(20)), testutil.WithCategory("food")),
	)

	t.Run("no filter returns all newest first", func(t *testing.T) {
		got, err := store.ListTransactions(ctx, service.TransactionFilter{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Date.After(got[i-1].Date) {
				t.Errorf("results not ordered by date descending at %d", i)
			}
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		start := day(4)
		end := day(11)
		got, err := store.ListTransactions(ctx, service.TransactionFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("type filter", func(t *testing.T) {
		got, err := store.ListTransactions(ctx, service.TransactionFilter{Type: model.TypeIncome})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		got, err := store.ListTransactions(ctx, service.TransactionFilter{CategoryID: "transport"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d, want 1", len(got))
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		got, err := store.ListTransactions(ctx, service.TransactionFilter{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		start := day(20)
		end := day(1)
		if _, err := store.ListTransactions(ctx, service.TransactionFilter{
			StartDate: &start,
			EndDate:   &end,
		}); err == nil {
			t.Error("expected error for inverted date range")
		}
	})
}

func TestSQLiteReplaceAllTransactions(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	testutil.SeedTransactions(t, store, testutil.Txn(), testutil.Txn(), testutil.Txn())

	replacement := []model.Transaction{
		testutil.Txn(testutil.WithDescription("Fresh start")),
	}
	if err := store.ReplaceAllTransactions(ctx, replacement); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	count, err := store.CountTransactions(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count after replace = %d, want 1", count)
	}
}

func TestSQLiteBudgetCRUD(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	budget := model.Budget{
		ID:         "b1",
		Name:       "June food",
		Amount:     50000,
		CategoryID: "food",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := store.SaveBudget(ctx, &budget); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.GetBudgetByID(ctx, "b1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != budget.Name || got.Amount != budget.Amount {
		t.Errorf("loaded %+v, want %+v", got, budget)
	}

	inactive := budget
	inactive.ID = "b2"
	inactive.IsActive = false
	if err := store.SaveBudget(ctx, &inactive); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	active, err := store.ListBudgets(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("active budgets = %d, want 1", len(active))
	}
	all, err := store.ListBudgets(ctx, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all budgets = %d, want 2", len(all))
	}

	if err := store.DeleteBudget(ctx, "b1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetBudgetByID(ctx, "b1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestSQLiteGoalCRUD(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	goal := model.Goal{
		ID:            "g1",
		Name:          "Emergency fund",
		TargetAmount:  100000,
		CurrentAmount: 25000,
		Deadline:      &deadline,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := store.SaveGoal(ctx, &goal); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.GetGoalByID(ctx, "g1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CurrentAmount != 25000 {
		t.Errorf("CurrentAmount = %d, want 25000", got.CurrentAmount)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Errorf("Deadline = %v, want %v", got.Deadline, deadline)
	}

	// Contribution persists through the upsert path.
	got.CurrentAmount += 5000
	if err := store.SaveGoal(ctx, got); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	again, err := store.GetGoalByID(ctx, "g1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.CurrentAmount != 30000 {
		t.Errorf("CurrentAmount = %d, want 30000", again.CurrentAmount)
	}

	goals, err := store.ListGoals(ctx, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(goals) != 1 {
		t.Errorf("goals = %d, want 1", len(goals))
	}

	if err := store.DeleteGoal(ctx, "g1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.DeleteGoal(ctx, "g1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestSQLiteSaveCategory(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	before, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	custom := model.Category{
		ID:        "pets",
		Name:      "Pets",
		Icon:      "🐈",
		Type:      model.CategoryTypeExpense,
		SortOrder: 50,
		IsActive:  true,
	}
	if err := store.SaveCategory(ctx, &custom); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	after, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("categories = %d, want %d", len(after), len(before)+1)
	}
}

func TestSQLiteValidation(t *testing.T) {
	store := testutil.SetupTestDB(t)

	//nolint:staticcheck // the nil context is the point of the test
	if err := store.SaveTransaction(nil, nil); err == nil {
		t.Error("nil context must be rejected")
	}
	if _, err := store.GetTransactionByID(context.Background(), ""); err == nil {
		t.Error("empty id must be rejected")
	}
	if err := store.SaveTransaction(context.Background(), nil); err == nil {
		t.Error("nil transaction must be rejected")
	}
}

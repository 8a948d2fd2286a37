package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tallyfin/tally/internal/config"
	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/service"
	"github.com/tallyfin/tally/internal/storage"
)

// defaultDBPath returns the standard database location.
func defaultDBPath() string {
	return config.DataFile("tally.db")
}

// openStorage opens the configured SQLite database and runs migrations.
// When SQLite cannot be opened the call degrades to the JSON document
// store next to it; the caller never sees the difference.
func openStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		slog.Warn("falling back to JSON document store",
			"db_path", dbPath,
			"error", err)

		jsonPath := strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".json"
		jsonStore, jsonErr := storage.NewJSONStore(jsonPath)
		if jsonErr != nil {
			return nil, fmt.Errorf("failed to open storage (sqlite: %v): %w", err, jsonErr)
		}
		if migrateErr := jsonStore.Migrate(ctx); migrateErr != nil {
			return nil, fmt.Errorf("failed to initialize fallback store: %w", migrateErr)
		}
		return jsonStore, nil
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// loadCategorySet fetches the category registry as a lookup table.
func loadCategorySet(ctx context.Context, store service.Storage) (*model.CategorySet, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return model.NewCategorySet(categories), nil
}

// resolvePeriodRange turns --period or explicit --start/--end flags into
// an inclusive date range.
func resolvePeriodRange(period, startFlag, endFlag string, now time.Time) (time.Time, time.Time, error) {
	if startFlag != "" || endFlag != "" {
		// A missing bound defaults to an open one.
		start := time.Time{}
		if startFlag != "" {
			parsed, ok := parseDate(startFlag)
			if !ok {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", startFlag)
			}
			start = parsed
		}
		end := dates.EndOfDay(now)
		if endFlag != "" {
			parsed, ok := parseDate(endFlag)
			if !ok {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", endFlag)
			}
			end = parsed
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
		}
		return start, end, nil
	}

	p, err := dates.ParsePeriod(period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, end := dates.Range(p, now)
	return start, end, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// fetchTransactions loads every transaction in a date range.
func fetchTransactions(ctx context.Context, store service.Storage, start, end time.Time) ([]model.Transaction, error) {
	endOfDay := dates.EndOfDay(end)
	return store.ListTransactions(ctx, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &endOfDay,
	})
}

// fetchAllTransactions loads the full history.
func fetchAllTransactions(ctx context.Context, store service.Storage) ([]model.Transaction, error) {
	return store.ListTransactions(ctx, service.TransactionFilter{})
}

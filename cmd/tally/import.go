package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/common"
	"github.com/tallyfin/tally/internal/csvio"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/ofx"
	"github.com/tallyfin/tally/internal/service"
)

func importCmd() *cobra.Command {
	var (
		format  string
		replace bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from CSV or OFX files",
		Long: `Import transactions from CSV files exported by tally, or OFX/QFX
files exported from your bank.

Malformed CSV rows are reported and skipped; one bad row never aborts
a file. Rows already present (same date, type, amount, and
description) are skipped as duplicates.

Examples:
  # Import a CSV export
  tally import ~/Downloads/transactions.csv

  # Import all bank statements in a directory
  tally import ~/Downloads/*.ofx

  # Replace the whole history with a CSV file
  tally import --replace backup.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			now := time.Now()
			var imported []model.Transaction
			var rowErrors []csvio.RowError

			for _, path := range files {
				transactions, errs, err := importFile(cmd, path, format, categories, now)
				if err != nil {
					slog.Error("Failed to import file", "file", path, "error", err)
					continue
				}
				imported = append(imported, transactions...)
				rowErrors = append(rowErrors, errs...)
			}

			for _, rowErr := range rowErrors {
				fmt.Println(cli.FormatWarning("skipped " + rowErr.String()))
			}

			if len(imported) == 0 {
				if len(rowErrors) > 0 {
					fmt.Println(cli.FormatInfo("No importable transactions found."))
					return nil
				}
				return common.NewUserError("no transactions found in the given files", common.ErrNoRecords)
			}

			if dryRun {
				fmt.Println(cli.FormatInfo(fmt.Sprintf(
					"Dry run: %d transactions would be imported (%d rows skipped).",
					len(imported), len(rowErrors))))
				return nil
			}

			saved, duplicates, err := persistImport(ctx, store, imported, replace)
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("Imported %d transactions", saved)
			if duplicates > 0 {
				msg += fmt.Sprintf(", skipped %d duplicates", duplicates)
			}
			if len(rowErrors) > 0 {
				msg += fmt.Sprintf(", %d bad rows", len(rowErrors))
			}
			fmt.Println(cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "file format (csv, ofx); default guesses from the extension")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole history instead of merging")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")

	return cmd
}

// expandPatterns resolves glob patterns and plain paths into a file list.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func importFile(cmd *cobra.Command, path, format string, categories *model.CategorySet, now time.Time) ([]model.Transaction, []csvio.RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bar := progressbar.NewOptions64(info.Size(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(filepath.Base(path)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	reader := io.TeeReader(f, bar)

	switch detectFormat(path, format) {
	case "csv":
		result, err := csvio.Import(reader, categories, now)
		if err != nil {
			return nil, nil, err
		}
		return result.Transactions, result.Errors, nil
	case "ofx":
		parser := ofx.NewParser(categories)
		transactions, err := parser.ParseFile(cmd.Context(), reader)
		if err != nil {
			return nil, nil, err
		}
		return transactions, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", common.ErrUnknownFormat, path)
	}
}

func detectFormat(path, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".ofx", ".qfx":
		return "ofx"
	default:
		return ""
	}
}

// persistImport saves imported records, either replacing the whole
// collection or merging with content-hash deduplication.
func persistImport(ctx context.Context, store service.Storage, imported []model.Transaction, replace bool) (saved, duplicates int, err error) {
	if replace {
		if err := store.ReplaceAllTransactions(ctx, imported); err != nil {
			return 0, 0, fmt.Errorf("failed to replace transactions: %w", err)
		}
		return len(imported), 0, nil
	}

	existing, err := fetchAllTransactions(ctx, store)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, txn := range existing {
		seen[txn.Hash()] = true
	}

	for _, txn := range imported {
		hash := txn.Hash()
		if seen[hash] {
			duplicates++
			continue
		}
		seen[hash] = true
		if err := store.SaveTransaction(ctx, &txn); err != nil {
			return saved, duplicates, fmt.Errorf("failed to save transaction: %w", err)
		}
		saved++
	}
	return saved, duplicates, nil
}

package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tallyfin/tally/internal/model"
)

// RowError records why one CSV row was skipped.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ImportResult carries the rows that imported cleanly alongside the
// rows that did not. An import only fails outright when the input is
// not CSV at all.
type ImportResult struct {
	Transactions []model.Transaction
	Errors       []RowError
}

// Import reads transactions from r. Malformed rows are collected as
// RowErrors rather than aborting the import. Rows whose category id or
// name is not in the registry fall back to the first registered
// category of the row's type. now stamps CreatedAt for rows that do not
// carry one.
func Import(r io.Reader, categories *model.CategorySet, now time.Time) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0

	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Errors = append(result.Errors, RowError{Line: line, Reason: err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if line == 1 && isHeader(record) {
			continue
		}

		txn, rowErr := parseRow(record, categories, now)
		if rowErr != "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: rowErr})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	return result, nil
}

// isHeader detects the canonical header row, case-insensitively.
func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(record[0]), Header[0]) &&
		strings.EqualFold(strings.TrimSpace(record[1]), Header[1])
}

func parseRow(record []string, categories *model.CategorySet, now time.Time) (model.Transaction, string) {
	if len(record) < 6 {
		return model.Transaction{}, fmt.Sprintf("expected at least 6 columns, got %d", len(record))
	}

	in := model.TransactionInput{
		Type:        record[1],
		Description: record[2],
		Amount:      record[3],
		CategoryID:  record[4],
		Date:        record[5],
	}
	if len(record) > 7 {
		in.Notes = record[7]
	}

	// Unresolvable categories default to the first registered category
	// of the row's type instead of failing the row.
	txType := model.ParseTransactionType(in.Type)
	if _, ok := categories.Lookup(strings.ToLower(strings.TrimSpace(in.CategoryID))); !ok {
		if resolved, ok := resolveByName(categories, txType, in.CategoryID); ok {
			in.CategoryID = resolved
		} else if first, ok := categories.FirstOfType(txType.CategoryType()); ok {
			in.CategoryID = first.ID
		}
	}

	txn, validation := model.NewTransaction(in, now)
	if !validation.Valid() {
		return model.Transaction{}, validation.Err().Error()
	}

	// Preserve identity and provenance from the file when present.
	if id := strings.TrimSpace(record[0]); id != "" {
		txn.ID = id
	}
	if len(record) > 6 {
		if createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[6])); err == nil {
			txn.CreatedAt = createdAt
		}
	}
	return txn, ""
}

// resolveByName matches a category display name within a namespace.
func resolveByName(categories *model.CategorySet, txType model.TransactionType, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, cat := range categories.ByType(txType.CategoryType()) {
		if strings.EqualFold(cat.Name, name) {
			return cat.ID, true
		}
	}
	return "", false
}

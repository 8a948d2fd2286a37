package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyfin/tally/internal/sanitize"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction that adds to the balance.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction that subtracts from the balance.
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType normalizes a type string. Unrecognized values
// default to expense.
func ParseTransactionType(s string) TransactionType {
	if sanitize.Identifier(s) == string(TypeIncome) {
		return TypeIncome
	}
	return TypeExpense
}

// CategoryType maps a transaction type onto its category namespace.
func (t TransactionType) CategoryType() CategoryType {
	if t == TypeIncome {
		return CategoryTypeIncome
	}
	return CategoryTypeExpense
}

// Transaction is a single validated financial record.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Type        TransactionType
	Description string
	CategoryID  string
	Notes       string
	Amount      Money
}

// TransactionInput carries raw form or import values for a transaction.
// All fields are strings; construction sanitizes and validates them.
type TransactionInput struct {
	Type        string
	Description string
	Amount      string
	CategoryID  string
	Date        string
	Notes       string
}

const (
	descriptionMinLen = 3
	descriptionMaxLen = 200
	notesMaxLen       = 500
	nameMinLen        = 3
	nameMaxLen        = 100
	categoryIDMaxLen  = 50
)

// NewTransaction builds a Transaction from raw input. Invalid input is
// rejected with field errors; no record is returned in that case.
func NewTransaction(in TransactionInput, now time.Time) (Transaction, ValidationResult) {
	var result ValidationResult

	txn := Transaction{
		ID:          uuid.New().String(),
		Type:        ParseTransactionType(in.Type),
		Description: sanitize.Text(in.Description, descriptionMaxLen),
		CategoryID:  sanitize.Identifier(in.CategoryID),
		Notes:       sanitize.Text(in.Notes, notesMaxLen),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if len(txn.Description) < descriptionMinLen {
		result.Add("description", fmt.Sprintf("description must be at least %d characters", descriptionMinLen))
	}
	if txn.CategoryID == "" {
		result.Add("category", "category is required")
	}

	amount, err := ParseMoney(in.Amount)
	switch {
	case err != nil:
		result.Add("amount", "amount must be a number")
	case amount <= 0:
		result.Add("amount", "amount must be greater than zero")
	default:
		txn.Amount = amount
	}

	if date, ok := sanitize.Date(in.Date); ok {
		txn.Date = date
	} else {
		result.Add("date", "date is invalid")
	}

	if !result.Valid() {
		return Transaction{}, result
	}
	return txn, result
}

// ApplyUpdate replaces the mutable fields of a transaction from raw
// input, re-running the full sanitize-and-validate pass. The record is
// untouched when validation fails.
func (t *Transaction) ApplyUpdate(in TransactionInput, now time.Time) ValidationResult {
	updated, result := NewTransaction(in, now)
	if !result.Valid() {
		return result
	}

	updated.ID = t.ID
	updated.CreatedAt = t.CreatedAt
	*t = updated
	return result
}

// Hash produces a stable content hash used for duplicate detection on
// statement imports.
func (t *Transaction) Hash() string {
	data := fmt.Sprintf("%s:%s:%d:%s",
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount,
		t.Description)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}

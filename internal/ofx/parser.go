// Package ofx parses OFX/QFX bank and credit-card statements into
// transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/sanitize"
)

// Parser implements OFX/QFX file parsing.
type Parser struct {
	categories *model.CategorySet
}

// NewParser creates a new OFX parser. Statement lines carry no category
// information, so each transaction falls back to the first registered
// category of its namespace.
func NewParser(categories *model.CategorySet) *Parser {
	return &Parser{categories: categories}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading
// whitespace before the header, mixed-case SEVERITY values, and
// SGML-style tags missing their closing bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRe.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX statement and returns transactions. The
// context is checked between statements so large multi-account files can
// be canceled.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTx))
			}
		}
	}

	slog.Info("parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convert maps one OFX transaction line onto the domain model. OFX uses
// negative amounts for debits, so the sign selects the transaction
// type.
func (p *Parser) convert(ofxTx ofxgo.Transaction) model.Transaction {
	amountFloat, _ := ofxTx.TrnAmt.Float64()

	txType := model.TypeExpense
	if amountFloat > 0 {
		txType = model.TypeIncome
	}

	now := time.Now()
	txn := model.Transaction{
		ID:          uuid.New().String(),
		Type:        txType,
		Description: p.description(ofxTx),
		Amount:      model.MoneyFromFloat(amountFloat).Abs(),
		Date:        ofxTx.DtPosted.Time,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if cat, ok := p.categories.FirstOfType(txType.CategoryType()); ok {
		txn.CategoryID = cat.ID
	}
	return txn
}

// description picks the cleanest text available: PAYEE, then NAME, then
// MEMO when NAME is generic.
func (p *Parser) description(ofxTx ofxgo.Transaction) string {
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		return sanitize.Text(string(ofxTx.Payee.Name), 200)
	}

	name := string(ofxTx.Name)
	if ofxTx.Memo != "" && isGenericDescription(name) {
		name = string(ofxTx.Memo)
	}
	return sanitize.Text(name, 200)
}

// isGenericDescription reports whether a NAME field carries no real
// merchant information.
func isGenericDescription(name string) bool {
	generic := []string{"debit", "credit", "withdrawal", "deposit", "payment", "purchase", "pos", "ach"}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, g := range generic {
		if lower == g {
			return true
		}
	}
	return lower == ""
}

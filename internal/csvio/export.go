// Package csvio implements the CSV exchange contract for transactions:
// a fixed eight-column layout, tolerant date parsing on import, and
// per-row error collection so one bad row never aborts a whole file.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/tallyfin/tally/internal/model"
)

// Header is the canonical column layout for transaction CSV files.
var Header = []string{"ID", "Type", "Description", "Amount", "Category", "Date", "CreatedAt", "Notes"}

// exportDateLayout is the display date format used in exported files.
const exportDateLayout = "02/01/2006"

// Export writes transactions to w in the canonical column layout.
// Amounts carry two decimals; dates use the display format the import
// path accepts.
func Export(w io.Writer, transactions []model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range transactions {
		txn := &transactions[i]
		record := []string{
			txn.ID,
			string(txn.Type),
			txn.Description,
			txn.Amount.String(),
			txn.CategoryID,
			txn.Date.Format(exportDateLayout),
			txn.CreatedAt.Format(time.RFC3339),
			txn.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", txn.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

package analytics

import (
	"sort"
	"time"

	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	ID         string
	Name       string
	Icon       string
	Total      model.Money
	Count      int
	Percentage float64
}

// CategoryBreakdown groups one transaction type's records by category
// over a date range.
type CategoryBreakdown struct {
	Type        model.TransactionType
	TotalAmount model.Money
	Categories  []CategoryTotal
}

// CategoryTotals groups records of the given type within [start, end] by
// category. Every registered category of the namespace appears in the
// result, zero-valued when nothing matched, so consumers always see a
// stable shape. Records whose category id is not in the registry are
// collected under a synthetic Unknown row rather than dropped.
//
// Rows are ordered by total descending; ties keep registry order.
func CategoryTotals(records []model.Transaction, txType model.TransactionType, start, end time.Time, categories *model.CategorySet) CategoryBreakdown {
	end = dates.EndOfDay(end)

	totals := make(map[string]*CategoryTotal)
	rows := make([]CategoryTotal, 0, len(categories.ByType(txType.CategoryType()))+1)
	for _, cat := range categories.ByType(txType.CategoryType()) {
		rows = append(rows, CategoryTotal{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
	}
	for i := range rows {
		totals[rows[i].ID] = &rows[i]
	}

	breakdown := CategoryBreakdown{Type: txType}
	var unknown *CategoryTotal

	for _, txn := range records {
		if txn.Type != txType || txn.Date.Before(start) || txn.Date.After(end) {
			continue
		}

		row, ok := totals[txn.CategoryID]
		if !ok {
			if unknown == nil {
				rows = append(rows, CategoryTotal{ID: model.UnknownCategoryID, Name: "Unknown"})
				unknown = &rows[len(rows)-1]
				// rows may have been reallocated
				for i := range rows[:len(rows)-1] {
					totals[rows[i].ID] = &rows[i]
				}
			}
			row = unknown
		}
		row.Total += txn.Amount
		row.Count++
		breakdown.TotalAmount += txn.Amount
	}

	if breakdown.TotalAmount > 0 {
		for i := range rows {
			rows[i].Percentage = float64(rows[i].Total) / float64(breakdown.TotalAmount) * 100
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	breakdown.Categories = rows
	return breakdown
}

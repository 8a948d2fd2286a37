package analytics

import (
	"sort"
	"strings"

	"github.com/tallyfin/tally/internal/model"
)

// RecurringExpense is a description+category pair seen repeatedly in the
// expense history. Detection is a best-effort heuristic over free text,
// not an authoritative subscription list.
type RecurringExpense struct {
	Description string
	CategoryID  string
	Total       model.Money
	Average     model.Money
	Occurrences int
}

// DetectRecurring groups expense records by normalized description and
// category, keeping groups that repeat at least
// cfg.RecurringMinOccurrences times. Results are sorted by total
// descending; the first entry is the most notable recurring expense.
func DetectRecurring(records []model.Transaction, cfg Config) []RecurringExpense {
	type key struct {
		description string
		category    string
	}

	groups := make(map[key]*RecurringExpense)
	order := make([]key, 0)

	for _, txn := range records {
		if txn.Type != model.TypeExpense {
			continue
		}
		k := key{
			description: strings.ToLower(strings.TrimSpace(txn.Description)),
			category:    txn.CategoryID,
		}
		group, ok := groups[k]
		if !ok {
			group = &RecurringExpense{Description: txn.Description, CategoryID: txn.CategoryID}
			groups[k] = group
			order = append(order, k)
		}
		group.Total += txn.Amount
		group.Occurrences++
	}

	recurring := make([]RecurringExpense, 0, len(order))
	for _, k := range order {
		group := groups[k]
		if group.Occurrences < cfg.RecurringMinOccurrences {
			continue
		}
		group.Average = group.Total / model.Money(group.Occurrences)
		recurring = append(recurring, *group)
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].Total > recurring[j].Total
	})
	return recurring
}

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfin/tally/internal/model"
)

func namedTxn(description string, amount model.Money, date time.Time) model.Transaction {
	t := txn(model.TypeExpense, amount, date)
	t.Description = description
	return t
}

func TestDetectRecurring(t *testing.T) {
	cfg := DefaultConfig()
	base := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)

	t.Run("three monthly charges form a recurring expense", func(t *testing.T) {
		records := []model.Transaction{
			namedTxn("Netflix", 3990, base),
			namedTxn("Netflix", 3990, base.AddDate(0, 1, 0)),
			namedTxn("Netflix", 3990, base.AddDate(0, 2, 0)),
		}

		recurring := DetectRecurring(records, cfg)

		require.Len(t, recurring, 1)
		assert.Equal(t, "Netflix", recurring[0].Description)
		assert.Equal(t, 3, recurring[0].Occurrences)
		assert.Equal(t, model.Money(11970), recurring[0].Total)
		assert.Equal(t, model.Money(3990), recurring[0].Average)
	})

	t.Run("grouping is case insensitive on description", func(t *testing.T) {
		records := []model.Transaction{
			namedTxn("Netflix", 3990, base),
			namedTxn("NETFLIX", 3990, base.AddDate(0, 1, 0)),
			namedTxn("netflix ", 3990, base.AddDate(0, 2, 0)),
		}

		recurring := DetectRecurring(records, cfg)

		require.Len(t, recurring, 1)
		assert.Equal(t, 3, recurring[0].Occurrences)
	})

	t.Run("same description in different categories stays separate", func(t *testing.T) {
		subscription := namedTxn("Monthly plan", 2000, base)
		subscription.CategoryID = "entertainment"
		gym := namedTxn("Monthly plan", 2000, base)
		gym.CategoryID = "health"

		records := []model.Transaction{
			subscription, gym,
			subscription, gym,
		}

		recurring := DetectRecurring(records, cfg)

		assert.Empty(t, recurring, "two occurrences per group is below the threshold")
	})

	t.Run("fewer than three occurrences is not recurring", func(t *testing.T) {
		records := []model.Transaction{
			namedTxn("Spotify", 1090, base),
			namedTxn("Spotify", 1090, base.AddDate(0, 1, 0)),
		}

		assert.Empty(t, DetectRecurring(records, cfg))
	})

	t.Run("sorted by total descending", func(t *testing.T) {
		records := []model.Transaction{
			namedTxn("Spotify", 1090, base),
			namedTxn("Spotify", 1090, base.AddDate(0, 1, 0)),
			namedTxn("Spotify", 1090, base.AddDate(0, 2, 0)),
			namedTxn("Rent", 85000, base),
			namedTxn("Rent", 85000, base.AddDate(0, 1, 0)),
			namedTxn("Rent", 85000, base.AddDate(0, 2, 0)),
		}

		recurring := DetectRecurring(records, cfg)

		require.Len(t, recurring, 2)
		assert.Equal(t, "Rent", recurring[0].Description)
		assert.Equal(t, "Spotify", recurring[1].Description)
	})

	t.Run("income never counts as recurring expense", func(t *testing.T) {
		salary := txn(model.TypeIncome, 300000, base)
		salary.Description = "Salary"

		records := []model.Transaction{salary, salary, salary}

		assert.Empty(t, DetectRecurring(records, cfg))
	})
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/analytics"
	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/dates"
	"github.com/tallyfin/tally/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
		Long:  `Period summaries, category breakdowns, monthly evolution, and forecasts.`,
	}

	cmd.AddCommand(reportSummaryCmd())
	cmd.AddCommand(reportCategoriesCmd())
	cmd.AddCommand(reportMonthlyCmd())
	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportForecastCmd())

	return cmd
}

func reportSummaryCmd() *cobra.Command {
	var (
		period string
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Income and expense summary",
		Long:  `Total income, expense, balance, and savings rate over a period.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rangeStart, rangeEnd, err := resolvePeriodRange(period, start, end, time.Now())
			if err != nil {
				return err
			}

			transactions, err := fetchTransactions(ctx, store, rangeStart, rangeEnd)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			summary := analytics.Summary(transactions, rangeStart, rangeEnd)

			var b strings.Builder
			fmt.Fprintf(&b, "Income:       %s\n", summary.Income)
			fmt.Fprintf(&b, "Expense:      %s\n", summary.Expense)
			fmt.Fprintf(&b, "Balance:      %s\n", summary.Balance)
			fmt.Fprintf(&b, "Savings rate: %.1f%%\n", summary.SavingsRate)
			fmt.Fprintf(&b, "Transactions: %d over %d days\n", summary.Count, summary.Days)
			fmt.Fprintf(&b, "Daily avg:    %s in, %s out", summary.DailyIncome, summary.DailyExpense)

			title := fmt.Sprintf("Summary %s to %s",
				rangeStart.Format("2006-01-02"), rangeEnd.Format("2006-01-02"))
			fmt.Println(cli.RenderBox(title, b.String()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "month", "period (day, week, month, quarter, year, all)")
	cmd.Flags().StringVar(&start, "start", "", "explicit range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "explicit range end (YYYY-MM-DD)")

	return cmd
}

func reportCategoriesCmd() *cobra.Command {
	var (
		period string
		start  string
		end    string
		txType string
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Per-category totals",
		Long: `Break a period's records down by category. Every registered category
of the chosen type appears, zero when unused; records filed under an
unregistered category show up as Unknown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rangeStart, rangeEnd, err := resolvePeriodRange(period, start, end, time.Now())
			if err != nil {
				return err
			}

			transactions, err := fetchTransactions(ctx, store, rangeStart, rangeEnd)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			breakdown := analytics.CategoryTotals(transactions,
				model.ParseTransactionType(txType), rangeStart, rangeEnd, categories)

			rows := make([][]string, 0, len(breakdown.Categories))
			for _, row := range breakdown.Categories {
				rows = append(rows, []string{
					row.Icon,
					row.Name,
					row.Total.String(),
					fmt.Sprintf("%.1f%%", row.Percentage),
					fmt.Sprintf("%d", row.Count),
				})
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s by category (total %s)",
				breakdown.Type, breakdown.TotalAmount)))
			fmt.Println(cli.RenderTable([]string{"", "Category", "Total", "Share", "Count"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "month", "period (day, week, month, quarter, year, all)")
	cmd.Flags().StringVar(&start, "start", "", "explicit range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "explicit range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "transaction type (income, expense)")

	return cmd
}

func reportMonthlyCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly evolution",
		Long: `Month-by-month income, expense, and balance with totals, averages,
best and worst months, and trend direction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := fetchAllTransactions(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			now := time.Now()
			startMonth := dates.AddMonths(dates.StartOfMonth(now), -(months - 1))
			report := analytics.Monthly(transactions, startMonth, months, analytics.DefaultConfig())

			rows := make([][]string, 0, len(report.Months))
			for i, m := range report.Months {
				marker := ""
				if i == report.BestMonthIdx {
					marker = "best"
				} else if i == report.WorstMonthIdx {
					marker = "worst"
				}
				rows = append(rows, []string{
					m.Label,
					m.Income.String(),
					m.Expense.String(),
					m.Balance.String(),
					fmt.Sprintf("%.1f%%", m.SavingsRate),
					marker,
				})
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %d months", months)))
			fmt.Println(cli.RenderTable([]string{"Month", "Income", "Expense", "Balance", "Rate", ""}, rows))
			fmt.Println()
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Totals: %s in, %s out, %s balance",
				report.TotalIncome, report.TotalExpense, report.TotalBalance)))
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Averages: %s in, %s out per month",
				report.AvgIncome, report.AvgExpense)))
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Trends: income %s, expense %s, balance %s",
				trendArrow(report.Trends.Income), trendArrow(report.Trends.Expense), trendArrow(report.Trends.Balance))))
			return nil
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 6, "number of months")

	return cmd
}

func trendArrow(t analytics.Trend) string {
	switch t {
	case analytics.TrendUp:
		return "↑"
	case analytics.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func reportTrendCmd() *cobra.Command {
	var (
		unit  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Bucketed income/expense series",
		Long: `Income and expense bucketed by hour, day, or month, ending now.
Buckets with no records stay at zero so the series has no gaps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bucketUnit, err := dates.ParseBucketUnit(unit)
			if err != nil {
				return err
			}

			transactions, err := fetchAllTransactions(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			series := analytics.TimeSeries(transactions, bucketUnit, count, time.Now())

			rows := make([][]string, 0, len(series.Labels))
			for i, label := range series.Labels {
				rows = append(rows, []string{
					label,
					series.Income[i].String(),
					series.Expense[i].String(),
					(series.Income[i] - series.Expense[i]).String(),
				})
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %d %ss", count, unit)))
			fmt.Println(cli.RenderTable([]string{"Bucket", "Income", "Expense", "Net"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "day", "bucket unit (hour, day, month)")
	cmd.Flags().IntVarP(&count, "count", "c", 14, "number of buckets")

	return cmd
}

func reportForecastCmd() *cobra.Command {
	var (
		category string
		months   int
		horizon  int
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project category spending",
		Long: `Fit a linear trend over a category's recent monthly totals and
project it forward. Too little history reports insufficient data
rather than a number.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := fetchAllTransactions(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			now := time.Now()
			monthly := make([]analytics.CategoryBreakdown, 0, months)
			for i := months - 1; i >= 0; i-- {
				monthStart := dates.AddMonths(dates.StartOfMonth(now), -i)
				monthEnd := dates.AddMonths(monthStart, 1).Add(-time.Nanosecond)
				monthly = append(monthly, analytics.CategoryTotals(transactions,
					model.TypeExpense, monthStart, monthEnd, categories))
			}

			cfg := analytics.DefaultConfig()
			series := analytics.MonthlyCategorySeries(monthly, category)
			forecast, ok := analytics.ForecastGrowth(series, horizon, cfg)
			if !ok {
				fmt.Println(cli.FormatInfo(fmt.Sprintf(
					"Not enough history for %q: need %d months with %d non-zero.",
					categories.NameFor(category), cfg.ForecastMinMonths, cfg.ForecastMinNonZero)))
				return nil
			}

			direction := "growing"
			if forecast.Slope < 0 {
				direction = "shrinking"
			}
			fmt.Println(cli.FormatTitle(fmt.Sprintf("Forecast for %s", categories.NameFor(category))))
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Spending is %s %.1f%% per month.",
				direction, abs(forecast.GrowthRatePercent))))
			fmt.Println(cli.FormatInfo(fmt.Sprintf("Projected monthly total in %d months: %s",
				horizon, forecast.Projected)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "expense category id (required)")
	cmd.Flags().IntVarP(&months, "months", "m", 6, "months of history to fit")
	cmd.Flags().IntVar(&horizon, "horizon", 3, "months to project forward")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/analytics"
	"github.com/tallyfin/tally/internal/cli"
)

func insightsCmd() *cobra.Command {
	var (
		recurringOnly bool
		unusualOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending insights",
		Long: `Run the insight detectors over the transaction history: repeating
expenses and outliers far above the recent average.`,
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

			cfg := analytics.DefaultConfig()
			var detectors []analytics.Detector
			if !unusualOnly {
				detectors = append(detectors, analytics.RecurringDetector(cfg))
			}
			if !recurringOnly {
				detectors = append(detectors, analytics.UnusualDetector(cfg))
			}

			insights := analytics.CollectInsights(transactions, time.Now(), detectors...)
			if len(insights) == 0 {
				fmt.Println(cli.FormatInfo("Nothing notable in your recent spending."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Insights"))
			for _, insight := range insights {
				switch insight.Kind {
				case analytics.InsightUnusual:
					fmt.Println(cli.FormatWarning(insight.Title))
				default:
					fmt.Println(cli.FormatInfo(insight.Title))
				}
				fmt.Println(cli.SubtleStyle.Render("  " + insight.Detail))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recurringOnly, "recurring", false, "only recurring expenses")
	cmd.Flags().BoolVar(&unusualOnly, "unusual", false, "only unusual expenses")

	return cmd
}

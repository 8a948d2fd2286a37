package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/csvio"
)

func exportCmd() *cobra.Command {
	var (
		output string
		period string
		start  string
		end    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Long: `Write transactions to a CSV file in the same column layout the
import command reads, so an export can be re-imported losslessly.`,
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

			if output == "-" {
				return csvio.Export(os.Stdout, transactions)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := csvio.Export(f, transactions); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close output file: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s",
				len(transactions), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "transactions.csv", "output file path, or - for stdout")
	cmd.Flags().StringVarP(&period, "period", "p", "all", "period (day, week, month, quarter, year, all)")
	cmd.Flags().StringVar(&start, "start", "", "explicit range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "explicit range end (YYYY-MM-DD)")

	return cmd
}

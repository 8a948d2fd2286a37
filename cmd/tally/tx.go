package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction", "transactions"},
		Short:   "Manage transactions",
		Long:    `Add, list, update, and delete income and expense records.`,
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txUpdateCmd())
	cmd.AddCommand(txDeleteCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	var in model.TransactionInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a new income or expense transaction.

The amount accepts both decimal styles ("1,234.56" and "1.234,56") and
ignores currency symbols. The date defaults to today.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if in.Date == "" {
				in.Date = time.Now().Format("2006-01-02")
			}

			txn, result := model.NewTransaction(in, time.Now())
			if !result.Valid() {
				return result.Err()
			}

			if err := store.SaveTransaction(ctx, &txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s for %q (%s)",
				txn.Type, txn.Amount, txn.Description, categories.NameFor(txn.CategoryID))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Type, "type", "t", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "description (required)")
	cmd.Flags().StringVarP(&in.Amount, "amount", "a", "", "amount (required)")
	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", "", "category id (required)")
	cmd.Flags().StringVar(&in.Date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "free-form notes")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func txListCmd() *cobra.Command {
	var (
		period   string
		start    string
		end      string
		txType   string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions, newest first, optionally filtered by period, type, or category.`,
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

			filter := service.TransactionFilter{
				StartDate: &rangeStart,
				EndDate:   &rangeEnd,
				Limit:     limit,
			}
			if txType != "" {
				filter.Type = model.ParseTransactionType(txType)
			}
			filter.CategoryID = category

			transactions, err := store.ListTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.FormatInfo("No transactions found. Use 'tally tx add' to record one."))
				return nil
			}

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(transactions))
			for _, txn := range transactions {
				amount := txn.Amount.String()
				if txn.Type == model.TypeExpense {
					amount = "-" + amount
				}
				rows = append(rows, []string{
					txn.Date.Format("2006-01-02"),
					string(txn.Type),
					txn.Description,
					amount,
					categories.NameFor(txn.CategoryID),
					txn.ID,
				})
			}

			fmt.Println(cli.FormatTitle("Transactions"))
			fmt.Println(cli.RenderTable([]string{"Date", "Type", "Description", "Amount", "Category", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "month", "period (day, week, month, quarter, year, all)")
	cmd.Flags().StringVar(&start, "start", "", "explicit range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "explicit range end (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&txType, "type", "t", "", "filter by type (income, expense)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category id")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum rows (0 = no limit)")

	return cmd
}

func txUpdateCmd() *cobra.Command {
	var in model.TransactionInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Long: `Replace a transaction's fields. Flags that are not set keep their
current value. The record keeps its id and creation time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.GetTransactionByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load transaction: %w", err)
			}

			merged := model.TransactionInput{
				Type:        string(txn.Type),
				Description: txn.Description,
				Amount:      txn.Amount.String(),
				CategoryID:  txn.CategoryID,
				Date:        txn.Date.Format("2006-01-02"),
				Notes:       txn.Notes,
			}
			if cmd.Flags().Changed("type") {
				merged.Type = in.Type
			}
			if cmd.Flags().Changed("description") {
				merged.Description = in.Description
			}
			if cmd.Flags().Changed("amount") {
				merged.Amount = in.Amount
			}
			if cmd.Flags().Changed("category") {
				merged.CategoryID = in.CategoryID
			}
			if cmd.Flags().Changed("date") {
				merged.Date = in.Date
			}
			if cmd.Flags().Changed("notes") {
				merged.Notes = in.Notes
			}

			if result := txn.ApplyUpdate(merged, time.Now()); !result.Valid() {
				return result.Err()
			}

			if err := store.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %s", txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Type, "type", "t", "", "transaction type (income, expense)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&in.Amount, "amount", "a", "", "amount")
	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", "", "category id")
	cmd.Flags().StringVar(&in.Date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "free-form notes")

	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", args[0])))
			return nil
		},
	}
}

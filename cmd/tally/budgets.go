package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/analytics"
	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Manage budgets",
		Long:    `Create spending budgets and track how much of each one is spent.`,
	}

	cmd.AddCommand(budgetAddCmd())
	cmd.AddCommand(budgetListCmd())
	cmd.AddCommand(budgetProgressCmd())
	cmd.AddCommand(budgetDeleteCmd())

	return cmd
}

func budgetAddCmd() *cobra.Command {
	var in model.BudgetInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget",
		Long: `Create a spending budget over a date range. Scope it to one expense
category with --category, or leave it at "all" to cover everything.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, result := model.NewBudget(in, time.Now())
			if !result.Valid() {
				return result.Err()
			}

			if err := store.SaveBudget(ctx, &budget); err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created budget %q of %s (%s)",
				budget.Name, budget.Amount, budget.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "budget name (required)")
	cmd.Flags().StringVarP(&in.Amount, "amount", "a", "", "budget amount (required)")
	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", model.BudgetAllCategories, "expense category to scope to")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "start date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&in.EndDate, "end", "", "end date (YYYY-MM-DD, required)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func budgetListCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.ListBudgets(ctx, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.FormatInfo("No budgets found. Use 'tally budget add' to create one."))
				return nil
			}

			categories, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(budgets))
			for _, b := range budgets {
				scope := "all categories"
				if b.CategoryID != model.BudgetAllCategories {
					scope = categories.NameFor(b.CategoryID)
				}
				rows = append(rows, []string{
					b.Name,
					b.Amount.String(),
					scope,
					b.StartDate.Format("2006-01-02"),
					b.EndDate.Format("2006-01-02"),
					b.ID,
				})
			}

			fmt.Println(cli.FormatTitle("Budgets"))
			fmt.Println(cli.RenderTable([]string{"Name", "Amount", "Scope", "Start", "End", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include inactive budgets")

	return cmd
}

func budgetProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [id]",
		Short: "Show budget progress",
		Long: `Show how much of each budget is spent. With an id, only that budget
is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var budgets []model.Budget
			if len(args) == 1 {
				budget, err := store.GetBudgetByID(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load budget: %w", err)
				}
				budgets = []model.Budget{*budget}
			} else {
				budgets, err = store.ListBudgets(ctx, false)
				if err != nil {
					return fmt.Errorf("failed to list budgets: %w", err)
				}
			}

			if len(budgets) == 0 {
				fmt.Println(cli.FormatInfo("No budgets found. Use 'tally budget add' to create one."))
				return nil
			}

			transactions, err := fetchAllTransactions(ctx, store)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			cfg := analytics.DefaultConfig()
			fmt.Println(cli.FormatTitle("Budget progress"))
			for _, b := range budgets {
				report := analytics.BudgetProgress(b, transactions, cfg)
				line := fmt.Sprintf("%s: %s of %s spent (%.1f%%), %s remaining",
					b.Name, report.Spent, b.Amount, report.Percentage, report.Remaining)
				switch report.Status {
				case analytics.BudgetExceeded:
					fmt.Println(cli.FormatError(line))
				case analytics.BudgetWarning:
					fmt.Println(cli.FormatWarning(line))
				default:
					fmt.Println(cli.FormatSuccess(line))
				}
			}
			return nil
		},
	}
}

func budgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudget(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted budget %s", args[0])))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/analytics"
	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/model"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage savings goals",
		Long:    `Create savings goals, contribute toward them, and track progress.`,
	}

	cmd.AddCommand(goalAddCmd())
	cmd.AddCommand(goalListCmd())
	cmd.AddCommand(goalContributeCmd())
	cmd.AddCommand(goalProgressCmd())
	cmd.AddCommand(goalDeleteCmd())

	return cmd
}

func goalAddCmd() *cobra.Command {
	var in model.GoalInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goal, result := model.NewGoal(in, time.Now())
			if !result.Valid() {
				return result.Err()
			}

			if err := store.SaveGoal(ctx, &goal); err != nil {
				return fmt.Errorf("failed to save goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal %q with target %s (%s)",
				goal.Name, goal.TargetAmount, goal.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "goal name (required)")
	cmd.Flags().StringVarP(&in.TargetAmount, "target", "t", "", "target amount (required)")
	cmd.Flags().StringVar(&in.CurrentAmount, "current", "", "amount already saved")
	cmd.Flags().StringVar(&in.Deadline, "deadline", "", "optional deadline (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "description")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "display icon")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func goalListCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goals, err := store.ListGoals(ctx, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No goals found. Use 'tally goal add' to create one."))
				return nil
			}

			rows := make([][]string, 0, len(goals))
			for _, g := range goals {
				deadline := "-"
				if g.Deadline != nil {
					deadline = g.Deadline.Format("2006-01-02")
				}
				rows = append(rows, []string{
					g.Name,
					g.CurrentAmount.String(),
					g.TargetAmount.String(),
					deadline,
					g.ID,
				})
			}

			fmt.Println(cli.FormatTitle("Savings goals"))
			fmt.Println(cli.RenderTable([]string{"Name", "Saved", "Target", "Deadline", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include inactive goals")

	return cmd
}

func goalContributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Add money to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			amount, err := model.ParseMoney(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			goal, err := store.GetGoalByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load goal: %w", err)
			}

			if err := goal.Contribute(amount, time.Now()); err != nil {
				return err
			}

			if err := store.SaveGoal(ctx, goal); err != nil {
				return fmt.Errorf("failed to save goal: %w", err)
			}

			msg := fmt.Sprintf("Added %s to %q (%s of %s saved)",
				amount, goal.Name, goal.CurrentAmount, goal.TargetAmount)
			if goal.Completed() {
				msg += " 🎉 goal reached!"
			}
			fmt.Println(cli.FormatSuccess(msg))
			return nil
		},
	}
}

func goalProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [id]",
		Short: "Show goal progress",
		Long: `Show progress toward each savings goal, with the daily amount needed
to reach goals that carry a deadline. With an id, only that goal is
shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var goals []model.Goal
			if len(args) == 1 {
				goal, err := store.GetGoalByID(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load goal: %w", err)
				}
				goals = []model.Goal{*goal}
			} else {
				goals, err = store.ListGoals(ctx, false)
				if err != nil {
					return fmt.Errorf("failed to list goals: %w", err)
				}
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No goals found. Use 'tally goal add' to create one."))
				return nil
			}

			cfg := analytics.DefaultConfig()
			now := time.Now()
			fmt.Println(cli.FormatTitle("Goal progress"))
			for _, g := range goals {
				report := analytics.GoalProgress(g, now, cfg)
				line := fmt.Sprintf("%s: %s of %s (%.1f%%)",
					g.Name, g.CurrentAmount, g.TargetAmount, report.Percentage)
				if report.DaysRemaining != nil && report.DailyNeeded != nil {
					line += fmt.Sprintf(", %d days left, %s/day needed",
						*report.DaysRemaining, *report.DailyNeeded)
				}
				switch report.Status {
				case analytics.GoalCompleted:
					fmt.Println(cli.FormatSuccess(line + " 🎉"))
				case analytics.GoalOverdue:
					fmt.Println(cli.FormatError(line + " (deadline passed)"))
				case analytics.GoalAtRisk:
					fmt.Println(cli.FormatWarning(line + " (at risk)"))
				default:
					fmt.Println(cli.FormatInfo(line))
				}
			}
			return nil
		},
	}
}

func goalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteGoal(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %s", args[0])))
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyfin/tally/internal/cli"
	"github.com/tallyfin/tally/internal/model"
	"github.com/tallyfin/tally/internal/sanitize"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List and add the categories transactions are filed under.`,
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			rows := make([][]string, 0, len(categories))
			for _, cat := range categories {
				rows = append(rows, []string{cat.Icon, cat.ID, cat.Name, string(cat.Type)})
			}

			fmt.Println(cli.FormatTitle("Categories"))
			fmt.Println(cli.RenderTable([]string{"", "ID", "Name", "Type"}, rows))
			return nil
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	var (
		icon      string
		catType   string
		sortOrder int
	)

	cmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add a category",
		Long: `Add a custom category. The id is normalized to lowercase letters,
digits, hyphens, and underscores.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id := sanitize.Identifier(args[0])
			if id == "" {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			name := sanitize.Text(args[1], 100)
			if name == "" {
				return fmt.Errorf("invalid category name %q", args[1])
			}

			existing, err := loadCategorySet(ctx, store)
			if err != nil {
				return err
			}
			if _, ok := existing.Lookup(id); ok {
				return fmt.Errorf("category %q already exists", id)
			}

			typ := model.CategoryTypeExpense
			if catType == "income" {
				typ = model.CategoryTypeIncome
			}

			category := model.Category{
				ID:        id,
				Name:      name,
				Icon:      sanitize.Text(icon, 30),
				Type:      typ,
				SortOrder: sortOrder,
				IsActive:  true,
			}

			if err := store.SaveCategory(ctx, &category); err != nil {
				return fmt.Errorf("failed to save category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s category %q (%s)",
				category.Type, category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", "", "display icon")
	cmd.Flags().StringVarP(&catType, "type", "t", "expense", "category type (income, expense)")
	cmd.Flags().IntVar(&sortOrder, "order", 100, "sort order within the type")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	storefront "github.com/kailas-cloud/storefront/pkg/sdk"
)

func newCatalogCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "catalog <products|services|suppliers>",
		Short: "List a catalog collection",
		Long: `Lists a collection of the catalog. Without --category the complete
collection is listed, always in the fallback language.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.client.Catalog(cmd.Context(), storefront.Entity(args[0]), storefront.CatalogOptions{
				Category: category,
				Lang:     a.lang,
			})
			if err != nil {
				return fmt.Errorf("catalog failed: %w", err)
			}
			return a.printCollection(cmd, col)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		entity   string
		category string
		minPrice float64
		maxPrice float64
	)
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search a catalog collection by name",
		Long: `Filters a collection by a case-insensitive substring of the item name or
supplier business name. Price bounds apply to products only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			}
			opts := storefront.SearchOptions{Category: category, Lang: a.lang}
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = &maxPrice
			}
			col, err := a.client.Search(cmd.Context(), text, storefront.Entity(entity), opts)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return a.printCollection(cmd, col)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&entity, "type", "t", string(storefront.Products), "entity to search")
	f.StringVarP(&category, "category", "c", "", "restrict to a category")
	f.Float64Var(&minPrice, "min-price", 0, "minimum product price")
	f.Float64Var(&maxPrice, "max-price", 0, "maximum product price")
	return cmd
}

func newItemCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Show a product or service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.client.Item(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd, it)
			}
			printItem(cmd, it)
			if it.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", it.Description)
			}
			return nil
		},
	}
}

func newSupplierCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "supplier <id>",
		Short: "Show a supplier profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.client.Supplier(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd, s)
			}
			printSupplier(cmd, s)
			return nil
		},
	}
}

func (a *app) printCollection(cmd *cobra.Command, col storefront.Collection) error {
	if a.jsonOut {
		return printJSON(cmd, col)
	}
	if col.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}
	for _, it := range col.Items {
		printItem(cmd, it)
	}
	for _, s := range col.Suppliers {
		printSupplier(cmd, s)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", col.Len(), col.Entity)
	return nil
}

func printItem(cmd *cobra.Command, it storefront.Item) {
	price := "-"
	if it.Price != nil {
		price = strconv.FormatFloat(*it.Price, 'f', 2, 64)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-30s %10s  %.1f (%d)\n", it.ID, it.Name, price, it.AvgRating, it.RatingsCount)
}

func printSupplier(cmd *cobra.Command, s storefront.Supplier) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-30s %-12s %.1f (%d)\n", s.ID, s.BusinessName, s.City, s.AvgRating, s.RatingsCount)
}

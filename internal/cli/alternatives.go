package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	storefront "github.com/kailas-cloud/storefront/pkg/sdk"
)

func newAlternativesCmd(a *app) *cobra.Command {
	var q storefront.AlternativesQuery
	cmd := &cobra.Command{
		Use:   "alternatives",
		Short: "Rank alternatives to a text or an item",
		Long: `Ranks products and services by how many words of the reference they share.
Give exactly one of --text and --item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.Lang = a.lang
			alts, err := a.client.Alternatives(cmd.Context(), q)
			if errors.Is(err, storefront.ErrInvalidQuery) {
				return errors.New("exactly one of --text and --item is required")
			}
			if err != nil {
				return fmt.Errorf("alternatives failed: %w", err)
			}
			if a.jsonOut {
				return printJSON(cmd, alts)
			}
			if len(alts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
				return nil
			}
			for _, alt := range alts {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] score %d\n", alt.Rank, alt.Score)
				printItem(cmd, alt.Item)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Text, "text", "", "free-text reference")
	cmd.Flags().StringVar(&q.ItemID, "item", "", "reference item id")
	cmd.MarkFlagsMutuallyExclusive("text", "item")
	return cmd
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	storefront "github.com/kailas-cloud/storefront/pkg/sdk"
)

func newActionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "action <name>",
		Short:     "Send a demo storefront action",
		Long:      "Sends a storefront action. Actions are acknowledged but never applied.\nKnown actions: " + strings.Join(storefront.Actions(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: storefront.Actions(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ack, err := a.client.Action(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(cmd, ack)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s acknowledged (reference %s, not applied)\n", ack.Action, ack.Reference)
			return nil
		},
	}
}

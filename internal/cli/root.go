// Package cli implements storefrontctl, a command-line browser for the storefront catalog.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	storefront "github.com/kailas-cloud/storefront/pkg/sdk"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	dataDir   string
	lang      string
	jsonOut   bool
	cacheAddr string

	client *storefront.Client
}

// NewRootCmd builds the storefrontctl command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Browse the storefront catalog",
		Long:          "Lists, searches and ranks products, services and suppliers of the storefront catalog.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dataDir, "data-dir", "", "catalog directory (default: embedded catalog)")
	pf.StringVar(&a.lang, "lang", "en", "display language (en, ar)")
	pf.BoolVar(&a.jsonOut, "json", false, "output as JSON")
	pf.StringVar(&a.cacheAddr, "valkey", "", "cache catalog files in this Valkey instance")

	root.AddCommand(
		newCatalogCmd(a),
		newSearchCmd(a),
		newAlternativesCmd(a),
		newItemCmd(a),
		newSupplierCmd(a),
		newActionCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []storefront.Option{storefront.WithLanguage(a.lang)}
	if a.dataDir != "" {
		opts = append(opts, storefront.WithDataDir(a.dataDir))
	}
	if a.cacheAddr != "" {
		opts = append(opts, storefront.WithValkey(a.cacheAddr, ""), storefront.WithStandalone())
	}
	c, err := storefront.New(ctx, opts...)
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

func (a *app) close() {
	if a.client != nil {
		a.client.Close()
		a.client = nil
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

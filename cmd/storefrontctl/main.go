package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kailas-cloud/storefront/internal/cli"
	"github.com/kailas-cloud/storefront/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(version.Version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

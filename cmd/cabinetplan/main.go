// Cabinetplan: kitchen layout builder and budget optimizer
//
// Builds cabinet layouts from fixed templates, prices them against door and
// worktop finishes, steers them toward a budget and writes plans, meshes,
// BOMs and cutlists for each generated variant.
//
// Build:
//   go build -o cabinetplan ./cmd/cabinetplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o cabinetplan.exe ./cmd/cabinetplan
//   GOOS=darwin  GOARCH=arm64 go build -o cabinetplan-darwin ./cmd/cabinetplan

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CabinetPlan/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

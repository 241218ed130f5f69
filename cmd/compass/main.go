package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/compass/internal/cli"
	"github.com/example/compass/internal/ctxutil"
	"github.com/example/compass/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "compass",
		Short:   "compass - status rollup for strategic plans",
		Version: version.String(),
		Long: `compass tracks strategic plans as focus areas, objectives and activities.
Setting an activity's status rolls it up to its objective and focus area:
any off_track child makes the parent off_track, then at_risk, then not_started.`,
		PersistentPreRunE: cli.Bootstrap,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PlanCmd())

	// Hierarchy levels
	rootCmd.AddCommand(cli.FocusCmd())
	rootCmd.AddCommand(cli.ObjectiveCmd())
	rootCmd.AddCommand(cli.ActivityCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	ctx := ctxutil.WithActorID(context.Background(), ctxutil.ResolveActor(nil))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

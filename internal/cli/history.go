package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/compass/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [node-id]",
		Short: "Show recorded status changes for a focus area, objective or activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return wire.HistoryAdapter().Show(cmd.Context(), idArg(args), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of events (0 for all)")
	return cmd
}

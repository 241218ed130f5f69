package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/compass/internal/adapters/cli"
	"github.com/example/compass/internal/wire"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage strategic plans",
	Long:  "Create, list, inspect and delete strategic plans. Plans hold focus areas and carry no rolled-up status.",
}

var planCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new strategic plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		return wire.PlanAdapter().Create(cmd.Context(), args[0], description)
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List strategic plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return wire.PlanAdapter().List(cmd.Context(), all)
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [plan-id]",
	Short: "Show plan details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.PlanAdapter().Show(cmd.Context(), idArg(args))
	},
}

var planTreeCmd = &cobra.Command{
	Use:   "tree [plan-id]",
	Short: "Show the plan hierarchy with status markers",
	Long: `Show the plan's focus areas, objectives and activities ordered by position.

Examples:
  compass plan tree PLAN-001
  compass plan tree PLAN-001 --format yaml > plan.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		all, _ := cmd.Flags().GetBool("all")
		return wire.PlanAdapter().Tree(cmd.Context(), idArg(args), format, all)
	},
}

var planRenameCmd = &cobra.Command{
	Use:   "rename [plan-id]",
	Short: "Update a plan's title and/or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		return wire.PlanAdapter().Update(cmd.Context(), idArg(args), title, description)
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete [plan-id]",
	Short: "Soft-delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.PlanAdapter().Delete(cmd.Context(), idArg(args))
	},
}

var planRestoreCmd = &cobra.Command{
	Use:   "restore [plan-id]",
	Short: "Restore a soft-deleted plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.PlanAdapter().Restore(cmd.Context(), idArg(args))
	},
}

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	planCreateCmd.Flags().StringP("description", "d", "", "Plan description")
	planListCmd.Flags().Bool("all", false, "Include deleted plans")
	planTreeCmd.Flags().String("format", cliadapter.FormatText, "Output format: text or yaml")
	planTreeCmd.Flags().Bool("all", false, "Include deleted nodes")
	planRenameCmd.Flags().String("title", "", "New title")
	planRenameCmd.Flags().StringP("description", "d", "", "New description")

	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planTreeCmd)
	planCmd.AddCommand(planRenameCmd)
	planCmd.AddCommand(planDeleteCmd)
	planCmd.AddCommand(planRestoreCmd)

	return planCmd
}

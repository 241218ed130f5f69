package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/compass/internal/adapters/cli"
	corerollup "github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/wire"
)

// nodeCmdDef describes one hierarchy level's command group.
type nodeCmdDef struct {
	level      corerollup.Level
	use        string
	short      string
	parentFlag string // flag naming the parent ID
	parentDesc string
	example    string
}

// newNodeCmd builds the command group shared by focus areas, objectives and activities.
func newNodeCmd(def nodeCmdDef) *cobra.Command {
	noun := cliadapter.Noun(def.level)

	cmd := &cobra.Command{
		Use:     def.use,
		Short:   def.short,
		Example: def.example,
	}

	createCmd := &cobra.Command{
		Use:   "create [title]",
		Short: fmt.Sprintf("Create a new %s (starts not_started)", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, _ := cmd.Flags().GetString(def.parentFlag)
			description, _ := cmd.Flags().GetString("description")
			if parentID == "" {
				return fmt.Errorf("--%s is required", def.parentFlag)
			}
			return wire.NodeAdapter().Create(cmd.Context(), def.level, parentID, args[0], description)
		},
	}
	createCmd.Flags().String(def.parentFlag, "", def.parentDesc)
	createCmd.Flags().StringP("description", "d", "", "Description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s records ordered by position", noun),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentID, _ := cmd.Flags().GetString(def.parentFlag)
			status, _ := cmd.Flags().GetString("status")
			all, _ := cmd.Flags().GetBool("all")
			return wire.NodeAdapter().List(cmd.Context(), def.level, parentID, status, all)
		},
	}
	listCmd.Flags().String(def.parentFlag, "", def.parentDesc)
	listCmd.Flags().String("status", "", "Filter by status")
	listCmd.Flags().Bool("all", false, "Include deleted records")

	showCmd := &cobra.Command{
		Use:   fmt.Sprintf("show [%s-id]", def.use),
		Short: fmt.Sprintf("Show %s details", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NodeAdapter().Show(cmd.Context(), def.level, idArg(args))
		},
	}

	statusCmd := &cobra.Command{
		Use:   fmt.Sprintf("status [%s-id] [on_track|at_risk|off_track|not_started]", def.use),
		Short: fmt.Sprintf("Set the %s status and cascade it upward", noun),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NodeAdapter().SetStatus(cmd.Context(), def.level, idArg(args), args[1])
		},
	}

	renameCmd := &cobra.Command{
		Use:   fmt.Sprintf("rename [%s-id]", def.use),
		Short: fmt.Sprintf("Update the %s title and/or description", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			return wire.NodeAdapter().Rename(cmd.Context(), def.level, idArg(args), title, description)
		},
	}
	renameCmd.Flags().String("title", "", "New title")
	renameCmd.Flags().StringP("description", "d", "", "New description")

	moveCmd := &cobra.Command{
		Use:   fmt.Sprintf("move [%s-id] [position]", def.use),
		Short: fmt.Sprintf("Set the %s position among its siblings", noun),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %q", args[1])
			}
			return wire.NodeAdapter().Move(cmd.Context(), def.level, idArg(args), position)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   fmt.Sprintf("delete [%s-id]", def.use),
		Short: fmt.Sprintf("Soft-delete a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NodeAdapter().Delete(cmd.Context(), def.level, idArg(args))
		},
	}

	restoreCmd := &cobra.Command{
		Use:   fmt.Sprintf("restore [%s-id]", def.use),
		Short: fmt.Sprintf("Restore a soft-deleted %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.NodeAdapter().Restore(cmd.Context(), def.level, idArg(args))
		},
	}

	cmd.AddCommand(createCmd, listCmd, showCmd, statusCmd, renameCmd, moveCmd, deleteCmd, restoreCmd)

	// Activities are leaves; there is nothing to roll up into them.
	if !def.level.IsLeaf() {
		cmd.AddCommand(&cobra.Command{
			Use:   fmt.Sprintf("recompute [%s-id]", def.use),
			Short: fmt.Sprintf("Roll the %s status up from its live children", noun),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return wire.NodeAdapter().Recompute(cmd.Context(), def.level, idArg(args))
			},
		})
	}

	return cmd
}

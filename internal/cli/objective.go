package cli

import (
	"github.com/spf13/cobra"

	corerollup "github.com/example/compass/internal/core/rollup"
)

// ObjectiveCmd returns the objective command
func ObjectiveCmd() *cobra.Command {
	return newNodeCmd(nodeCmdDef{
		level:      corerollup.LevelObjective,
		use:        "objective",
		short:      "Manage objectives (status rolls up from activities)",
		parentFlag: "focus",
		parentDesc: "Focus area ID (FA-xxx)",
		example: `  compass objective create "Tutor network" --focus FA-001
  compass objective recompute OBJ-001`,
	})
}

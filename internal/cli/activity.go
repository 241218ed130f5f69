package cli

import (
	"github.com/spf13/cobra"

	corerollup "github.com/example/compass/internal/core/rollup"
)

// ActivityCmd returns the activity command
func ActivityCmd() *cobra.Command {
	return newNodeCmd(nodeCmdDef{
		level:      corerollup.LevelActivity,
		use:        "activity",
		short:      "Manage activities (status changes cascade to objective and focus area)",
		parentFlag: "objective",
		parentDesc: "Objective ID (OBJ-xxx)",
		example: `  compass activity create "Recruit tutors" --objective OBJ-001
  compass activity status ACT-002 off_track`,
	})
}

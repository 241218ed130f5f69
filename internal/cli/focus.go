package cli

import (
	"github.com/spf13/cobra"

	corerollup "github.com/example/compass/internal/core/rollup"
)

// FocusCmd returns the focus area command
func FocusCmd() *cobra.Command {
	cmd := newNodeCmd(nodeCmdDef{
		level:      corerollup.LevelFocusArea,
		use:        "focus",
		short:      "Manage focus areas (status rolls up from objectives)",
		parentFlag: "plan",
		parentDesc: "Plan ID (PLAN-xxx)",
		example: `  compass focus create "Early reading" --plan PLAN-001
  compass focus status FA-001 at_risk
  compass focus recompute FA-001`,
	})
	cmd.Aliases = []string{"focus-area"}
	return cmd
}

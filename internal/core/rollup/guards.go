package rollup

import (
	"fmt"

	"github.com/example/compass/internal/core/status"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// UpdateStatusContext provides context for direct status update guards.
type UpdateStatusContext struct {
	Node      NodeRef
	NewStatus string
	IsDeleted bool
}

// CanUpdateStatus evaluates whether a node's status may be set directly.
// Rules:
// - Level must be known
// - Status must be one of the four known values
// - Node must not be soft-deleted
//
// There are no transition restrictions: any status may follow any other.
func CanUpdateStatus(ctx UpdateStatusContext) GuardResult {
	if !ctx.Node.Level.IsValid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown level %q for %s", ctx.Node.Level, ctx.Node.ID),
		}
	}

	if !status.Status(ctx.NewStatus).IsValid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid status %q for %s (expected one of on_track, at_risk, off_track, not_started)", ctx.NewStatus, ctx.Node),
		}
	}

	if ctx.IsDeleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot update status of deleted %s. Restore it first", ctx.Node),
		}
	}

	return GuardResult{Allowed: true}
}

// PropagateContext provides context for propagation guards.
type PropagateContext struct {
	Node NodeRef
}

// CanPropagate evaluates whether a node can have its status derived from children.
// Rules:
// - Node must not be a leaf (activities have no children to roll up)
func CanPropagate(ctx PropagateContext) GuardResult {
	if !ctx.Node.Level.IsValid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown level %q for %s", ctx.Node.Level, ctx.Node.ID),
		}
	}

	if ctx.Node.Level.IsLeaf() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot roll up %s: activities have no children", ctx.Node),
		}
	}

	return GuardResult{Allowed: true}
}

// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives application services.
package primary

import (
	"context"
	"fmt"
)

// RollupService defines the primary port for status rollup.
//
// A cascade is a sequence of independent saves. If a save fails the cascade stops:
// nodes below the failure keep their new status, ancestors above it are stale
// until PropagateUp is run again on the failed node.
type RollupService interface {
	// ComputeStatus derives a parent status from child statuses without touching persistence.
	ComputeStatus(children []string) (string, error)

	// UpdateStatus sets a node's status directly, then cascades to its ancestors.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*CascadeResult, error)

	// PropagateUp recomputes a node's status from its live children, then cascades upward.
	PropagateUp(ctx context.Context, level, nodeID string) (*CascadeResult, error)
}

// UpdateStatusRequest contains parameters for a direct status update.
type UpdateStatusRequest struct {
	Level  string // activity, objective, focus_area
	NodeID string
	Status string
}

// CascadeStep describes one node written during a cascade.
type CascadeStep struct {
	Level     string
	NodeID    string
	OldStatus string
	NewStatus string
	Cause     string // direct, rollup
	Changed   bool
}

// CascadeResult lists every node written by a cascade, starting at the entry node.
type CascadeResult struct {
	Steps []CascadeStep
}

// Final returns the last step of the cascade, or nil for an empty result.
func (r *CascadeResult) Final() *CascadeStep {
	if r == nil || len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

// CascadeError reports where a cascade halted.
// Completed holds the steps written before the failure. When RolledBack is set those
// writes were undone with the surrounding transaction and the tree is unchanged.
type CascadeError struct {
	Level      string
	NodeID     string
	Completed  []CascadeStep
	RolledBack bool
	Err        error
}

func (e *CascadeError) Error() string {
	if e.RolledBack {
		return fmt.Sprintf("cascade halted at %s %s (rolled back, no changes saved): %v",
			e.Level, e.NodeID, e.Err)
	}
	return fmt.Sprintf("cascade halted at %s %s (status tree may be inconsistent above this node; re-run recompute): %v",
		e.Level, e.NodeID, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

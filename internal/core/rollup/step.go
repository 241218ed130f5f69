package rollup

import (
	"fmt"

	"github.com/example/compass/internal/core/status"
)

// Cause records why a node's status was written.
type Cause string

const (
	CauseDirect Cause = "direct" // set by a person
	CauseRollup Cause = "rollup" // derived from children
)

// StepResult is the outcome of recomputing one node.
type StepResult struct {
	Node     NodeRef
	Previous status.Status
	New      status.Status
	Cause    Cause
}

// Changed reports whether the step moved the node to a different status.
func (r StepResult) Changed() bool {
	return r.Previous != r.New
}

// EvaluateStep derives the status a parent should hold from its live children.
// current is the stored value and may be empty for rows that never held one.
func EvaluateStep(node NodeRef, current string, children []string) (StepResult, error) {
	parsed, err := status.ParseAll(children)
	if err != nil {
		return StepResult{}, fmt.Errorf("%s: %w", node, err)
	}

	derived, err := status.Rollup(parsed)
	if err != nil {
		return StepResult{}, fmt.Errorf("%s: %w", node, err)
	}

	return StepResult{
		Node:     node,
		Previous: status.Status(current),
		New:      derived,
		Cause:    CauseRollup,
	}, nil
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	corerollup "github.com/example/compass/internal/core/rollup"
	corestatus "github.com/example/compass/internal/core/status"
	"github.com/example/compass/internal/ports/primary"
	"github.com/example/compass/internal/ports/secondary"
)

// RollupServiceImpl implements the RollupService interface.
// It walks the hierarchy through the HierarchyStore and owns no state of its own.
type RollupServiceImpl struct {
	store     secondary.HierarchyStore
	logWriter secondary.StatusLogWriter
	logger    *log.Logger
}

// NewRollupService creates a new RollupService with injected dependencies.
// logWriter and logger may be nil.
func NewRollupService(
	store secondary.HierarchyStore,
	logWriter secondary.StatusLogWriter,
	logger *log.Logger,
) *RollupServiceImpl {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RollupServiceImpl{
		store:     store,
		logWriter: logWriter,
		logger:    logger,
	}
}

// ComputeStatus derives a parent status from child statuses.
func (s *RollupServiceImpl) ComputeStatus(children []string) (string, error) {
	parsed, err := corestatus.ParseAll(children)
	if err != nil {
		return "", err
	}
	result, err := corestatus.Rollup(parsed)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// UpdateStatus sets a node's status and cascades to its ancestors.
func (s *RollupServiceImpl) UpdateStatus(ctx context.Context, req primary.UpdateStatusRequest) (*primary.CascadeResult, error) {
	newStatus, err := corestatus.Parse(req.Status)
	if err != nil {
		return nil, err
	}

	node := corerollup.Ref(corerollup.Level(req.Level), req.NodeID)
	if !node.Level.IsValid() {
		return nil, fmt.Errorf("unknown level %q", req.Level)
	}

	current, deleted, err := s.store.CurrentStatus(ctx, node)
	if err != nil {
		return nil, err
	}

	guardCtx := corerollup.UpdateStatusContext{
		Node:      node,
		NewStatus: string(newStatus),
		IsDeleted: deleted,
	}
	if result := corerollup.CanUpdateStatus(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	result := &primary.CascadeResult{}
	step := corerollup.StepResult{
		Node:     node,
		Previous: corestatus.Status(current),
		New:      newStatus,
		Cause:    corerollup.CauseDirect,
	}
	if err := s.store.SaveStatus(ctx, node, string(newStatus)); err != nil {
		return result, s.halt(node, result, err)
	}
	s.record(ctx, step, result)

	parent, ok, err := s.store.ResolveParent(ctx, node)
	if err != nil {
		return result, s.halt(node, result, err)
	}
	if !ok {
		return result, nil
	}

	return result, s.cascade(ctx, parent, result)
}

// PropagateUp recomputes a node from its live children and cascades upward.
func (s *RollupServiceImpl) PropagateUp(ctx context.Context, level, nodeID string) (*primary.CascadeResult, error) {
	node := corerollup.Ref(corerollup.Level(level), nodeID)
	if result := corerollup.CanPropagate(corerollup.PropagateContext{Node: node}); !result.Allowed {
		return nil, result.Error()
	}

	result := &primary.CascadeResult{}
	return result, s.cascade(ctx, node, result)
}

// cascade recomputes node and each ancestor in turn until a node has no parent.
func (s *RollupServiceImpl) cascade(ctx context.Context, node corerollup.NodeRef, result *primary.CascadeResult) error {
	for hop := 0; ; hop++ {
		if hop > corerollup.MaxCascadeHops {
			return s.halt(node, result, fmt.Errorf("hierarchy deeper than %d levels", corerollup.MaxCascadeHops+1))
		}

		if err := s.recompute(ctx, node, result); err != nil {
			return s.halt(node, result, err)
		}

		parent, ok, err := s.store.ResolveParent(ctx, node)
		if err != nil {
			return s.halt(node, result, err)
		}
		if !ok {
			return nil
		}
		node = parent
	}
}

// recompute derives one node's status from its live children and saves it when it changed.
// Unchanged nodes are not rewritten, so repeated propagation produces no drift.
func (s *RollupServiceImpl) recompute(ctx context.Context, node corerollup.NodeRef, result *primary.CascadeResult) error {
	current, _, err := s.store.CurrentStatus(ctx, node)
	if err != nil {
		return err
	}

	children, err := s.store.LiveChildStatuses(ctx, node)
	if err != nil {
		return fmt.Errorf("failed to load children of %s: %w", node, err)
	}

	step, err := corerollup.EvaluateStep(node, current, children)
	if err != nil {
		return err
	}

	if step.Changed() {
		if err := s.store.SaveStatus(ctx, node, string(step.New)); err != nil {
			return err
		}
	}
	s.record(ctx, step, result)
	return nil
}

// record appends a step to the result, logs it and writes the audit entry.
func (s *RollupServiceImpl) record(ctx context.Context, step corerollup.StepResult, result *primary.CascadeResult) {
	result.Steps = append(result.Steps, primary.CascadeStep{
		Level:     string(step.Node.Level),
		NodeID:    step.Node.ID,
		OldStatus: string(step.Previous),
		NewStatus: string(step.New),
		Cause:     string(step.Cause),
		Changed:   step.Changed(),
	})

	s.logger.Debug("status step",
		"level", step.Node.Level,
		"node", step.Node.ID,
		"from", step.Previous,
		"to", step.New,
		"cause", step.Cause,
	)

	if !step.Changed() || s.logWriter == nil {
		return
	}
	if err := s.logWriter.LogStatusChange(ctx, step); err != nil {
		// The status is already saved; a missing audit row must not undo it.
		s.logger.Warn("failed to record status event", "node", step.Node.ID, "err", err)
	}
}

// halt wraps err in a CascadeError naming the node where the cascade stopped.
func (s *RollupServiceImpl) halt(node corerollup.NodeRef, result *primary.CascadeResult, err error) error {
	completed := append([]primary.CascadeStep(nil), result.Steps...)
	s.logger.Error("status cascade halted",
		"level", node.Level,
		"node", node.ID,
		"saved_steps", len(completed),
		"err", err,
	)
	return &primary.CascadeError{
		Level:     string(node.Level),
		NodeID:    node.ID,
		Completed: completed,
		Err:       err,
	}
}

// Ensure RollupServiceImpl implements the interface
var _ primary.RollupService = (*RollupServiceImpl)(nil)

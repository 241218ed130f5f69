package app

import (
	"context"
	"fmt"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/primary"
	"github.com/example/compass/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	eventRepo secondary.StatusEventRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(eventRepo secondary.StatusEventRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		eventRepo: eventRepo,
	}
}

// ListStatusEvents retrieves the status events recorded for a node.
// The level is derived from the ID prefix; plans carry no status and have no events.
func (s *HistoryServiceImpl) ListStatusEvents(ctx context.Context, nodeID string, limit int) ([]*primary.StatusEvent, error) {
	level, ok := coreplan.LevelForID(nodeID)
	if !ok {
		return nil, fmt.Errorf("%s does not carry a status (expected an FA-, OBJ- or ACT- ID)", nodeID)
	}

	records, err := s.eventRepo.ListByNode(ctx, string(level), nodeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status events: %w", err)
	}

	events := make([]*primary.StatusEvent, len(records))
	for i, r := range records {
		events[i] = recordToStatusEvent(r)
	}
	return events, nil
}

// Helper methods

func recordToStatusEvent(r *secondary.StatusEventRecord) *primary.StatusEvent {
	return &primary.StatusEvent{
		ID:         r.ID,
		Level:      r.Level,
		NodeID:     r.NodeID,
		OldStatus:  r.OldStatus,
		NewStatus:  r.NewStatus,
		Cause:      r.Cause,
		ActorID:    r.ActorID,
		OccurredAt: r.OccurredAt,
	}
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)

package primary

import "context"

// HistoryService defines the primary port for reading the status event ledger.
type HistoryService interface {
	// ListStatusEvents returns the most recent status events for a node, newest first.
	ListStatusEvents(ctx context.Context, nodeID string, limit int) ([]*StatusEvent, error)
}

// StatusEvent represents one recorded status change.
type StatusEvent struct {
	ID         string
	Level      string
	NodeID     string
	OldStatus  string
	NewStatus  string
	Cause      string
	ActorID    string
	OccurredAt string
}

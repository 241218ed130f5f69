package secondary

import (
	"context"

	"github.com/example/compass/internal/core/rollup"
)

// StatusLogWriter defines the interface for writing status audit entries.
// Implementations extract the actor from context.
type StatusLogWriter interface {
	// LogStatusChange records that a node moved from oldStatus to newStatus.
	LogStatusChange(ctx context.Context, step rollup.StepResult) error
}

// StatusEventRepository defines the secondary port for the status event ledger.
type StatusEventRepository interface {
	// Create appends a new event.
	Create(ctx context.Context, event *StatusEventRecord) error

	// ListByNode returns events for one node, newest first.
	ListByNode(ctx context.Context, level, nodeID string, limit int) ([]*StatusEventRecord, error)
}

// StatusEventRecord represents a status event as stored in persistence.
type StatusEventRecord struct {
	ID         string
	Level      string
	NodeID     string
	OldStatus  string // Empty string means the node held no status before
	NewStatus  string
	Cause      string // direct, rollup
	ActorID    string // Empty string means null
	OccurredAt string
}

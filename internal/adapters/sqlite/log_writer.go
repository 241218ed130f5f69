package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/ctxutil"
	"github.com/example/compass/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.StatusLogWriter using StatusEventRepository.
type LogWriterAdapter struct {
	eventRepo secondary.StatusEventRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(eventRepo secondary.StatusEventRepository) *LogWriterAdapter {
	return &LogWriterAdapter{
		eventRepo: eventRepo,
	}
}

// LogStatusChange appends one status event, attributed to the actor in ctx.
func (w *LogWriterAdapter) LogStatusChange(ctx context.Context, step rollup.StepResult) error {
	record := &secondary.StatusEventRecord{
		ID:        uuid.NewString(),
		Level:     string(step.Node.Level),
		NodeID:    step.Node.ID,
		OldStatus: string(step.Previous),
		NewStatus: string(step.New),
		Cause:     string(step.Cause),
		ActorID:   ctxutil.ActorFromContext(ctx),
	}

	return w.eventRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.StatusLogWriter = (*LogWriterAdapter)(nil)

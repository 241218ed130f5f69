package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/compass/internal/ports/primary"
)

// HistoryAdapter prints the status event ledger of a node.
type HistoryAdapter struct {
	service primary.HistoryService
	style   *StatusStyle
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter.
func NewHistoryAdapter(service primary.HistoryService, style *StatusStyle, out io.Writer) *HistoryAdapter {
	if style == nil {
		style = NewStatusStyle(false)
	}
	return &HistoryAdapter{service: service, style: style, out: out}
}

// Show lists the node's most recent status events, newest first.
func (a *HistoryAdapter) Show(ctx context.Context, nodeID string, limit int) error {
	events, err := a.service.ListStatusEvents(ctx, nodeID, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintf(a.out, "No status changes recorded for %s\n", nodeID)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tFROM\tTO\tCAUSE\tACTOR")
	for _, e := range events {
		from := e.OldStatus
		if from == "" {
			from = "-"
		}
		actor := e.ActorID
		if actor == "" {
			actor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n", e.OccurredAt, from, a.style.Marker(e.NewStatus), e.NewStatus, e.Cause, actor)
	}
	return w.Flush()
}

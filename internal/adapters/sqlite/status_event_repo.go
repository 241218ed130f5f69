package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/compass/internal/ports/secondary"
)

// StatusEventRepository implements secondary.StatusEventRepository with SQLite.
type StatusEventRepository struct {
	db *sql.DB
}

// NewStatusEventRepository creates a new SQLite status event repository.
func NewStatusEventRepository(db *sql.DB) *StatusEventRepository {
	return &StatusEventRepository{db: db}
}

// Create appends a status event. OccurredAt defaults to now when empty.
func (r *StatusEventRepository) Create(ctx context.Context, event *secondary.StatusEventRecord) error {
	var oldStatus, actorID sql.NullString
	if event.OldStatus != "" {
		oldStatus = sql.NullString{String: event.OldStatus, Valid: true}
	}
	if event.ActorID != "" {
		actorID = sql.NullString{String: event.ActorID, Valid: true}
	}

	occurredAt := time.Now().UTC()
	if event.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, event.OccurredAt)
		if err != nil {
			return fmt.Errorf("invalid occurred_at %q: %w", event.OccurredAt, err)
		}
		occurredAt = parsed.UTC()
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO status_events (id, level, node_id, old_status, new_status, cause, actor_id, occurred_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Level,
		event.NodeID,
		oldStatus,
		event.NewStatus,
		event.Cause,
		actorID,
		occurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create status event: %w", err)
	}

	return nil
}

// ListByNode returns the node's events, newest first. A limit <= 0 returns all of them.
func (r *StatusEventRepository) ListByNode(ctx context.Context, level, nodeID string, limit int) ([]*secondary.StatusEventRecord, error) {
	query := `SELECT id, level, node_id, old_status, new_status, cause, actor_id, occurred_at FROM status_events WHERE level = ? AND node_id = ? ORDER BY occurred_at DESC, rowid DESC`
	args := []any{level, nodeID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list status events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.StatusEventRecord
	for rows.Next() {
		var (
			oldStatus  sql.NullString
			actorID    sql.NullString
			occurredAt time.Time
		)

		record := &secondary.StatusEventRecord{}
		err := rows.Scan(&record.ID,
			&record.Level,
			&record.NodeID,
			&oldStatus,
			&record.NewStatus,
			&record.Cause,
			&actorID,
			&occurredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status event: %w", err)
		}
		record.OldStatus = oldStatus.String
		record.ActorID = actorID.String
		record.OccurredAt = occurredAt.Format(time.RFC3339)

		events = append(events, record)
	}

	return events, rows.Err()
}

// Ensure StatusEventRepository implements the interface
var _ secondary.StatusEventRepository = (*StatusEventRepository)(nil)

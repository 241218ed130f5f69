package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// scanActivity scans an activity row into an ActivityRecord.
func scanActivity(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ActivityRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	record := &secondary.ActivityRecord{}
	err := scanner.Scan(
		&record.ID, &record.ObjectiveID, &record.Title, &desc, &record.Status, &record.SortOrder,
		&createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	record.DeletedAt = formatNullTime(deletedAt)

	return record, nil
}

const activitySelectCols = "id, objective_id, title, description, status, sort_order, created_at, updated_at, deleted_at"

// Create persists a new activity.
// The record must have ID and Status pre-populated by the service layer.
func (r *ActivityRepository) Create(ctx context.Context, act *secondary.ActivityRecord) error {
	if act.ID == "" {
		return fmt.Errorf("activity ID must be pre-populated by service layer")
	}
	if act.Status == "" {
		return fmt.Errorf("activity Status must be pre-populated by service layer")
	}

	var desc sql.NullString
	if act.Description != "" {
		desc = sql.NullString{String: act.Description, Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO activities (id, objective_id, title, description, status, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		act.ID, act.ObjectiveID, act.Title, desc, act.Status, act.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// GetByID retrieves an activity by its ID.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*secondary.ActivityRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+activitySelectCols+" FROM activities WHERE id = ?",
		id,
	)

	record, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, notFound("activity", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return record, nil
}

// List retrieves activities matching the given filters, in sort order.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := "SELECT " + activitySelectCols + " FROM activities WHERE 1=1"
	args := []any{}

	if filters.ObjectiveID != "" {
		query += " AND objective_id = ?"
		args = append(args, filters.ObjectiveID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if !filters.IncludeDeleted {
		query += " AND deleted_at IS NULL"
	}

	query += " ORDER BY sort_order ASC, id ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*secondary.ActivityRecord
	for rows.Next() {
		record, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, record)
	}

	return activities, rows.Err()
}

// Update updates title, description and sort order of an existing activity.
// Empty strings and a negative sort order leave the column unchanged.
func (r *ActivityRepository) Update(ctx context.Context, act *secondary.ActivityRecord) error {
	query := "UPDATE activities SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if act.Title != "" {
		query += ", title = ?"
		args = append(args, act.Title)
	}

	if act.Description != "" {
		query += ", description = ?"
		args = append(args, sql.NullString{String: act.Description, Valid: true})
	}

	if act.SortOrder >= 0 {
		query += ", sort_order = ?"
		args = append(args, act.SortOrder)
	}

	query += " WHERE id = ?"
	args = append(args, act.ID)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("activity", act.ID)
	}

	return nil
}

// SoftDelete marks an activity as deleted.
func (r *ActivityRepository) SoftDelete(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "activities", "activity", id, true)
}

// Restore clears an activity's deleted marker.
func (r *ActivityRepository) Restore(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "activities", "activity", id, false)
}

// GetNextID returns the next available activity ID.
func (r *ActivityRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len(coreplan.PrefixActivity) + 2
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM activities", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next activity ID: %w", err)
	}

	return coreplan.GenerateID(coreplan.PrefixActivity, maxID), nil
}

// NextSortOrder returns one past the highest sort order in the objective, deleted rows included.
func (r *ActivityRepository) NextSortOrder(ctx context.Context, objectiveID string) (int, error) {
	var next int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM activities WHERE objective_id = ?",
		objectiveID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next sort order: %w", err)
	}

	return next, nil
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityRepository = (*ActivityRepository)(nil)

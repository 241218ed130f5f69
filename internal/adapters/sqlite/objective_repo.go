package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/secondary"
)

// ObjectiveRepository implements secondary.ObjectiveRepository with SQLite.
type ObjectiveRepository struct {
	db *sql.DB
}

// NewObjectiveRepository creates a new SQLite objective repository.
func NewObjectiveRepository(db *sql.DB) *ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

// scanObjective scans an objective row into an ObjectiveRecord.
func scanObjective(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ObjectiveRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	record := &secondary.ObjectiveRecord{}
	err := scanner.Scan(
		&record.ID, &record.FocusAreaID, &record.Title, &desc, &record.Status, &record.SortOrder,
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

const objectiveSelectCols = "id, focus_area_id, title, description, status, sort_order, created_at, updated_at, deleted_at"

// Create persists a new objective.
// The record must have ID and Status pre-populated by the service layer.
func (r *ObjectiveRepository) Create(ctx context.Context, obj *secondary.ObjectiveRecord) error {
	if obj.ID == "" {
		return fmt.Errorf("objective ID must be pre-populated by service layer")
	}
	if obj.Status == "" {
		return fmt.Errorf("objective Status must be pre-populated by service layer")
	}

	var desc sql.NullString
	if obj.Description != "" {
		desc = sql.NullString{String: obj.Description, Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO objectives (id, focus_area_id, title, description, status, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		obj.ID, obj.FocusAreaID, obj.Title, desc, obj.Status, obj.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}

	return nil
}

// GetByID retrieves an objective by its ID.
func (r *ObjectiveRepository) GetByID(ctx context.Context, id string) (*secondary.ObjectiveRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+objectiveSelectCols+" FROM objectives WHERE id = ?",
		id,
	)

	record, err := scanObjective(row)
	if err == sql.ErrNoRows {
		return nil, notFound("objective", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}

	return record, nil
}

// List retrieves objectives matching the given filters, in sort order.
func (r *ObjectiveRepository) List(ctx context.Context, filters secondary.ObjectiveFilters) ([]*secondary.ObjectiveRecord, error) {
	query := "SELECT " + objectiveSelectCols + " FROM objectives WHERE 1=1"
	args := []any{}

	if filters.FocusAreaID != "" {
		query += " AND focus_area_id = ?"
		args = append(args, filters.FocusAreaID)
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
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	defer rows.Close()

	var objectives []*secondary.ObjectiveRecord
	for rows.Next() {
		record, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		objectives = append(objectives, record)
	}

	return objectives, rows.Err()
}

// Update updates title, description and sort order of an existing objective.
// Empty strings and a negative sort order leave the column unchanged.
func (r *ObjectiveRepository) Update(ctx context.Context, obj *secondary.ObjectiveRecord) error {
	query := "UPDATE objectives SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if obj.Title != "" {
		query += ", title = ?"
		args = append(args, obj.Title)
	}

	if obj.Description != "" {
		query += ", description = ?"
		args = append(args, sql.NullString{String: obj.Description, Valid: true})
	}

	if obj.SortOrder >= 0 {
		query += ", sort_order = ?"
		args = append(args, obj.SortOrder)
	}

	query += " WHERE id = ?"
	args = append(args, obj.ID)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update objective: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("objective", obj.ID)
	}

	return nil
}

// SoftDelete marks an objective as deleted.
func (r *ObjectiveRepository) SoftDelete(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "objectives", "objective", id, true)
}

// Restore clears an objective's deleted marker.
func (r *ObjectiveRepository) Restore(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "objectives", "objective", id, false)
}

// GetNextID returns the next available objective ID.
func (r *ObjectiveRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len(coreplan.PrefixObjective) + 2
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM objectives", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next objective ID: %w", err)
	}

	return coreplan.GenerateID(coreplan.PrefixObjective, maxID), nil
}

// NextSortOrder returns one past the highest sort order in the focus area, deleted rows included.
func (r *ObjectiveRepository) NextSortOrder(ctx context.Context, focusAreaID string) (int, error) {
	var next int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM objectives WHERE focus_area_id = ?",
		focusAreaID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next sort order: %w", err)
	}

	return next, nil
}

// Ensure ObjectiveRepository implements the interface
var _ secondary.ObjectiveRepository = (*ObjectiveRepository)(nil)

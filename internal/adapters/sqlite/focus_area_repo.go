package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/secondary"
)

// FocusAreaRepository implements secondary.FocusAreaRepository with SQLite.
type FocusAreaRepository struct {
	db *sql.DB
}

// NewFocusAreaRepository creates a new SQLite focus area repository.
func NewFocusAreaRepository(db *sql.DB) *FocusAreaRepository {
	return &FocusAreaRepository{db: db}
}

// scanFocusArea scans a focus area row into a FocusAreaRecord.
func scanFocusArea(scanner interface {
	Scan(dest ...any) error
}) (*secondary.FocusAreaRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	record := &secondary.FocusAreaRecord{}
	err := scanner.Scan(
		&record.ID, &record.PlanID, &record.Title, &desc, &record.Status, &record.SortOrder,
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

const focusAreaSelectCols = "id, plan_id, title, description, status, sort_order, created_at, updated_at, deleted_at"

// Create persists a new focus area.
// The record must have ID and Status pre-populated by the service layer.
func (r *FocusAreaRepository) Create(ctx context.Context, fa *secondary.FocusAreaRecord) error {
	if fa.ID == "" {
		return fmt.Errorf("focus area ID must be pre-populated by service layer")
	}
	if fa.Status == "" {
		return fmt.Errorf("focus area Status must be pre-populated by service layer")
	}

	var desc sql.NullString
	if fa.Description != "" {
		desc = sql.NullString{String: fa.Description, Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO focus_areas (id, plan_id, title, description, status, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		fa.ID, fa.PlanID, fa.Title, desc, fa.Status, fa.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create focus area: %w", err)
	}

	return nil
}

// GetByID retrieves a focus area by its ID.
func (r *FocusAreaRepository) GetByID(ctx context.Context, id string) (*secondary.FocusAreaRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+focusAreaSelectCols+" FROM focus_areas WHERE id = ?",
		id,
	)

	record, err := scanFocusArea(row)
	if err == sql.ErrNoRows {
		return nil, notFound("focus area", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get focus area: %w", err)
	}

	return record, nil
}

// List retrieves focus areas matching the given filters, in sort order.
func (r *FocusAreaRepository) List(ctx context.Context, filters secondary.FocusAreaFilters) ([]*secondary.FocusAreaRecord, error) {
	query := "SELECT " + focusAreaSelectCols + " FROM focus_areas WHERE 1=1"
	args := []any{}

	if filters.PlanID != "" {
		query += " AND plan_id = ?"
		args = append(args, filters.PlanID)
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
		return nil, fmt.Errorf("failed to list focus areas: %w", err)
	}
	defer rows.Close()

	var focusAreas []*secondary.FocusAreaRecord
	for rows.Next() {
		record, err := scanFocusArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan focus area: %w", err)
		}
		focusAreas = append(focusAreas, record)
	}

	return focusAreas, rows.Err()
}

// Update updates title, description and sort order of an existing focus area.
// Empty strings and a negative sort order leave the column unchanged.
func (r *FocusAreaRepository) Update(ctx context.Context, fa *secondary.FocusAreaRecord) error {
	query := "UPDATE focus_areas SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if fa.Title != "" {
		query += ", title = ?"
		args = append(args, fa.Title)
	}

	if fa.Description != "" {
		query += ", description = ?"
		args = append(args, sql.NullString{String: fa.Description, Valid: true})
	}

	if fa.SortOrder >= 0 {
		query += ", sort_order = ?"
		args = append(args, fa.SortOrder)
	}

	query += " WHERE id = ?"
	args = append(args, fa.ID)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update focus area: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("focus area", fa.ID)
	}

	return nil
}

// SoftDelete marks a focus area as deleted.
func (r *FocusAreaRepository) SoftDelete(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "focus_areas", "focus area", id, true)
}

// Restore clears a focus area's deleted marker.
func (r *FocusAreaRepository) Restore(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "focus_areas", "focus area", id, false)
}

// GetNextID returns the next available focus area ID.
func (r *FocusAreaRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len(coreplan.PrefixFocusArea) + 2
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM focus_areas", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next focus area ID: %w", err)
	}

	return coreplan.GenerateID(coreplan.PrefixFocusArea, maxID), nil
}

// NextSortOrder returns one past the highest sort order in the plan, deleted rows included.
func (r *FocusAreaRepository) NextSortOrder(ctx context.Context, planID string) (int, error) {
	var next int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM focus_areas WHERE plan_id = ?",
		planID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next sort order: %w", err)
	}

	return next, nil
}

// Ensure FocusAreaRepository implements the interface
var _ secondary.FocusAreaRepository = (*FocusAreaRepository)(nil)

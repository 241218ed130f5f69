// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/secondary"
)

// StrategicPlanRepository implements secondary.StrategicPlanRepository with SQLite.
type StrategicPlanRepository struct {
	db *sql.DB
}

// NewStrategicPlanRepository creates a new SQLite plan repository.
func NewStrategicPlanRepository(db *sql.DB) *StrategicPlanRepository {
	return &StrategicPlanRepository{db: db}
}

// scanPlan scans a plan row into a StrategicPlanRecord.
func scanPlan(scanner interface {
	Scan(dest ...any) error
}) (*secondary.StrategicPlanRecord, error) {
	var (
		desc      sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	record := &secondary.StrategicPlanRecord{}
	if err := scanner.Scan(&record.ID, &record.Title, &desc, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	record.DeletedAt = formatNullTime(deletedAt)

	return record, nil
}

const planSelectCols = "id, title, description, created_at, updated_at, deleted_at"

// Create persists a new plan.
// The plan record must have ID pre-populated by the service layer.
func (r *StrategicPlanRepository) Create(ctx context.Context, plan *secondary.StrategicPlanRecord) error {
	if plan.ID == "" {
		return fmt.Errorf("plan ID must be pre-populated by service layer")
	}

	var desc sql.NullString
	if plan.Description != "" {
		desc = sql.NullString{String: plan.Description, Valid: true}
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO strategic_plans (id, title, description) VALUES (?, ?, ?)",
		plan.ID, plan.Title, desc,
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return nil
}

// GetByID retrieves a plan by its ID.
func (r *StrategicPlanRepository) GetByID(ctx context.Context, id string) (*secondary.StrategicPlanRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+planSelectCols+" FROM strategic_plans WHERE id = ?",
		id,
	)

	record, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, notFound("plan", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return record, nil
}

// List retrieves plans matching the given filters, oldest first.
func (r *StrategicPlanRepository) List(ctx context.Context, filters secondary.StrategicPlanFilters) ([]*secondary.StrategicPlanRecord, error) {
	query := "SELECT " + planSelectCols + " FROM strategic_plans"
	if !filters.IncludeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY id ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []*secondary.StrategicPlanRecord
	for rows.Next() {
		record, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, record)
	}

	return plans, rows.Err()
}

// Update updates the title and/or description of an existing plan.
func (r *StrategicPlanRepository) Update(ctx context.Context, plan *secondary.StrategicPlanRecord) error {
	query := "UPDATE strategic_plans SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if plan.Title != "" {
		query += ", title = ?"
		args = append(args, plan.Title)
	}

	if plan.Description != "" {
		query += ", description = ?"
		args = append(args, sql.NullString{String: plan.Description, Valid: true})
	}

	query += " WHERE id = ?"
	args = append(args, plan.ID)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("plan", plan.ID)
	}

	return nil
}

// SoftDelete marks a plan as deleted.
func (r *StrategicPlanRepository) SoftDelete(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "strategic_plans", "plan", id, true)
}

// Restore clears a plan's deleted marker.
func (r *StrategicPlanRepository) Restore(ctx context.Context, id string) error {
	return setDeleted(ctx, conn(ctx, r.db), "strategic_plans", "plan", id, false)
}

// GetNextID returns the next available plan ID.
func (r *StrategicPlanRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len(coreplan.PrefixPlan) + 2
	err := conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM strategic_plans", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next plan ID: %w", err)
	}

	return coreplan.GenerateID(coreplan.PrefixPlan, maxID), nil
}

// Ensure StrategicPlanRepository implements the interface
var _ secondary.StrategicPlanRepository = (*StrategicPlanRepository)(nil)

package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a demo plan for development.
// Parent statuses are already consistent with the rollup of their children.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format("2006-01-02 15:04:05")

	if _, err := database.Exec(
		"INSERT INTO strategic_plans (id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		"PLAN-001", "FY27 Strategy", "Company-wide goals for the fiscal year", now, now,
	); err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}

	// Focus areas
	focusAreas := []struct{ id, title, status string }{
		{"FA-001", "Customer retention", "at_risk"},
		{"FA-002", "Platform reliability", "off_track"},
		{"FA-003", "Hiring", "not_started"},
	}
	for i, f := range focusAreas {
		if _, err := database.Exec(
			"INSERT INTO focus_areas (id, plan_id, title, status, sort_order, created_at, updated_at) VALUES (?, 'PLAN-001', ?, ?, ?, ?, ?)",
			f.id, f.title, f.status, i, now, now,
		); err != nil {
			return fmt.Errorf("seed focus areas: %w", err)
		}
	}

	// Objectives
	objectives := []struct{ id, focusAreaID, title, status string }{
		{"OBJ-001", "FA-001", "Cut monthly churn to 3%", "at_risk"},
		{"OBJ-002", "FA-001", "Launch loyalty program", "on_track"},
		{"OBJ-003", "FA-002", "Reach 99.95% uptime", "off_track"},
		{"OBJ-004", "FA-002", "Migrate to the new job queue", "not_started"},
	}
	for i, o := range objectives {
		if _, err := database.Exec(
			"INSERT INTO objectives (id, focus_area_id, title, status, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			o.id, o.focusAreaID, o.title, o.status, i, now, now,
		); err != nil {
			return fmt.Errorf("seed objectives: %w", err)
		}
	}

	// Activities
	activities := []struct{ id, objectiveID, title, status string }{
		{"ACT-001", "OBJ-001", "Interview churned accounts", "on_track"},
		{"ACT-002", "OBJ-001", "Ship cancellation survey", "at_risk"},
		{"ACT-003", "OBJ-002", "Define reward tiers", "on_track"},
		{"ACT-004", "OBJ-002", "Partner with billing team", "on_track"},
		{"ACT-005", "OBJ-003", "Add regional failover", "off_track"},
		{"ACT-006", "OBJ-003", "Tighten alerting thresholds", "on_track"},
	}
	for i, a := range activities {
		if _, err := database.Exec(
			"INSERT INTO activities (id, objective_id, title, status, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			a.id, a.objectiveID, a.title, a.status, i, now, now,
		); err != nil {
			return fmt.Errorf("seed activities: %w", err)
		}
	}

	return nil
}

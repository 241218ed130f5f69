// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files; use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/compass/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPlan inserts a test plan and returns its ID.
func seedPlan(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "PLAN-001"
	}
	_, err := db.Exec("INSERT INTO strategic_plans (id, title) VALUES (?, ?)", id, "Plan "+id)
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return id
}

// seedFocusArea inserts a test focus area and returns its ID.
func seedFocusArea(t *testing.T, db *sql.DB, id, planID, status string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO focus_areas (id, plan_id, title, status, sort_order) VALUES (?, ?, ?, ?, (SELECT COUNT(*) FROM focus_areas))",
		id, planID, "Focus "+id, status,
	)
	if err != nil {
		t.Fatalf("failed to seed focus area: %v", err)
	}
	return id
}

// seedObjective inserts a test objective and returns its ID.
func seedObjective(t *testing.T, db *sql.DB, id, focusAreaID, status string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO objectives (id, focus_area_id, title, status, sort_order) VALUES (?, ?, ?, ?, (SELECT COUNT(*) FROM objectives))",
		id, focusAreaID, "Objective "+id, status,
	)
	if err != nil {
		t.Fatalf("failed to seed objective: %v", err)
	}
	return id
}

// seedActivity inserts a test activity and returns its ID.
func seedActivity(t *testing.T, db *sql.DB, id, objectiveID, status string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO activities (id, objective_id, title, status, sort_order) VALUES (?, ?, ?, ?, (SELECT COUNT(*) FROM activities))",
		id, objectiveID, "Activity "+id, status,
	)
	if err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
	return id
}

// seedTree builds PLAN-001 > FA-001 > {OBJ-001 > {ACT-001, ACT-002}, OBJ-002}, all on_track.
func seedTree(t *testing.T, db *sql.DB) {
	t.Helper()
	seedPlan(t, db, "PLAN-001")
	seedFocusArea(t, db, "FA-001", "PLAN-001", "on_track")
	seedObjective(t, db, "OBJ-001", "FA-001", "on_track")
	seedObjective(t, db, "OBJ-002", "FA-001", "on_track")
	seedActivity(t, db, "ACT-001", "OBJ-001", "on_track")
	seedActivity(t, db, "ACT-002", "OBJ-001", "on_track")
}

// statusOf reads a node's stored status straight from its table.
func statusOf(t *testing.T, db *sql.DB, table, id string) string {
	t.Helper()
	var status string
	if err := db.QueryRow("SELECT status FROM "+table+" WHERE id = ?", id).Scan(&status); err != nil {
		t.Fatalf("failed to read status of %s: %v", id, err)
	}
	return status
}

package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh compass installs.
// It reflects the state after all migrations.
//
// # Schema Drift Protection
//
// This is the single source of truth for the database schema. Adapter tests
// load it via GetSchemaSQL() instead of declaring their own tables, so a
// repository that references a missing column fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
const SchemaSQL = `
-- Strategic plans (top-level container, no rolled-up status)
CREATE TABLE IF NOT EXISTS strategic_plans (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	deleted_at DATETIME
);

-- Focus areas (top of the rollup hierarchy)
CREATE TABLE IF NOT EXISTS focus_areas (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('on_track', 'at_risk', 'off_track', 'not_started')) DEFAULT 'not_started',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	deleted_at DATETIME,
	FOREIGN KEY (plan_id) REFERENCES strategic_plans(id)
);

CREATE INDEX IF NOT EXISTS idx_focus_areas_plan ON focus_areas(plan_id, deleted_at);

-- Objectives (roll up into their focus area)
CREATE TABLE IF NOT EXISTS objectives (
	id TEXT PRIMARY KEY,
	focus_area_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('on_track', 'at_risk', 'off_track', 'not_started')) DEFAULT 'not_started',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	deleted_at DATETIME,
	FOREIGN KEY (focus_area_id) REFERENCES focus_areas(id)
);

CREATE INDEX IF NOT EXISTS idx_objectives_focus_area ON objectives(focus_area_id, deleted_at);

-- Activities (leaves of the rollup hierarchy)
CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	objective_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('on_track', 'at_risk', 'off_track', 'not_started')) DEFAULT 'not_started',
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	deleted_at DATETIME,
	FOREIGN KEY (objective_id) REFERENCES objectives(id)
);

CREATE INDEX IF NOT EXISTS idx_activities_objective ON activities(objective_id, deleted_at);

-- Status events (append-only ledger of status changes)
CREATE TABLE IF NOT EXISTS status_events (
	id TEXT PRIMARY KEY,
	level TEXT NOT NULL CHECK(level IN ('activity', 'objective', 'focus_area')),
	node_id TEXT NOT NULL,
	old_status TEXT,
	new_status TEXT NOT NULL,
	cause TEXT NOT NULL CHECK(cause IN ('direct', 'rollup')),
	actor_id TEXT,
	occurred_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_status_events_node ON status_events(level, node_id, occurred_at);
`

// InitSchema creates the schema on a fresh database, or runs pending migrations on an existing one.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create the current schema directly and mark every
	// migration applied so none of them run against it.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := ensureVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to mark migration %d applied: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

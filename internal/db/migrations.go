package db

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_status_events_ledger",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_live_child_indexes",
		Up:      migrationV2,
	},
}

// SchemaVersion returns the highest migration version known to this build.
func SchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := ensureVersionTable(db); err != nil {
		return err
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 adds the status event ledger to databases created before it existed.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS status_events (
			id TEXT PRIMARY KEY,
			level TEXT NOT NULL CHECK(level IN ('activity', 'objective', 'focus_area')),
			node_id TEXT NOT NULL,
			old_status TEXT,
			new_status TEXT NOT NULL,
			cause TEXT NOT NULL CHECK(cause IN ('direct', 'rollup')),
			actor_id TEXT,
			occurred_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create status_events: %w", err)
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_status_events_node ON status_events(level, node_id, occurred_at)`)
	return err
}

// migrationV2 indexes the parent columns used by the live-child rollup query.
func migrationV2(tx *sql.Tx) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_focus_areas_plan ON focus_areas(plan_id, deleted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_objectives_focus_area ON objectives(focus_area_id, deleted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_objective ON activities(objective_id, deleted_at)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

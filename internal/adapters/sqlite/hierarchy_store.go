package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/ports/secondary"
)

// levelTable maps a rollup level to its table, the column that points at its
// parent and the table holding its children.
type levelTable struct {
	table       string
	parentCol   string
	childTable  string
	childFKCol  string
	parentLevel rollup.Level
}

var levelTables = map[rollup.Level]levelTable{
	rollup.LevelFocusArea: {
		table:      "focus_areas",
		childTable: "objectives",
		childFKCol: "focus_area_id",
	},
	rollup.LevelObjective: {
		table:       "objectives",
		parentCol:   "focus_area_id",
		childTable:  "activities",
		childFKCol:  "objective_id",
		parentLevel: rollup.LevelFocusArea,
	},
	rollup.LevelActivity: {
		table:       "activities",
		parentCol:   "objective_id",
		parentLevel: rollup.LevelObjective,
	},
}

// HierarchyStore implements secondary.HierarchyStore over the hierarchy tables.
type HierarchyStore struct {
	db *sql.DB
}

// NewHierarchyStore creates a new SQLite hierarchy store.
func NewHierarchyStore(db *sql.DB) *HierarchyStore {
	return &HierarchyStore{db: db}
}

func lookupLevel(level rollup.Level) (levelTable, error) {
	t, ok := levelTables[level]
	if !ok {
		return levelTable{}, fmt.Errorf("unknown level %q", level)
	}
	return t, nil
}

// LiveChildStatuses returns the statuses of the node's non-deleted children.
func (s *HierarchyStore) LiveChildStatuses(ctx context.Context, node rollup.NodeRef) ([]string, error) {
	t, err := lookupLevel(node.Level)
	if err != nil {
		return nil, err
	}
	if t.childTable == "" {
		return []string{}, nil
	}

	rows, err := conn(ctx, s.db).QueryContext(ctx,
		"SELECT status FROM "+t.childTable+" WHERE "+t.childFKCol+" = ? AND deleted_at IS NULL",
		node.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", node, err)
	}
	defer rows.Close()

	statuses := []string{}
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("failed to scan child status: %w", err)
		}
		statuses = append(statuses, status)
	}

	return statuses, rows.Err()
}

// CurrentStatus returns the node's stored status and whether it is soft-deleted.
func (s *HierarchyStore) CurrentStatus(ctx context.Context, node rollup.NodeRef) (string, bool, error) {
	t, err := lookupLevel(node.Level)
	if err != nil {
		return "", false, err
	}

	var (
		status    string
		deletedAt sql.NullTime
	)
	err = conn(ctx, s.db).QueryRowContext(ctx,
		"SELECT status, deleted_at FROM "+t.table+" WHERE id = ?",
		node.ID,
	).Scan(&status, &deletedAt)
	if err == sql.ErrNoRows {
		return "", false, notFound(levelNoun(node.Level), node.ID)
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read status of %s: %w", node, err)
	}

	return status, deletedAt.Valid, nil
}

// SaveStatus writes the node's status.
func (s *HierarchyStore) SaveStatus(ctx context.Context, node rollup.NodeRef, status string) error {
	t, err := lookupLevel(node.Level)
	if err != nil {
		return err
	}

	result, err := conn(ctx, s.db).ExecContext(ctx,
		"UPDATE "+t.table+" SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, node.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save status of %s: %w", node, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound(levelNoun(node.Level), node.ID)
	}

	return nil
}

// ResolveParent follows the node's foreign key to its parent.
// Focus areas have no parent in the rollup.
func (s *HierarchyStore) ResolveParent(ctx context.Context, node rollup.NodeRef) (rollup.NodeRef, bool, error) {
	t, err := lookupLevel(node.Level)
	if err != nil {
		return rollup.NodeRef{}, false, err
	}
	if t.parentCol == "" {
		return rollup.NodeRef{}, false, nil
	}

	var parentID string
	err = conn(ctx, s.db).QueryRowContext(ctx,
		"SELECT "+t.parentCol+" FROM "+t.table+" WHERE id = ?",
		node.ID,
	).Scan(&parentID)
	if err == sql.ErrNoRows {
		return rollup.NodeRef{}, false, notFound(levelNoun(node.Level), node.ID)
	}
	if err != nil {
		return rollup.NodeRef{}, false, fmt.Errorf("failed to resolve parent of %s: %w", node, err)
	}

	return rollup.Ref(t.parentLevel, parentID), true, nil
}

func levelNoun(level rollup.Level) string {
	if level == rollup.LevelFocusArea {
		return "focus area"
	}
	return string(level)
}

// Ensure HierarchyStore implements the interface
var _ secondary.HierarchyStore = (*HierarchyStore)(nil)

// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/compass/internal/core/rollup"
)

// ErrNotFound is wrapped by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrRollbackFailed is wrapped by a Transactor when undoing a failed transaction also fails.
var ErrRollbackFailed = errors.New("rollback failed")

// HierarchyStore is the persistence collaborator of the rollup engine.
// It only knows how to read child statuses, save one status and resolve a parent.
type HierarchyStore interface {
	// LiveChildStatuses returns the raw status values of the node's non-deleted children.
	// A node without children returns an empty slice, not an error.
	LiveChildStatuses(ctx context.Context, node rollup.NodeRef) ([]string, error)

	// CurrentStatus returns the node's stored status and whether it is soft-deleted.
	CurrentStatus(ctx context.Context, node rollup.NodeRef) (status string, deleted bool, err error)

	// SaveStatus sets the node's status field and durably saves it.
	SaveStatus(ctx context.Context, node rollup.NodeRef, status string) error

	// ResolveParent returns the node's parent in the rollup hierarchy.
	// The boolean is false when the node has no parent in scope (focus areas).
	ResolveParent(ctx context.Context, node rollup.NodeRef) (rollup.NodeRef, bool, error)
}

// StrategicPlanRepository defines the secondary port for strategic plan persistence.
type StrategicPlanRepository interface {
	// Create persists a new plan.
	Create(ctx context.Context, plan *StrategicPlanRecord) error

	// GetByID retrieves a plan by its ID, including soft-deleted plans.
	GetByID(ctx context.Context, id string) (*StrategicPlanRecord, error)

	// List retrieves plans matching the given filters.
	List(ctx context.Context, filters StrategicPlanFilters) ([]*StrategicPlanRecord, error)

	// Update updates title and description of an existing plan.
	Update(ctx context.Context, plan *StrategicPlanRecord) error

	// SoftDelete marks a plan as deleted.
	SoftDelete(ctx context.Context, id string) error

	// Restore clears a plan's deleted marker.
	Restore(ctx context.Context, id string) error

	// GetNextID returns the next available plan ID.
	GetNextID(ctx context.Context) (string, error)
}

// StrategicPlanRecord represents a strategic plan as stored in persistence.
type StrategicPlanRecord struct {
	ID          string
	Title       string
	Description string // Empty string means null
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string // Empty string means live
}

// StrategicPlanFilters contains filter options for querying plans.
type StrategicPlanFilters struct {
	IncludeDeleted bool
}

// FocusAreaRepository defines the secondary port for focus area persistence.
// Update leaves empty Title/Description and a negative SortOrder unchanged;
// Status is only written through the HierarchyStore. The same holds for
// objectives and activities.
type FocusAreaRepository interface {
	Create(ctx context.Context, focusArea *FocusAreaRecord) error
	GetByID(ctx context.Context, id string) (*FocusAreaRecord, error)
	List(ctx context.Context, filters FocusAreaFilters) ([]*FocusAreaRecord, error)
	Update(ctx context.Context, focusArea *FocusAreaRecord) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	GetNextID(ctx context.Context) (string, error)

	// NextSortOrder returns the sort order a new focus area in the plan should take.
	NextSortOrder(ctx context.Context, planID string) (int, error)
}

// FocusAreaRecord represents a focus area as stored in persistence.
type FocusAreaRecord struct {
	ID          string
	PlanID      string
	Title       string
	Description string // Empty string means null
	Status      string // on_track, at_risk, off_track, not_started
	SortOrder   int
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string // Empty string means live
}

// FocusAreaFilters contains filter options for querying focus areas.
type FocusAreaFilters struct {
	PlanID         string
	Status         string
	IncludeDeleted bool
}

// ObjectiveRepository defines the secondary port for objective persistence.
type ObjectiveRepository interface {
	Create(ctx context.Context, objective *ObjectiveRecord) error
	GetByID(ctx context.Context, id string) (*ObjectiveRecord, error)
	List(ctx context.Context, filters ObjectiveFilters) ([]*ObjectiveRecord, error)
	Update(ctx context.Context, objective *ObjectiveRecord) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	GetNextID(ctx context.Context) (string, error)
	NextSortOrder(ctx context.Context, focusAreaID string) (int, error)
}

// ObjectiveRecord represents an objective as stored in persistence.
type ObjectiveRecord struct {
	ID          string
	FocusAreaID string
	Title       string
	Description string
	Status      string
	SortOrder   int
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// ObjectiveFilters contains filter options for querying objectives.
type ObjectiveFilters struct {
	FocusAreaID    string
	Status         string
	IncludeDeleted bool
}

// ActivityRepository defines the secondary port for activity persistence.
type ActivityRepository interface {
	Create(ctx context.Context, activity *ActivityRecord) error
	GetByID(ctx context.Context, id string) (*ActivityRecord, error)
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)
	Update(ctx context.Context, activity *ActivityRecord) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	GetNextID(ctx context.Context) (string, error)
	NextSortOrder(ctx context.Context, objectiveID string) (int, error)
}

// ActivityRecord represents an activity as stored in persistence.
type ActivityRecord struct {
	ID          string
	ObjectiveID string
	Title       string
	Description string
	Status      string
	SortOrder   int
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// ActivityFilters contains filter options for querying activities.
type ActivityFilters struct {
	ObjectiveID    string
	Status         string
	IncludeDeleted bool
}

// Transactor runs a function inside a single database transaction.
// Repositories and stores obtained from the callback's context share that transaction.
// When fn returns an error every write it made is discarded, unless the returned error
// wraps ErrRollbackFailed.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

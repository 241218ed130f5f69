package primary

import "context"

// ObjectiveService defines the primary port for objective operations.
type ObjectiveService interface {
	// CreateObjective creates a new objective in a focus area and re-rolls the focus area.
	CreateObjective(ctx context.Context, req CreateObjectiveRequest) (*Objective, error)

	// GetObjective retrieves an objective by ID.
	GetObjective(ctx context.Context, objectiveID string) (*Objective, error)

	// ListObjectives lists objectives with optional filters, ordered by sort order.
	ListObjectives(ctx context.Context, filters ObjectiveFilters) ([]*Objective, error)

	// UpdateObjective updates title and/or description.
	UpdateObjective(ctx context.Context, req UpdateNodeRequest) error

	// ReorderObjective sets the objective's sort order within its focus area.
	ReorderObjective(ctx context.Context, objectiveID string, sortOrder int) error

	// DeleteObjective soft-deletes an objective and re-rolls its focus area.
	DeleteObjective(ctx context.Context, objectiveID string) error

	// RestoreObjective restores a soft-deleted objective and re-rolls its focus area.
	RestoreObjective(ctx context.Context, objectiveID string) error

	// SetObjectiveStatus sets the status directly (a human override) and cascades.
	SetObjectiveStatus(ctx context.Context, objectiveID, status string) (*CascadeResult, error)

	// RecomputeObjective rolls the objective's status up from its live activities and cascades.
	RecomputeObjective(ctx context.Context, objectiveID string) (*CascadeResult, error)
}

// CreateObjectiveRequest contains parameters for creating an objective.
type CreateObjectiveRequest struct {
	FocusAreaID string
	Title       string
	Description string
}

// Objective represents an objective entity at the port boundary.
type Objective struct {
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

// ObjectiveFilters contains filter options for listing objectives.
type ObjectiveFilters struct {
	FocusAreaID    string
	Status         string
	IncludeDeleted bool
}

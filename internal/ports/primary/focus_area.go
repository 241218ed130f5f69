package primary

import "context"

// FocusAreaService defines the primary port for focus area operations.
type FocusAreaService interface {
	// CreateFocusArea creates a new focus area in a plan. New focus areas start not_started.
	CreateFocusArea(ctx context.Context, req CreateFocusAreaRequest) (*FocusArea, error)

	// GetFocusArea retrieves a focus area by ID.
	GetFocusArea(ctx context.Context, focusAreaID string) (*FocusArea, error)

	// ListFocusAreas lists focus areas with optional filters, ordered by sort order.
	ListFocusAreas(ctx context.Context, filters FocusAreaFilters) ([]*FocusArea, error)

	// UpdateFocusArea updates title and/or description.
	UpdateFocusArea(ctx context.Context, req UpdateNodeRequest) error

	// ReorderFocusArea sets the focus area's sort order within its plan.
	ReorderFocusArea(ctx context.Context, focusAreaID string, sortOrder int) error

	// DeleteFocusArea soft-deletes a focus area.
	DeleteFocusArea(ctx context.Context, focusAreaID string) error

	// RestoreFocusArea restores a soft-deleted focus area.
	RestoreFocusArea(ctx context.Context, focusAreaID string) error

	// SetFocusAreaStatus sets the status directly (a human override).
	SetFocusAreaStatus(ctx context.Context, focusAreaID, status string) (*CascadeResult, error)

	// RecomputeFocusArea rolls the focus area's status up from its live objectives.
	RecomputeFocusArea(ctx context.Context, focusAreaID string) (*CascadeResult, error)
}

// CreateFocusAreaRequest contains parameters for creating a focus area.
type CreateFocusAreaRequest struct {
	PlanID      string
	Title       string
	Description string
}

// UpdateNodeRequest contains parameters for updating any hierarchy node.
// Empty fields are left unchanged.
type UpdateNodeRequest struct {
	NodeID      string
	Title       string
	Description string
}

// FocusArea represents a focus area entity at the port boundary.
type FocusArea struct {
	ID          string
	PlanID      string
	Title       string
	Description string
	Status      string // on_track, at_risk, off_track, not_started
	SortOrder   int
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// FocusAreaFilters contains filter options for listing focus areas.
type FocusAreaFilters struct {
	PlanID         string
	Status         string
	IncludeDeleted bool
}

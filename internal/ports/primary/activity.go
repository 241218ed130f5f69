package primary

import "context"

// ActivityService defines the primary port for activity operations.
type ActivityService interface {
	// CreateActivity creates a new activity in an objective and re-rolls the objective.
	CreateActivity(ctx context.Context, req CreateActivityRequest) (*Activity, error)

	// GetActivity retrieves an activity by ID.
	GetActivity(ctx context.Context, activityID string) (*Activity, error)

	// ListActivities lists activities with optional filters, ordered by sort order.
	ListActivities(ctx context.Context, filters ActivityFilters) ([]*Activity, error)

	// UpdateActivity updates title and/or description.
	UpdateActivity(ctx context.Context, req UpdateNodeRequest) error

	// ReorderActivity sets the activity's sort order within its objective.
	ReorderActivity(ctx context.Context, activityID string, sortOrder int) error

	// DeleteActivity soft-deletes an activity and re-rolls its objective.
	DeleteActivity(ctx context.Context, activityID string) error

	// RestoreActivity restores a soft-deleted activity and re-rolls its objective.
	RestoreActivity(ctx context.Context, activityID string) error

	// SetActivityStatus sets the activity's status and cascades to its objective and focus area.
	SetActivityStatus(ctx context.Context, activityID, status string) (*CascadeResult, error)
}

// CreateActivityRequest contains parameters for creating an activity.
type CreateActivityRequest struct {
	ObjectiveID string
	Title       string
	Description string
}

// Activity represents an activity entity at the port boundary.
type Activity struct {
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

// ActivityFilters contains filter options for listing activities.
type ActivityFilters struct {
	ObjectiveID    string
	Status         string
	IncludeDeleted bool
}

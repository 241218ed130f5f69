package primary

import "context"

// PlanService defines the primary port for strategic plan operations.
type PlanService interface {
	// CreatePlan creates a new strategic plan.
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*CreatePlanResponse, error)

	// GetPlan retrieves a plan by ID.
	GetPlan(ctx context.Context, planID string) (*StrategicPlan, error)

	// ListPlans lists plans.
	ListPlans(ctx context.Context, filters PlanFilters) ([]*StrategicPlan, error)

	// UpdatePlan updates a plan's title and/or description.
	UpdatePlan(ctx context.Context, req UpdatePlanRequest) error

	// DeletePlan soft-deletes a plan. Its focus areas are left untouched.
	DeletePlan(ctx context.Context, planID string) error

	// RestorePlan restores a soft-deleted plan.
	RestorePlan(ctx context.Context, planID string) error

	// GetPlanTree loads the plan with its focus areas, objectives and activities.
	GetPlanTree(ctx context.Context, planID string, includeDeleted bool) (*PlanTree, error)
}

// CreatePlanRequest contains parameters for creating a plan.
type CreatePlanRequest struct {
	Title       string
	Description string
}

// CreatePlanResponse contains the result of creating a plan.
type CreatePlanResponse struct {
	PlanID string
	Plan   *StrategicPlan
}

// UpdatePlanRequest contains parameters for updating a plan.
type UpdatePlanRequest struct {
	PlanID      string
	Title       string
	Description string
}

// StrategicPlan represents a plan entity at the port boundary.
// Plans carry no rolled-up status.
type StrategicPlan struct {
	ID          string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// PlanFilters contains filter options for listing plans.
type PlanFilters struct {
	IncludeDeleted bool
}

// PlanTree is a plan with its full hierarchy, children ordered by sort order.
type PlanTree struct {
	Plan       *StrategicPlan
	FocusAreas []*FocusAreaNode
}

// FocusAreaNode is a focus area with its objectives.
type FocusAreaNode struct {
	FocusArea  *FocusArea
	Objectives []*ObjectiveNode
}

// ObjectiveNode is an objective with its activities.
type ObjectiveNode struct {
	Objective  *Objective
	Activities []*Activity
}

package app

import (
	"context"
	"fmt"
	"sort"

	coreplan "github.com/example/compass/internal/core/plan"
	"github.com/example/compass/internal/ports/primary"
	"github.com/example/compass/internal/ports/secondary"
)

// PlanServiceImpl implements the PlanService interface.
type PlanServiceImpl struct {
	planRepo      secondary.StrategicPlanRepository
	focusAreaRepo secondary.FocusAreaRepository
	objectiveRepo secondary.ObjectiveRepository
	activityRepo  secondary.ActivityRepository
}

// NewPlanService creates a new PlanService with injected dependencies.
func NewPlanService(
	planRepo secondary.StrategicPlanRepository,
	focusAreaRepo secondary.FocusAreaRepository,
	objectiveRepo secondary.ObjectiveRepository,
	activityRepo secondary.ActivityRepository,
) *PlanServiceImpl {
	return &PlanServiceImpl{
		planRepo:      planRepo,
		focusAreaRepo: focusAreaRepo,
		objectiveRepo: objectiveRepo,
		activityRepo:  activityRepo,
	}
}

// CreatePlan creates a new strategic plan.
func (s *PlanServiceImpl) CreatePlan(ctx context.Context, req primary.CreatePlanRequest) (*primary.CreatePlanResponse, error) {
	guardCtx := coreplan.CreateChildContext{
		ParentKind:   "workspace",
		ParentExists: true,
		Title:        req.Title,
	}
	if result := coreplan.CanCreateChild(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.planRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}

	record := &secondary.StrategicPlanRecord{
		ID:          nextID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.planRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	created, err := s.planRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created plan: %w", err)
	}

	return &primary.CreatePlanResponse{
		PlanID: created.ID,
		Plan:   recordToPlan(created),
	}, nil
}

// GetPlan retrieves a plan by ID.
func (s *PlanServiceImpl) GetPlan(ctx context.Context, planID string) (*primary.StrategicPlan, error) {
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return recordToPlan(record), nil
}

// ListPlans lists plans.
func (s *PlanServiceImpl) ListPlans(ctx context.Context, filters primary.PlanFilters) ([]*primary.StrategicPlan, error) {
	records, err := s.planRepo.List(ctx, secondary.StrategicPlanFilters{IncludeDeleted: filters.IncludeDeleted})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*primary.StrategicPlan, len(records))
	for i, r := range records {
		plans[i] = recordToPlan(r)
	}
	return plans, nil
}

// UpdatePlan updates a plan's title and/or description.
func (s *PlanServiceImpl) UpdatePlan(ctx context.Context, req primary.UpdatePlanRequest) error {
	return s.planRepo.Update(ctx, &secondary.StrategicPlanRecord{
		ID:          req.PlanID,
		Title:       req.Title,
		Description: req.Description,
	})
}

// DeletePlan soft-deletes a plan.
func (s *PlanServiceImpl) DeletePlan(ctx context.Context, planID string) error {
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return err
	}

	guardCtx := coreplan.DeleteContext{Kind: "plan", ID: planID, IsDeleted: record.DeletedAt != ""}
	if result := coreplan.CanDelete(guardCtx); !result.Allowed {
		return result.Error()
	}

	return s.planRepo.SoftDelete(ctx, planID)
}

// RestorePlan restores a soft-deleted plan.
func (s *PlanServiceImpl) RestorePlan(ctx context.Context, planID string) error {
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return err
	}

	guardCtx := coreplan.RestoreContext{Kind: "plan", ID: planID, IsDeleted: record.DeletedAt != ""}
	if result := coreplan.CanRestore(guardCtx); !result.Allowed {
		return result.Error()
	}

	return s.planRepo.Restore(ctx, planID)
}

// GetPlanTree loads the plan with its focus areas, objectives and activities.
// Soft-deleted nodes (and everything below them) are skipped unless includeDeleted is set.
func (s *PlanServiceImpl) GetPlanTree(ctx context.Context, planID string, includeDeleted bool) (*primary.PlanTree, error) {
	planRecord, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	tree := &primary.PlanTree{Plan: recordToPlan(planRecord)}

	focusAreas, err := s.focusAreaRepo.List(ctx, secondary.FocusAreaFilters{
		PlanID:         planID,
		IncludeDeleted: includeDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load focus areas: %w", err)
	}
	sort.SliceStable(focusAreas, func(i, j int) bool { return focusAreas[i].SortOrder < focusAreas[j].SortOrder })

	for _, fa := range focusAreas {
		faNode := &primary.FocusAreaNode{FocusArea: recordToFocusArea(fa)}

		objectives, err := s.objectiveRepo.List(ctx, secondary.ObjectiveFilters{
			FocusAreaID:    fa.ID,
			IncludeDeleted: includeDeleted,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load objectives for %s: %w", fa.ID, err)
		}
		sort.SliceStable(objectives, func(i, j int) bool { return objectives[i].SortOrder < objectives[j].SortOrder })

		for _, obj := range objectives {
			objNode := &primary.ObjectiveNode{Objective: recordToObjective(obj)}

			activities, err := s.activityRepo.List(ctx, secondary.ActivityFilters{
				ObjectiveID:    obj.ID,
				IncludeDeleted: includeDeleted,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to load activities for %s: %w", obj.ID, err)
			}
			sort.SliceStable(activities, func(i, j int) bool { return activities[i].SortOrder < activities[j].SortOrder })

			for _, act := range activities {
				objNode.Activities = append(objNode.Activities, recordToActivity(act))
			}
			faNode.Objectives = append(faNode.Objectives, objNode)
		}
		tree.FocusAreas = append(tree.FocusAreas, faNode)
	}

	return tree, nil
}

// Helper methods

func recordToPlan(r *secondary.StrategicPlanRecord) *primary.StrategicPlan {
	return &primary.StrategicPlan{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// Ensure PlanServiceImpl implements the interface
var _ primary.PlanService = (*PlanServiceImpl)(nil)

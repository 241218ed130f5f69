package app

import (
	"context"
	"fmt"

	coreplan "github.com/example/compass/internal/core/plan"
	corerollup "github.com/example/compass/internal/core/rollup"
	corestatus "github.com/example/compass/internal/core/status"
	"github.com/example/compass/internal/ports/primary"
	"github.com/example/compass/internal/ports/secondary"
)

// FocusAreaServiceImpl implements the FocusAreaService interface.
type FocusAreaServiceImpl struct {
	focusAreaRepo secondary.FocusAreaRepository
	planRepo      secondary.StrategicPlanRepository
	rollup        primary.RollupService
	tx            secondary.Transactor
}

// NewFocusAreaService creates a new FocusAreaService with injected dependencies.
// tx may be nil, in which case every save commits on its own.
func NewFocusAreaService(
	focusAreaRepo secondary.FocusAreaRepository,
	planRepo secondary.StrategicPlanRepository,
	rollup primary.RollupService,
	tx secondary.Transactor,
) *FocusAreaServiceImpl {
	return &FocusAreaServiceImpl{
		focusAreaRepo: focusAreaRepo,
		planRepo:      planRepo,
		rollup:        rollup,
		tx:            tx,
	}
}

// CreateFocusArea creates a new focus area in a plan.
func (s *FocusAreaServiceImpl) CreateFocusArea(ctx context.Context, req primary.CreateFocusAreaRequest) (*primary.FocusArea, error) {
	plan, err := s.planRepo.GetByID(ctx, req.PlanID)
	found, err := lookupErr(err)
	if err != nil {
		return nil, fmt.Errorf("failed to validate plan: %w", err)
	}

	guardCtx := coreplan.CreateChildContext{
		ParentKind:    "plan",
		ParentID:      req.PlanID,
		ParentExists:  found,
		ParentDeleted: found && plan.DeletedAt != "",
		Title:         req.Title,
	}
	if result := coreplan.CanCreateChild(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	var created *secondary.FocusAreaRecord
	err = withinTx(ctx, s.tx, func(ctx context.Context) error {
		nextID, err := s.focusAreaRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate focus area ID: %w", err)
		}
		sortOrder, err := s.focusAreaRepo.NextSortOrder(ctx, req.PlanID)
		if err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}

		record := &secondary.FocusAreaRecord{
			ID:          nextID,
			PlanID:      req.PlanID,
			Title:       req.Title,
			Description: req.Description,
			Status:      string(corestatus.NotStarted),
			SortOrder:   sortOrder,
		}
		if err := s.focusAreaRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create focus area: %w", err)
		}

		created, err = s.focusAreaRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created focus area: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recordToFocusArea(created), nil
}

// GetFocusArea retrieves a focus area by ID.
func (s *FocusAreaServiceImpl) GetFocusArea(ctx context.Context, focusAreaID string) (*primary.FocusArea, error) {
	record, err := s.focusAreaRepo.GetByID(ctx, focusAreaID)
	if err != nil {
		return nil, err
	}
	return recordToFocusArea(record), nil
}

// ListFocusAreas lists focus areas with optional filters.
func (s *FocusAreaServiceImpl) ListFocusAreas(ctx context.Context, filters primary.FocusAreaFilters) ([]*primary.FocusArea, error) {
	records, err := s.focusAreaRepo.List(ctx, secondary.FocusAreaFilters{
		PlanID:         filters.PlanID,
		Status:         filters.Status,
		IncludeDeleted: filters.IncludeDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list focus areas: %w", err)
	}

	focusAreas := make([]*primary.FocusArea, len(records))
	for i, r := range records {
		focusAreas[i] = recordToFocusArea(r)
	}
	return focusAreas, nil
}

// UpdateFocusArea updates a focus area's title and/or description.
func (s *FocusAreaServiceImpl) UpdateFocusArea(ctx context.Context, req primary.UpdateNodeRequest) error {
	record := &secondary.FocusAreaRecord{
		ID:          req.NodeID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   -1,
	}
	return s.focusAreaRepo.Update(ctx, record)
}

// ReorderFocusArea sets the focus area's sort order.
func (s *FocusAreaServiceImpl) ReorderFocusArea(ctx context.Context, focusAreaID string, sortOrder int) error {
	guardCtx := coreplan.ReorderContext{Kind: "focus area", ID: focusAreaID, SortOrder: sortOrder}
	if result := coreplan.CanReorder(guardCtx); !result.Allowed {
		return result.Error()
	}
	return s.focusAreaRepo.Update(ctx, &secondary.FocusAreaRecord{ID: focusAreaID, SortOrder: sortOrder})
}

// DeleteFocusArea soft-deletes a focus area.
// Plans carry no rolled-up status, so nothing cascades.
func (s *FocusAreaServiceImpl) DeleteFocusArea(ctx context.Context, focusAreaID string) error {
	record, err := s.focusAreaRepo.GetByID(ctx, focusAreaID)
	if err != nil {
		return err
	}

	guardCtx := coreplan.DeleteContext{Kind: "focus area", ID: focusAreaID, IsDeleted: record.DeletedAt != ""}
	if result := coreplan.CanDelete(guardCtx); !result.Allowed {
		return result.Error()
	}

	return s.focusAreaRepo.SoftDelete(ctx, focusAreaID)
}

// RestoreFocusArea restores a soft-deleted focus area.
func (s *FocusAreaServiceImpl) RestoreFocusArea(ctx context.Context, focusAreaID string) error {
	record, err := s.focusAreaRepo.GetByID(ctx, focusAreaID)
	if err != nil {
		return err
	}
	plan, err := s.planRepo.GetByID(ctx, record.PlanID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	guardCtx := coreplan.RestoreContext{
		Kind:          "focus area",
		ID:            focusAreaID,
		IsDeleted:     record.DeletedAt != "",
		ParentKind:    "plan",
		ParentID:      plan.ID,
		ParentDeleted: plan.DeletedAt != "",
	}
	if result := coreplan.CanRestore(guardCtx); !result.Allowed {
		return result.Error()
	}

	return s.focusAreaRepo.Restore(ctx, focusAreaID)
}

// SetFocusAreaStatus sets a focus area's status directly.
func (s *FocusAreaServiceImpl) SetFocusAreaStatus(ctx context.Context, focusAreaID, status string) (*primary.CascadeResult, error) {
	var result *primary.CascadeResult
	err := withinTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		result, err = s.rollup.UpdateStatus(ctx, primary.UpdateStatusRequest{
			Level:  string(corerollup.LevelFocusArea),
			NodeID: focusAreaID,
			Status: status,
		})
		return err
	})
	return result, err
}

// RecomputeFocusArea rolls the focus area's status up from its live objectives.
func (s *FocusAreaServiceImpl) RecomputeFocusArea(ctx context.Context, focusAreaID string) (*primary.CascadeResult, error) {
	if _, err := s.focusAreaRepo.GetByID(ctx, focusAreaID); err != nil {
		return nil, err
	}

	var result *primary.CascadeResult
	err := withinTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		result, err = s.rollup.PropagateUp(ctx, string(corerollup.LevelFocusArea), focusAreaID)
		return err
	})
	return result, err
}

// Helper methods

func recordToFocusArea(r *secondary.FocusAreaRecord) *primary.FocusArea {
	return &primary.FocusArea{
		ID:          r.ID,
		PlanID:      r.PlanID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// Ensure FocusAreaServiceImpl implements the interface
var _ primary.FocusAreaService = (*FocusAreaServiceImpl)(nil)

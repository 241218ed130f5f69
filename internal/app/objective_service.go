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

// ObjectiveServiceImpl implements the ObjectiveService interface.
type ObjectiveServiceImpl struct {
	objectiveRepo secondary.ObjectiveRepository
	focusAreaRepo secondary.FocusAreaRepository
	rollup        primary.RollupService
	tx            secondary.Transactor
}

// NewObjectiveService creates a new ObjectiveService with injected dependencies.
func NewObjectiveService(
	objectiveRepo secondary.ObjectiveRepository,
	focusAreaRepo secondary.FocusAreaRepository,
	rollup primary.RollupService,
	tx secondary.Transactor,
) *ObjectiveServiceImpl {
	return &ObjectiveServiceImpl{
		objectiveRepo: objectiveRepo,
		focusAreaRepo: focusAreaRepo,
		rollup:        rollup,
		tx:            tx,
	}
}

// CreateObjective creates a new objective and re-rolls its focus area,
// since a new not_started child can pull an on_track focus area down.
func (s *ObjectiveServiceImpl) CreateObjective(ctx context.Context, req primary.CreateObjectiveRequest) (*primary.Objective, error) {
	focusArea, err := s.focusAreaRepo.GetByID(ctx, req.FocusAreaID)
	found, err := lookupErr(err)
	if err != nil {
		return nil, fmt.Errorf("failed to validate focus area: %w", err)
	}

	guardCtx := coreplan.CreateChildContext{
		ParentKind:    "focus area",
		ParentID:      req.FocusAreaID,
		ParentExists:  found,
		ParentDeleted: found && focusArea.DeletedAt != "",
		Title:         req.Title,
	}
	if result := coreplan.CanCreateChild(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	var created *secondary.ObjectiveRecord
	err = withinTx(ctx, s.tx, func(ctx context.Context) error {
		nextID, err := s.objectiveRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate objective ID: %w", err)
		}
		sortOrder, err := s.objectiveRepo.NextSortOrder(ctx, req.FocusAreaID)
		if err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}

		record := &secondary.ObjectiveRecord{
			ID:          nextID,
			FocusAreaID: req.FocusAreaID,
			Title:       req.Title,
			Description: req.Description,
			Status:      string(corestatus.NotStarted),
			SortOrder:   sortOrder,
		}
		if err := s.objectiveRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create objective: %w", err)
		}

		if _, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelFocusArea), req.FocusAreaID); err != nil {
			return err
		}

		created, err = s.objectiveRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created objective: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recordToObjective(created), nil
}

// GetObjective retrieves an objective by ID.
func (s *ObjectiveServiceImpl) GetObjective(ctx context.Context, objectiveID string) (*primary.Objective, error) {
	record, err := s.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return nil, err
	}
	return recordToObjective(record), nil
}

// ListObjectives lists objectives with optional filters.
func (s *ObjectiveServiceImpl) ListObjectives(ctx context.Context, filters primary.ObjectiveFilters) ([]*primary.Objective, error) {
	records, err := s.objectiveRepo.List(ctx, secondary.ObjectiveFilters{
		FocusAreaID:    filters.FocusAreaID,
		Status:         filters.Status,
		IncludeDeleted: filters.IncludeDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}

	objectives := make([]*primary.Objective, len(records))
	for i, r := range records {
		objectives[i] = recordToObjective(r)
	}
	return objectives, nil
}

// UpdateObjective updates an objective's title and/or description.
func (s *ObjectiveServiceImpl) UpdateObjective(ctx context.Context, req primary.UpdateNodeRequest) error {
	return s.objectiveRepo.Update(ctx, &secondary.ObjectiveRecord{
		ID:          req.NodeID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   -1,
	})
}

// ReorderObjective sets the objective's sort order.
func (s *ObjectiveServiceImpl) ReorderObjective(ctx context.Context, objectiveID string, sortOrder int) error {
	guardCtx := coreplan.ReorderContext{Kind: "objective", ID: objectiveID, SortOrder: sortOrder}
	if result := coreplan.CanReorder(guardCtx); !result.Allowed {
		return result.Error()
	}
	return s.objectiveRepo.Update(ctx, &secondary.ObjectiveRecord{ID: objectiveID, SortOrder: sortOrder})
}

// DeleteObjective soft-deletes an objective and re-rolls its focus area.
func (s *ObjectiveServiceImpl) DeleteObjective(ctx context.Context, objectiveID string) error {
	record, err := s.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return err
	}

	guardCtx := coreplan.DeleteContext{Kind: "objective", ID: objectiveID, IsDeleted: record.DeletedAt != ""}
	if result := coreplan.CanDelete(guardCtx); !result.Allowed {
		return result.Error()
	}

	return withinTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.objectiveRepo.SoftDelete(ctx, objectiveID); err != nil {
			return err
		}
		_, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelFocusArea), record.FocusAreaID)
		return err
	})
}

// RestoreObjective restores a soft-deleted objective and re-rolls its focus area.
func (s *ObjectiveServiceImpl) RestoreObjective(ctx context.Context, objectiveID string) error {
	record, err := s.objectiveRepo.GetByID(ctx, objectiveID)
	if err != nil {
		return err
	}
	focusArea, err := s.focusAreaRepo.GetByID(ctx, record.FocusAreaID)
	if err != nil {
		return fmt.Errorf("failed to load focus area: %w", err)
	}

	guardCtx := coreplan.RestoreContext{
		Kind:          "objective",
		ID:            objectiveID,
		IsDeleted:     record.DeletedAt != "",
		ParentKind:    "focus area",
		ParentID:      focusArea.ID,
		ParentDeleted: focusArea.DeletedAt != "",
	}
	if result := coreplan.CanRestore(guardCtx); !result.Allowed {
		return result.Error()
	}

	return withinTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.objectiveRepo.Restore(ctx, objectiveID); err != nil {
			return err
		}
		_, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelFocusArea), record.FocusAreaID)
		return err
	})
}

// SetObjectiveStatus sets an objective's status directly and cascades to its focus area.
func (s *ObjectiveServiceImpl) SetObjectiveStatus(ctx context.Context, objectiveID, status string) (*primary.CascadeResult, error) {
	var result *primary.CascadeResult
	err := withinTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		result, err = s.rollup.UpdateStatus(ctx, primary.UpdateStatusRequest{
			Level:  string(corerollup.LevelObjective),
			NodeID: objectiveID,
			Status: status,
		})
		return err
	})
	return result, err
}

// RecomputeObjective rolls the objective's status up from its live activities.
func (s *ObjectiveServiceImpl) RecomputeObjective(ctx context.Context, objectiveID string) (*primary.CascadeResult, error) {
	if _, err := s.objectiveRepo.GetByID(ctx, objectiveID); err != nil {
		return nil, err
	}

	var result *primary.CascadeResult
	err := withinTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		result, err = s.rollup.PropagateUp(ctx, string(corerollup.LevelObjective), objectiveID)
		return err
	})
	return result, err
}

// Helper methods

func recordToObjective(r *secondary.ObjectiveRecord) *primary.Objective {
	return &primary.Objective{
		ID:          r.ID,
		FocusAreaID: r.FocusAreaID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// Ensure ObjectiveServiceImpl implements the interface
var _ primary.ObjectiveService = (*ObjectiveServiceImpl)(nil)

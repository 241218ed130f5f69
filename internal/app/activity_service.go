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

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	activityRepo  secondary.ActivityRepository
	objectiveRepo secondary.ObjectiveRepository
	rollup        primary.RollupService
	tx            secondary.Transactor
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(
	activityRepo secondary.ActivityRepository,
	objectiveRepo secondary.ObjectiveRepository,
	rollup primary.RollupService,
	tx secondary.Transactor,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		activityRepo:  activityRepo,
		objectiveRepo: objectiveRepo,
		rollup:        rollup,
		tx:            tx,
	}
}

// CreateActivity creates a new activity and re-rolls its objective.
func (s *ActivityServiceImpl) CreateActivity(ctx context.Context, req primary.CreateActivityRequest) (*primary.Activity, error) {
	objective, err := s.objectiveRepo.GetByID(ctx, req.ObjectiveID)
	found, err := lookupErr(err)
	if err != nil {
		return nil, fmt.Errorf("failed to validate objective: %w", err)
	}

	guardCtx := coreplan.CreateChildContext{
		ParentKind:    "objective",
		ParentID:      req.ObjectiveID,
		ParentExists:  found,
		ParentDeleted: found && objective.DeletedAt != "",
		Title:         req.Title,
	}
	if result := coreplan.CanCreateChild(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	var created *secondary.ActivityRecord
	err = withinTx(ctx, s.tx, func(ctx context.Context) error {
		nextID, err := s.activityRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate activity ID: %w", err)
		}
		sortOrder, err := s.activityRepo.NextSortOrder(ctx, req.ObjectiveID)
		if err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}

		record := &secondary.ActivityRecord{
			ID:          nextID,
			ObjectiveID: req.ObjectiveID,
			Title:       req.Title,
			Description: req.Description,
			Status:      string(corestatus.NotStarted),
			SortOrder:   sortOrder,
		}
		if err := s.activityRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create activity: %w", err)
		}

		if _, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelObjective), req.ObjectiveID); err != nil {
			return err
		}

		created, err = s.activityRepo.GetByID(ctx, nextID)
		if err != nil {
			return fmt.Errorf("failed to fetch created activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recordToActivity(created), nil
}

// GetActivity retrieves an activity by ID.
func (s *ActivityServiceImpl) GetActivity(ctx context.Context, activityID string) (*primary.Activity, error) {
	record, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return recordToActivity(record), nil
}

// ListActivities lists activities with optional filters.
func (s *ActivityServiceImpl) ListActivities(ctx context.Context, filters primary.ActivityFilters) ([]*primary.Activity, error) {
	records, err := s.activityRepo.List(ctx, secondary.ActivityFilters{
		ObjectiveID:    filters.ObjectiveID,
		Status:         filters.Status,
		IncludeDeleted: filters.IncludeDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*primary.Activity, len(records))
	for i, r := range records {
		activities[i] = recordToActivity(r)
	}
	return activities, nil
}

// UpdateActivity updates an activity's title and/or description.
func (s *ActivityServiceImpl) UpdateActivity(ctx context.Context, req primary.UpdateNodeRequest) error {
	return s.activityRepo.Update(ctx, &secondary.ActivityRecord{
		ID:          req.NodeID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   -1,
	})
}

// ReorderActivity sets the activity's sort order.
func (s *ActivityServiceImpl) ReorderActivity(ctx context.Context, activityID string, sortOrder int) error {
	guardCtx := coreplan.ReorderContext{Kind: "activity", ID: activityID, SortOrder: sortOrder}
	if result := coreplan.CanReorder(guardCtx); !result.Allowed {
		return result.Error()
	}
	return s.activityRepo.Update(ctx, &secondary.ActivityRecord{ID: activityID, SortOrder: sortOrder})
}

// DeleteActivity soft-deletes an activity and re-rolls its objective.
// Removing the last live activity resets the objective to not_started.
func (s *ActivityServiceImpl) DeleteActivity(ctx context.Context, activityID string) error {
	record, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}

	guardCtx := coreplan.DeleteContext{Kind: "activity", ID: activityID, IsDeleted: record.DeletedAt != ""}
	if result := coreplan.CanDelete(guardCtx); !result.Allowed {
		return result.Error()
	}

	return withinTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.activityRepo.SoftDelete(ctx, activityID); err != nil {
			return err
		}
		_, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelObjective), record.ObjectiveID)
		return err
	})
}

// RestoreActivity restores a soft-deleted activity and re-rolls its objective.
func (s *ActivityServiceImpl) RestoreActivity(ctx context.Context, activityID string) error {
	record, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	objective, err := s.objectiveRepo.GetByID(ctx, record.ObjectiveID)
	if err != nil {
		return fmt.Errorf("failed to load objective: %w", err)
	}

	guardCtx := coreplan.RestoreContext{
		Kind:          "activity",
		ID:            activityID,
		IsDeleted:     record.DeletedAt != "",
		ParentKind:    "objective",
		ParentID:      objective.ID,
		ParentDeleted: objective.DeletedAt != "",
	}
	if result := coreplan.CanRestore(guardCtx); !result.Allowed {
		return result.Error()
	}

	return withinTx(ctx, s.tx, func(ctx context.Context) error {
		if err := s.activityRepo.Restore(ctx, activityID); err != nil {
			return err
		}
		_, err := s.rollup.PropagateUp(ctx, string(corerollup.LevelObjective), record.ObjectiveID)
		return err
	})
}

// SetActivityStatus sets an activity's status and cascades to its objective and focus area.
func (s *ActivityServiceImpl) SetActivityStatus(ctx context.Context, activityID, status string) (*primary.CascadeResult, error) {
	var result *primary.CascadeResult
	err := withinTx(ctx, s.tx, func(ctx context.Context) error {
		var err error
		result, err = s.rollup.UpdateStatus(ctx, primary.UpdateStatusRequest{
			Level:  string(corerollup.LevelActivity),
			NodeID: activityID,
			Status: status,
		})
		return err
	})
	return result, err
}

// Helper methods

func recordToActivity(r *secondary.ActivityRecord) *primary.Activity {
	return &primary.Activity{
		ID:          r.ID,
		ObjectiveID: r.ObjectiveID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// Ensure ActivityServiceImpl implements the interface
var _ primary.ActivityService = (*ActivityServiceImpl)(nil)

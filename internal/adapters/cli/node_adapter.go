package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	corerollup "github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/ports/primary"
)

// nodeView is the level-independent shape the adapter prints.
type nodeView struct {
	ID        string
	ParentID  string
	Title     string
	Status    string
	SortOrder int
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// NodeAdapter translates focus area, objective and activity CLI operations to their services.
// Every method takes the level it operates on.
type NodeAdapter struct {
	focusAreas primary.FocusAreaService
	objectives primary.ObjectiveService
	activities primary.ActivityService
	style      *StatusStyle
	out        io.Writer
}

// NewNodeAdapter creates a new NodeAdapter.
func NewNodeAdapter(
	focusAreas primary.FocusAreaService,
	objectives primary.ObjectiveService,
	activities primary.ActivityService,
	style *StatusStyle,
	out io.Writer,
) *NodeAdapter {
	if style == nil {
		style = NewStatusStyle(false)
	}
	return &NodeAdapter{
		focusAreas: focusAreas,
		objectives: objectives,
		activities: activities,
		style:      style,
		out:        out,
	}
}

// Noun returns the display name of a level.
func Noun(level corerollup.Level) string {
	switch level {
	case corerollup.LevelFocusArea:
		return "focus area"
	case corerollup.LevelObjective:
		return "objective"
	case corerollup.LevelActivity:
		return "activity"
	}
	return string(level)
}

func parentNoun(level corerollup.Level) string {
	switch level {
	case corerollup.LevelFocusArea:
		return "Plan"
	case corerollup.LevelObjective:
		return "Focus area"
	}
	return "Objective"
}

func unknownLevel(level corerollup.Level) error {
	return fmt.Errorf("unknown level %q", level)
}

// Create creates a node under parentID.
func (a *NodeAdapter) Create(ctx context.Context, level corerollup.Level, parentID, title, description string) error {
	var view *nodeView
	switch level {
	case corerollup.LevelFocusArea:
		fa, err := a.focusAreas.CreateFocusArea(ctx, primary.CreateFocusAreaRequest{PlanID: parentID, Title: title, Description: description})
		if err != nil {
			return err
		}
		view = focusAreaView(fa)
	case corerollup.LevelObjective:
		obj, err := a.objectives.CreateObjective(ctx, primary.CreateObjectiveRequest{FocusAreaID: parentID, Title: title, Description: description})
		if err != nil {
			return err
		}
		view = objectiveView(obj)
	case corerollup.LevelActivity:
		act, err := a.activities.CreateActivity(ctx, primary.CreateActivityRequest{ObjectiveID: parentID, Title: title, Description: description})
		if err != nil {
			return err
		}
		view = activityView(act)
	default:
		return unknownLevel(level)
	}

	fmt.Fprintf(a.out, "✓ Created %s %s: %s\n", Noun(level), view.ID, view.Title)
	fmt.Fprintf(a.out, "  %s: %s\n", parentNoun(level), view.ParentID)
	fmt.Fprintf(a.out, "  Status: %s %s\n", a.style.Marker(view.Status), a.style.Label(view.Status))
	return nil
}

// List lists nodes of a level, optionally scoped to a parent and status.
func (a *NodeAdapter) List(ctx context.Context, level corerollup.Level, parentID, status string, includeDeleted bool) error {
	var views []*nodeView
	switch level {
	case corerollup.LevelFocusArea:
		items, err := a.focusAreas.ListFocusAreas(ctx, primary.FocusAreaFilters{PlanID: parentID, Status: status, IncludeDeleted: includeDeleted})
		if err != nil {
			return fmt.Errorf("failed to list focus areas: %w", err)
		}
		for _, item := range items {
			views = append(views, focusAreaView(item))
		}
	case corerollup.LevelObjective:
		items, err := a.objectives.ListObjectives(ctx, primary.ObjectiveFilters{FocusAreaID: parentID, Status: status, IncludeDeleted: includeDeleted})
		if err != nil {
			return fmt.Errorf("failed to list objectives: %w", err)
		}
		for _, item := range items {
			views = append(views, objectiveView(item))
		}
	case corerollup.LevelActivity:
		items, err := a.activities.ListActivities(ctx, primary.ActivityFilters{ObjectiveID: parentID, Status: status, IncludeDeleted: includeDeleted})
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}
		for _, item := range items {
			views = append(views, activityView(item))
		}
	default:
		return unknownLevel(level)
	}

	if len(views) == 0 {
		fmt.Fprintf(a.out, "No %s records found\n", Noun(level))
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-10s %-5s %-14s %s\n", "ID", "PARENT", "ORDER", "STATUS", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, v := range views {
		fmt.Fprintf(a.out, "%-10s %-10s %-5d %s %-12s %s%s\n",
			v.ID, v.ParentID, v.SortOrder, a.style.Marker(v.Status), v.Status, v.Title, deletedSuffix(v.DeletedAt))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays details for a single node.
func (a *NodeAdapter) Show(ctx context.Context, level corerollup.Level, id string) error {
	view, err := a.get(ctx, level, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%s: %s\n", Noun(level), view.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", view.Title)
	fmt.Fprintf(a.out, "%s: %s\n", parentNoun(level), view.ParentID)
	fmt.Fprintf(a.out, "Status:  %s %s\n", a.style.Marker(view.Status), a.style.Label(view.Status))
	fmt.Fprintf(a.out, "Order:   %d\n", view.SortOrder)
	fmt.Fprintf(a.out, "Created: %s\n", view.CreatedAt)
	fmt.Fprintf(a.out, "Updated: %s\n", view.UpdatedAt)
	if view.DeletedAt != "" {
		fmt.Fprintf(a.out, "Deleted: %s\n", view.DeletedAt)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *NodeAdapter) get(ctx context.Context, level corerollup.Level, id string) (*nodeView, error) {
	switch level {
	case corerollup.LevelFocusArea:
		fa, err := a.focusAreas.GetFocusArea(ctx, id)
		if err != nil {
			return nil, err
		}
		return focusAreaView(fa), nil
	case corerollup.LevelObjective:
		obj, err := a.objectives.GetObjective(ctx, id)
		if err != nil {
			return nil, err
		}
		return objectiveView(obj), nil
	case corerollup.LevelActivity:
		act, err := a.activities.GetActivity(ctx, id)
		if err != nil {
			return nil, err
		}
		return activityView(act), nil
	}
	return nil, unknownLevel(level)
}

// Rename updates a node's title and/or description.
func (a *NodeAdapter) Rename(ctx context.Context, level corerollup.Level, id, title, description string) error {
	if title == "" && description == "" {
		return fmt.Errorf("must specify at least --title or --description")
	}

	req := primary.UpdateNodeRequest{NodeID: id, Title: title, Description: description}
	var err error
	switch level {
	case corerollup.LevelFocusArea:
		err = a.focusAreas.UpdateFocusArea(ctx, req)
	case corerollup.LevelObjective:
		err = a.objectives.UpdateObjective(ctx, req)
	case corerollup.LevelActivity:
		err = a.activities.UpdateActivity(ctx, req)
	default:
		return unknownLevel(level)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", Noun(level), err)
	}

	fmt.Fprintf(a.out, "✓ %s %s updated\n", Noun(level), id)
	return nil
}

// Move sets a node's sort order among its siblings.
func (a *NodeAdapter) Move(ctx context.Context, level corerollup.Level, id string, sortOrder int) error {
	var err error
	switch level {
	case corerollup.LevelFocusArea:
		err = a.focusAreas.ReorderFocusArea(ctx, id, sortOrder)
	case corerollup.LevelObjective:
		err = a.objectives.ReorderObjective(ctx, id, sortOrder)
	case corerollup.LevelActivity:
		err = a.activities.ReorderActivity(ctx, id, sortOrder)
	default:
		return unknownLevel(level)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s %s moved to position %d\n", Noun(level), id, sortOrder)
	return nil
}

// Delete soft-deletes a node.
func (a *NodeAdapter) Delete(ctx context.Context, level corerollup.Level, id string) error {
	var err error
	switch level {
	case corerollup.LevelFocusArea:
		err = a.focusAreas.DeleteFocusArea(ctx, id)
	case corerollup.LevelObjective:
		err = a.objectives.DeleteObjective(ctx, id)
	case corerollup.LevelActivity:
		err = a.activities.DeleteActivity(ctx, id)
	default:
		return unknownLevel(level)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s %s deleted\n", Noun(level), id)
	return nil
}

// Restore restores a soft-deleted node.
func (a *NodeAdapter) Restore(ctx context.Context, level corerollup.Level, id string) error {
	var err error
	switch level {
	case corerollup.LevelFocusArea:
		err = a.focusAreas.RestoreFocusArea(ctx, id)
	case corerollup.LevelObjective:
		err = a.objectives.RestoreObjective(ctx, id)
	case corerollup.LevelActivity:
		err = a.activities.RestoreActivity(ctx, id)
	default:
		return unknownLevel(level)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s %s restored\n", Noun(level), id)
	return nil
}

// SetStatus sets a node's status directly and prints the cascade.
func (a *NodeAdapter) SetStatus(ctx context.Context, level corerollup.Level, id, status string) error {
	var (
		result *primary.CascadeResult
		err    error
	)
	switch level {
	case corerollup.LevelFocusArea:
		result, err = a.focusAreas.SetFocusAreaStatus(ctx, id, status)
	case corerollup.LevelObjective:
		result, err = a.objectives.SetObjectiveStatus(ctx, id, status)
	case corerollup.LevelActivity:
		result, err = a.activities.SetActivityStatus(ctx, id, status)
	default:
		return unknownLevel(level)
	}
	return a.reportCascade(result, err)
}

// Recompute rolls a node's status up from its live children and prints the cascade.
func (a *NodeAdapter) Recompute(ctx context.Context, level corerollup.Level, id string) error {
	var (
		result *primary.CascadeResult
		err    error
	)
	switch level {
	case corerollup.LevelFocusArea:
		result, err = a.focusAreas.RecomputeFocusArea(ctx, id)
	case corerollup.LevelObjective:
		result, err = a.objectives.RecomputeObjective(ctx, id)
	case corerollup.LevelActivity:
		return fmt.Errorf("activities have no children to roll up; set the status directly")
	default:
		return unknownLevel(level)
	}
	return a.reportCascade(result, err)
}

// reportCascade prints every step written. On a halted cascade it prints either that
// nothing was saved or the steps that stayed saved, then returns the error.
func (a *NodeAdapter) reportCascade(result *primary.CascadeResult, err error) error {
	if err != nil {
		var cascadeErr *primary.CascadeError
		if !errors.As(err, &cascadeErr) {
			return err
		}
		if cascadeErr.RolledBack {
			fmt.Fprintln(a.out, "No changes were saved; the status update was rolled back.")
			return err
		}
		if len(cascadeErr.Completed) > 0 {
			fmt.Fprintln(a.out, "Saved before the cascade halted:")
			a.printSteps(cascadeErr.Completed)
		}
		return err
	}

	a.printSteps(result.Steps)
	return nil
}

func (a *NodeAdapter) printSteps(steps []primary.CascadeStep) {
	for _, step := range steps {
		if !step.Changed {
			fmt.Fprintf(a.out, "  = %s %s unchanged (%s %s)\n",
				Noun(corerollup.Level(step.Level)), step.NodeID, a.style.Marker(step.NewStatus), step.NewStatus)
			continue
		}
		fmt.Fprintf(a.out, "✓ %s %s: %s → %s %s (%s)\n",
			Noun(corerollup.Level(step.Level)), step.NodeID,
			step.OldStatus, a.style.Marker(step.NewStatus), a.style.Label(step.NewStatus), step.Cause)
	}
}

func focusAreaView(fa *primary.FocusArea) *nodeView {
	return &nodeView{
		ID:        fa.ID,
		ParentID:  fa.PlanID,
		Title:     fa.Title,
		Status:    fa.Status,
		SortOrder: fa.SortOrder,
		CreatedAt: fa.CreatedAt,
		UpdatedAt: fa.UpdatedAt,
		DeletedAt: fa.DeletedAt,
	}
}

func objectiveView(obj *primary.Objective) *nodeView {
	return &nodeView{
		ID:        obj.ID,
		ParentID:  obj.FocusAreaID,
		Title:     obj.Title,
		Status:    obj.Status,
		SortOrder: obj.SortOrder,
		CreatedAt: obj.CreatedAt,
		UpdatedAt: obj.UpdatedAt,
		DeletedAt: obj.DeletedAt,
	}
}

func activityView(act *primary.Activity) *nodeView {
	return &nodeView{
		ID:        act.ID,
		ParentID:  act.ObjectiveID,
		Title:     act.Title,
		Status:    act.Status,
		SortOrder: act.SortOrder,
		CreatedAt: act.CreatedAt,
		UpdatedAt: act.UpdatedAt,
		DeletedAt: act.DeletedAt,
	}
}

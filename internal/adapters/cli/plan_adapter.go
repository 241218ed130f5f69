package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/compass/internal/ports/primary"
)

// Tree output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// PlanAdapter translates plan CLI operations to PlanService calls.
type PlanAdapter struct {
	service primary.PlanService
	style   *StatusStyle
	out     io.Writer
}

// NewPlanAdapter creates a new PlanAdapter with the given service.
func NewPlanAdapter(service primary.PlanService, style *StatusStyle, out io.Writer) *PlanAdapter {
	if style == nil {
		style = NewStatusStyle(false)
	}
	return &PlanAdapter{
		service: service,
		style:   style,
		out:     out,
	}
}

// Create creates a new plan.
func (a *PlanAdapter) Create(ctx context.Context, title, description string) error {
	resp, err := a.service.CreatePlan(ctx, primary.CreatePlanRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created plan %s: %s\n", resp.PlanID, resp.Plan.Title)
	return nil
}

// List lists plans.
func (a *PlanAdapter) List(ctx context.Context, includeDeleted bool) error {
	plans, err := a.service.ListPlans(ctx, primary.PlanFilters{IncludeDeleted: includeDeleted})
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}

	if len(plans) == 0 {
		fmt.Fprintln(a.out, "No plans found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %s\n", "ID", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, p := range plans {
		fmt.Fprintf(a.out, "%-12s %s%s\n", p.ID, p.Title, deletedSuffix(p.DeletedAt))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single plan.
func (a *PlanAdapter) Show(ctx context.Context, planID string) error {
	plan, err := a.service.GetPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}

	fmt.Fprintf(a.out, "\nPlan:    %s\n", plan.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", plan.Title)
	if plan.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", plan.Description)
	}
	fmt.Fprintf(a.out, "Created: %s\n", plan.CreatedAt)
	fmt.Fprintf(a.out, "Updated: %s\n", plan.UpdatedAt)
	if plan.DeletedAt != "" {
		fmt.Fprintf(a.out, "Deleted: %s\n", plan.DeletedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Update updates a plan's title and/or description.
func (a *PlanAdapter) Update(ctx context.Context, planID, title, description string) error {
	if title == "" && description == "" {
		return fmt.Errorf("must specify at least --title or --description")
	}

	err := a.service.UpdatePlan(ctx, primary.UpdatePlanRequest{
		PlanID:      planID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Plan %s updated\n", planID)
	return nil
}

// Delete soft-deletes a plan.
func (a *PlanAdapter) Delete(ctx context.Context, planID string) error {
	if err := a.service.DeletePlan(ctx, planID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Plan %s deleted\n", planID)
	return nil
}

// Restore restores a soft-deleted plan.
func (a *PlanAdapter) Restore(ctx context.Context, planID string) error {
	if err := a.service.RestorePlan(ctx, planID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Plan %s restored\n", planID)
	return nil
}

// Tree prints the plan hierarchy in the given format (text or yaml).
func (a *PlanAdapter) Tree(ctx context.Context, planID, format string, includeDeleted bool) error {
	tree, err := a.service.GetPlanTree(ctx, planID, includeDeleted)
	if err != nil {
		return fmt.Errorf("failed to load plan tree: %w", err)
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		a.renderTree(tree)
		return nil
	case FormatYAML:
		return writeTreeYAML(a.out, tree)
	default:
		return fmt.Errorf("unknown format %q (expected %s or %s)", format, FormatText, FormatYAML)
	}
}

func (a *PlanAdapter) renderTree(tree *primary.PlanTree) {
	fmt.Fprintf(a.out, "%s %s%s\n", tree.Plan.ID, tree.Plan.Title, deletedSuffix(tree.Plan.DeletedAt))
	if len(tree.FocusAreas) == 0 {
		fmt.Fprintln(a.out, "└── (no focus areas)")
		return
	}

	for i, fa := range tree.FocusAreas {
		lastFA := i == len(tree.FocusAreas)-1
		a.treeLine("", lastFA, fa.FocusArea.ID, fa.FocusArea.Title, fa.FocusArea.Status, fa.FocusArea.DeletedAt)

		faPrefix := childPrefix("", lastFA)
		for j, obj := range fa.Objectives {
			lastObj := j == len(fa.Objectives)-1
			a.treeLine(faPrefix, lastObj, obj.Objective.ID, obj.Objective.Title, obj.Objective.Status, obj.Objective.DeletedAt)

			objPrefix := childPrefix(faPrefix, lastObj)
			for k, act := range obj.Activities {
				a.treeLine(objPrefix, k == len(obj.Activities)-1, act.ID, act.Title, act.Status, act.DeletedAt)
			}
		}
	}
}

func (a *PlanAdapter) treeLine(prefix string, last bool, id, title, status, deletedAt string) {
	fmt.Fprintf(a.out, "%s%s%s %s %s [%s]%s\n",
		prefix, branch(last), a.style.Marker(status), id, title, a.style.Label(status), deletedSuffix(deletedAt))
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func childPrefix(prefix string, last bool) string {
	if last {
		return prefix + "    "
	}
	return prefix + "│   "
}

func deletedSuffix(deletedAt string) string {
	if deletedAt == "" {
		return ""
	}
	return " (deleted)"
}

// YAML export shapes. Field names are part of the export format.
type yamlPlan struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description,omitempty"`
	Deleted     bool            `yaml:"deleted,omitempty"`
	FocusAreas  []yamlFocusArea `yaml:"focus_areas"`
}

type yamlFocusArea struct {
	yamlNode   `yaml:",inline"`
	Objectives []yamlObjective `yaml:"objectives"`
}

type yamlObjective struct {
	yamlNode   `yaml:",inline"`
	Activities []yamlNode `yaml:"activities"`
}

type yamlNode struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Status    string `yaml:"status"`
	SortOrder int    `yaml:"sort_order"`
	Deleted   bool   `yaml:"deleted,omitempty"`
}

func writeTreeYAML(w io.Writer, tree *primary.PlanTree) error {
	doc := yamlPlan{
		ID:          tree.Plan.ID,
		Title:       tree.Plan.Title,
		Description: tree.Plan.Description,
		Deleted:     tree.Plan.DeletedAt != "",
		FocusAreas:  []yamlFocusArea{},
	}
	for _, fa := range tree.FocusAreas {
		faDoc := yamlFocusArea{
			yamlNode: yamlNode{
				ID:        fa.FocusArea.ID,
				Title:     fa.FocusArea.Title,
				Status:    fa.FocusArea.Status,
				SortOrder: fa.FocusArea.SortOrder,
				Deleted:   fa.FocusArea.DeletedAt != "",
			},
			Objectives: []yamlObjective{},
		}
		for _, obj := range fa.Objectives {
			objDoc := yamlObjective{
				yamlNode: yamlNode{
					ID:        obj.Objective.ID,
					Title:     obj.Objective.Title,
					Status:    obj.Objective.Status,
					SortOrder: obj.Objective.SortOrder,
					Deleted:   obj.Objective.DeletedAt != "",
				},
				Activities: []yamlNode{},
			}
			for _, act := range obj.Activities {
				objDoc.Activities = append(objDoc.Activities, yamlNode{
					ID:        act.ID,
					Title:     act.Title,
					Status:    act.Status,
					SortOrder: act.SortOrder,
					Deleted:   act.DeletedAt != "",
				})
			}
			faDoc.Objectives = append(faDoc.Objectives, objDoc)
		}
		doc.FocusAreas = append(doc.FocusAreas, faDoc)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode plan tree: %w", err)
	}
	return enc.Close()
}

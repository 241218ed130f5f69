package plan

import (
	"fmt"
	"strings"

	"github.com/example/compass/internal/core/rollup"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult = rollup.GuardResult

// CreateChildContext provides context for creating a node under a parent.
type CreateChildContext struct {
	ParentKind    string // "plan", "focus area", "objective"
	ParentID      string
	ParentExists  bool
	ParentDeleted bool
	Title         string
}

// CanCreateChild evaluates whether a node can be created under a parent.
// Rules:
// - Title must not be blank
// - Parent must exist
// - Parent must not be deleted
func CanCreateChild(ctx CreateChildContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "title is required",
		}
	}

	if !ctx.ParentExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s %s not found", ctx.ParentKind, ctx.ParentID),
		}
	}

	if ctx.ParentDeleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot add to deleted %s %s. Restore it first", ctx.ParentKind, ctx.ParentID),
		}
	}

	return GuardResult{Allowed: true}
}

// RestoreContext provides context for restoring a soft-deleted node.
type RestoreContext struct {
	Kind          string
	ID            string
	IsDeleted     bool
	ParentKind    string
	ParentID      string
	ParentDeleted bool
}

// CanRestore evaluates whether a soft-deleted node can be restored.
// Rules:
// - Node must currently be deleted
// - Parent must be live (restore parents first)
func CanRestore(ctx RestoreContext) GuardResult {
	if !ctx.IsDeleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s %s is not deleted", ctx.Kind, ctx.ID),
		}
	}

	if ctx.ParentDeleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot restore %s %s: %s %s is deleted", ctx.Kind, ctx.ID, ctx.ParentKind, ctx.ParentID),
		}
	}

	return GuardResult{Allowed: true}
}

// DeleteContext provides context for soft-deleting a node.
type DeleteContext struct {
	Kind      string
	ID        string
	IsDeleted bool
}

// CanDelete evaluates whether a node can be soft-deleted.
// Rules:
// - Node must not already be deleted
func CanDelete(ctx DeleteContext) GuardResult {
	if ctx.IsDeleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s %s is already deleted", ctx.Kind, ctx.ID),
		}
	}

	return GuardResult{Allowed: true}
}

// ReorderContext provides context for changing a node's sort order.
type ReorderContext struct {
	Kind      string
	ID        string
	SortOrder int
}

// CanReorder evaluates whether a sort order is acceptable.
// Rules:
// - Sort order must be non-negative
func CanReorder(ctx ReorderContext) GuardResult {
	if ctx.SortOrder < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("sort order for %s %s must be >= 0 (got %d)", ctx.Kind, ctx.ID, ctx.SortOrder),
		}
	}

	return GuardResult{Allowed: true}
}

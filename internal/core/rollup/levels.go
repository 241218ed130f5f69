// Package rollup contains the pure business logic for cascading status up a strategic plan.
// This is part of the Functional Core - no I/O, only pure functions.
package rollup

import "fmt"

// Level identifies one tier of the rollup hierarchy.
type Level string

const (
	LevelActivity  Level = "activity"
	LevelObjective Level = "objective"
	LevelFocusArea Level = "focus_area"
)

// MaxCascadeHops is the number of upward hops from an activity to its focus area.
const MaxCascadeHops = 2

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	switch l {
	case LevelActivity, LevelObjective, LevelFocusArea:
		return true
	}
	return false
}

// ParentLevel returns the level above l. Focus areas have no parent in scope:
// strategic plans do not carry a rolled-up status.
func (l Level) ParentLevel() (Level, bool) {
	switch l {
	case LevelActivity:
		return LevelObjective, true
	case LevelObjective:
		return LevelFocusArea, true
	}
	return "", false
}

// ChildLevel returns the level below l. Activities are leaves.
func (l Level) ChildLevel() (Level, bool) {
	switch l {
	case LevelFocusArea:
		return LevelObjective, true
	case LevelObjective:
		return LevelActivity, true
	}
	return "", false
}

// IsLeaf reports whether nodes at this level have no children.
func (l Level) IsLeaf() bool {
	_, ok := l.ChildLevel()
	return !ok
}

// NodeRef addresses a single node in the hierarchy.
type NodeRef struct {
	Level Level
	ID    string
}

// Ref builds a NodeRef.
func Ref(level Level, id string) NodeRef {
	return NodeRef{Level: level, ID: id}
}

func (n NodeRef) String() string {
	return fmt.Sprintf("%s %s", n.Level, n.ID)
}

// IsZero reports whether the ref is unset.
func (n NodeRef) IsZero() bool {
	return n.Level == "" && n.ID == ""
}

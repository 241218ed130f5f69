// Package plan contains the pure business logic for strategic plan entities.
// This is part of the Functional Core - no I/O, only pure functions.
package plan

import (
	"fmt"
	"strings"

	"github.com/example/compass/internal/core/rollup"
)

// ID prefixes for each entity.
const (
	PrefixPlan      = "PLAN"
	PrefixFocusArea = "FA"
	PrefixObjective = "OBJ"
	PrefixActivity  = "ACT"
)

// GenerateID generates an entity ID from the current max number.
// The format is PREFIX-XXX where XXX is a zero-padded 3-digit number.
func GenerateID(prefix string, currentMax int) string {
	return fmt.Sprintf("%s-%03d", prefix, currentMax+1)
}

// ParseNumber extracts the numeric portion from an ID with the given prefix.
// Returns -1 if the ID format is invalid.
func ParseNumber(prefix, id string) int {
	if !strings.HasPrefix(id, prefix+"-") {
		return -1
	}
	var num int
	_, err := fmt.Sscanf(id[len(prefix)+1:], "%d", &num)
	if err != nil || num < 0 {
		return -1
	}
	return num
}

// LevelForID infers the hierarchy level from an ID prefix.
// Plan IDs return false: plans are not part of the rollup.
func LevelForID(id string) (rollup.Level, bool) {
	switch {
	case ParseNumber(PrefixActivity, id) >= 0:
		return rollup.LevelActivity, true
	case ParseNumber(PrefixObjective, id) >= 0:
		return rollup.LevelObjective, true
	case ParseNumber(PrefixFocusArea, id) >= 0:
		return rollup.LevelFocusArea, true
	}
	return "", false
}

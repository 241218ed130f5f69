package plan

import (
	"testing"

	"github.com/example/compass/internal/core/rollup"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		prefix     string
		currentMax int
		expected   string
	}{
		{PrefixPlan, 0, "PLAN-001"},
		{PrefixFocusArea, 9, "FA-010"},
		{PrefixObjective, 41, "OBJ-042"},
		{PrefixActivity, 999, "ACT-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := GenerateID(tt.prefix, tt.currentMax)
			if result != tt.expected {
				t.Errorf("GenerateID(%q, %d) = %q, want %q", tt.prefix, tt.currentMax, result, tt.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		prefix   string
		id       string
		expected int
	}{
		{PrefixPlan, "PLAN-001", 1},
		{PrefixFocusArea, "FA-042", 42},
		{PrefixActivity, "ACT-1000", 1000},
		{PrefixActivity, "OBJ-001", -1},
		{PrefixObjective, "OBJ-", -1},
		{PrefixObjective, "OBJ-abc", -1},
		{PrefixObjective, "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			result := ParseNumber(tt.prefix, tt.id)
			if result != tt.expected {
				t.Errorf("ParseNumber(%q, %q) = %d, want %d", tt.prefix, tt.id, result, tt.expected)
			}
		})
	}
}

func TestLevelForID(t *testing.T) {
	tests := []struct {
		id       string
		expected rollup.Level
		ok       bool
	}{
		{"ACT-003", rollup.LevelActivity, true},
		{"OBJ-010", rollup.LevelObjective, true},
		{"FA-001", rollup.LevelFocusArea, true},
		{"PLAN-001", "", false},
		{"nonsense", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			level, ok := LevelForID(tt.id)
			if ok != tt.ok || level != tt.expected {
				t.Errorf("LevelForID(%q) = %q, %v; want %q, %v", tt.id, level, ok, tt.expected, tt.ok)
			}
		})
	}
}

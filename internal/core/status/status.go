// Package status contains the pure status vocabulary shared by every node of a strategic plan.
// This is part of the Functional Core - no I/O, only pure functions.
package status

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the health value carried by activities, objectives and focus areas.
type Status string

const (
	OnTrack    Status = "on_track"
	AtRisk     Status = "at_risk"
	OffTrack   Status = "off_track"
	NotStarted Status = "not_started"
)

// ErrInvalidStatus is returned for any value outside the four known statuses.
var ErrInvalidStatus = errors.New("invalid status")

// All returns every valid status in rollup priority order (worst first).
func All() []Status {
	return []Status{OffTrack, AtRisk, NotStarted, OnTrack}
}

// IsValid reports whether s is one of the four known statuses.
// No normalization is applied: "On_Track" is not valid.
func (s Status) IsValid() bool {
	switch s {
	case OnTrack, AtRisk, OffTrack, NotStarted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Label returns a human readable label for the status.
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Parse converts a raw value into a Status, rejecting anything outside the enum.
// Surrounding whitespace is the only thing tolerated.
func Parse(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q (expected one of on_track, at_risk, off_track, not_started)", ErrInvalidStatus, raw)
	}
	return s, nil
}

// ParseAll converts a slice of raw values, failing on the first invalid entry.
func ParseAll(raw []string) ([]Status, error) {
	out := make([]Status, 0, len(raw))
	for _, r := range raw {
		s, err := Parse(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Rollup derives a parent status from the statuses of its live children.
//
// Worst case wins, evaluated in this order:
//   - no children: not_started
//   - any off_track: off_track
//   - any at_risk: at_risk
//   - any not_started: not_started
//   - otherwise (all on_track): on_track
//
// A mix of on_track and not_started yields not_started; there is no blended value.
// Invalid child values are rejected rather than skipped.
func Rollup(children []Status) (Status, error) {
	if len(children) == 0 {
		return NotStarted, nil
	}

	var hasOffTrack, hasAtRisk, hasNotStarted bool
	for _, child := range children {
		switch child {
		case OffTrack:
			hasOffTrack = true
		case AtRisk:
			hasAtRisk = true
		case NotStarted:
			hasNotStarted = true
		case OnTrack:
		default:
			return "", fmt.Errorf("%w: child status %q", ErrInvalidStatus, child)
		}
	}

	switch {
	case hasOffTrack:
		return OffTrack, nil
	case hasAtRisk:
		return AtRisk, nil
	case hasNotStarted:
		return NotStarted, nil
	default:
		return OnTrack, nil
	}
}

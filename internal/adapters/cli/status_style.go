// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"github.com/fatih/color"

	corestatus "github.com/example/compass/internal/core/status"
)

// StatusStyle renders status markers, colored unless disabled.
type StatusStyle struct {
	colors map[corestatus.Status]*color.Color
}

// NewStatusStyle returns a style. With enabled false every marker is plain text;
// with enabled true fatih/color still drops escapes when stdout is not a terminal.
func NewStatusStyle(enabled bool) *StatusStyle {
	colors := map[corestatus.Status]*color.Color{
		corestatus.OnTrack:    color.New(color.FgGreen),
		corestatus.AtRisk:     color.New(color.FgYellow),
		corestatus.OffTrack:   color.New(color.FgRed, color.Bold),
		corestatus.NotStarted: color.New(color.Faint),
	}
	if !enabled {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &StatusStyle{colors: colors}
}

var markers = map[corestatus.Status]string{
	corestatus.OnTrack:    "●",
	corestatus.AtRisk:     "▲",
	corestatus.OffTrack:   "✗",
	corestatus.NotStarted: "○",
}

// Marker returns the one-character symbol for a status. Unknown values render as "?".
func (s *StatusStyle) Marker(status string) string {
	v := corestatus.Status(status)
	c, ok := s.colors[v]
	if !ok {
		return "?"
	}
	return c.Sprint(markers[v])
}

// Label returns the colored status name.
func (s *StatusStyle) Label(status string) string {
	c, ok := s.colors[corestatus.Status(status)]
	if !ok {
		return status
	}
	return c.Sprint(status)
}

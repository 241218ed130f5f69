// Package logging builds the structured logger shared by the CLI and services.
package logging

import (
	"io"
	"time"

	charmLog "github.com/charmbracelet/log"
)

// Prefix is attached to every log line.
const Prefix = "compass"

// New returns a text-formatted logger writing to w at the given level.
// A nil writer discards output.
func New(w io.Writer, level charmLog.Level) *charmLog.Logger {
	if w == nil {
		w = io.Discard
	}
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
}

// NewLogfmt is New with logfmt output, for piping into other tools.
func NewLogfmt(w io.Writer, level charmLog.Level) *charmLog.Logger {
	if w == nil {
		w = io.Discard
	}
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *charmLog.Logger {
	return New(io.Discard, charmLog.FatalLevel)
}

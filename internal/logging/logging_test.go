package logging

import (
	"bytes"
	"strings"
	"testing"

	charmLog "github.com/charmbracelet/log"
)

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, charmLog.WarnLevel)

	logger.Info("hidden")
	logger.Warn("cascade halted", "node", "FA-001")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "cascade halted") || !strings.Contains(out, "FA-001") {
		t.Fatalf("expected warn line with key/value, got %q", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Fatalf("expected %q prefix, got %q", Prefix, out)
	}
}

func TestNewLogfmtWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogfmt(&buf, charmLog.DebugLevel)

	logger.Debug("status saved", "node", "OBJ-001", "status", "at_risk")

	out := buf.String()
	if !strings.Contains(out, "node=OBJ-001") || !strings.Contains(out, "status=at_risk") {
		t.Fatalf("expected logfmt pairs, got %q", out)
	}
}

func TestNilWriterDiscards(t *testing.T) {
	logger := New(nil, charmLog.DebugLevel)
	logger.Error("nowhere")
	Discard().Error("nowhere")
}

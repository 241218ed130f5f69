package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/compass/internal/adapters/sqlite"
	"github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/core/status"
	"github.com/example/compass/internal/ctxutil"
	"github.com/example/compass/internal/ports/secondary"
)

func TestStatusEventRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusEventRepository(db)
	ctx := context.Background()

	events := []*secondary.StatusEventRecord{
		{ID: "e1", Level: "objective", NodeID: "OBJ-001", NewStatus: "on_track", Cause: "rollup", OccurredAt: "2026-03-01T10:00:00Z"},
		{ID: "e2", Level: "objective", NodeID: "OBJ-001", OldStatus: "on_track", NewStatus: "at_risk", Cause: "direct", ActorID: "dana", OccurredAt: "2026-03-02T10:00:00Z"},
		{ID: "e3", Level: "activity", NodeID: "ACT-001", OldStatus: "on_track", NewStatus: "off_track", Cause: "direct", OccurredAt: "2026-03-03T10:00:00Z"},
	}
	for _, e := range events {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create %s failed: %v", e.ID, err)
		}
	}

	got, err := repo.ListByNode(ctx, "objective", "OBJ-001", 0)
	if err != nil {
		t.Fatalf("ListByNode failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != "e2" {
		t.Errorf("expected newest first, got %s", got[0].ID)
	}
	if got[0].ActorID != "dana" {
		t.Errorf("ActorID = %q, want dana", got[0].ActorID)
	}
	if got[1].OldStatus != "" {
		t.Errorf("OldStatus = %q, want empty for null", got[1].OldStatus)
	}

	limited, _ := repo.ListByNode(ctx, "objective", "OBJ-001", 1)
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestStatusEventRepository_RejectsUnknownCause(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusEventRepository(db)

	err := repo.Create(context.Background(), &secondary.StatusEventRecord{
		ID: "e1", Level: "activity", NodeID: "ACT-001", NewStatus: "on_track", Cause: "magic",
	})
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}

func TestLogWriterAdapter_LogStatusChange(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusEventRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := ctxutil.WithActorID(context.Background(), "dana")

	step := rollup.StepResult{
		Node:     rollup.Ref(rollup.LevelObjective, "OBJ-001"),
		Previous: status.OnTrack,
		New:      status.AtRisk,
		Cause:    rollup.CauseRollup,
	}
	if err := writer.LogStatusChange(ctx, step); err != nil {
		t.Fatalf("LogStatusChange failed: %v", err)
	}

	got, err := repo.ListByNode(ctx, "objective", "OBJ-001", 0)
	if err != nil {
		t.Fatalf("ListByNode failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	e := got[0]
	if len(e.ID) != 36 {
		t.Errorf("expected uuid ID, got %q", e.ID)
	}
	if e.OldStatus != "on_track" || e.NewStatus != "at_risk" || e.Cause != "rollup" {
		t.Errorf("unexpected event %+v", e)
	}
	if e.ActorID != "dana" {
		t.Errorf("ActorID = %q, want dana", e.ActorID)
	}
}

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/compass/internal/ports/primary"
)

func TestCreateObjective_PullsFocusAreaDown(t *testing.T) {
	h := newTestHarness()
	seedCascadeTree(h.store)

	obj, err := h.objectives.CreateObjective(context.Background(), primary.CreateObjectiveRequest{
		FocusAreaID: "FA-001",
		Title:       "Reduce onboarding time",
	})
	require.NoError(t, err)

	assert.Equal(t, "OBJ-003", obj.ID)
	assert.Equal(t, "not_started", obj.Status)
	assert.Equal(t, "not_started", h.store.status("FA-001"))
}

func TestCreateObjective_MissingFocusArea(t *testing.T) {
	h := newTestHarness()

	_, err := h.objectives.CreateObjective(context.Background(), primary.CreateObjectiveRequest{
		FocusAreaID: "FA-404",
		Title:       "Anything",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "focus area FA-404 not found")
}

func TestSetObjectiveStatus_OverridesUntilRecompute(t *testing.T) {
	h := newTestHarness()
	seedCascadeTree(h.store)
	ctx := context.Background()

	_, err := h.objectives.SetObjectiveStatus(ctx, "OBJ-001", "off_track")
	require.NoError(t, err)
	assert.Equal(t, "off_track", h.store.status("OBJ-001"))
	assert.Equal(t, "off_track", h.store.status("FA-001"))

	result, err := h.objectives.RecomputeObjective(ctx, "OBJ-001")
	require.NoError(t, err)
	assert.Equal(t, "on_track", h.store.status("OBJ-001"))
	assert.Equal(t, "on_track", h.store.status("FA-001"))
	assert.Len(t, result.Steps, 2)
}

func TestDeleteObjective_Propagates(t *testing.T) {
	h := newTestHarness()
	seedCascadeTree(h.store)
	h.store.objectives["OBJ-002"].Status = "off_track"
	h.store.focusAreas["FA-001"].Status = "off_track"
	ctx := context.Background()

	require.NoError(t, h.objectives.DeleteObjective(ctx, "OBJ-002"))
	assert.Equal(t, "on_track", h.store.status("FA-001"))

	require.NoError(t, h.objectives.RestoreObjective(ctx, "OBJ-002"))
	assert.Equal(t, "off_track", h.store.status("FA-001"))
}

func TestRestoreObjective_FocusAreaDeleted(t *testing.T) {
	h := newTestHarness()
	seedCascadeTree(h.store)
	h.store.objectives["OBJ-002"].DeletedAt = testTimestamp
	h.store.focusAreas["FA-001"].DeletedAt = testTimestamp

	err := h.objectives.RestoreObjective(context.Background(), "OBJ-002")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "focus area FA-001 is deleted")
}

func TestGetObjective(t *testing.T) {
	h := newTestHarness()
	seedCascadeTree(h.store)

	obj, err := h.objectives.GetObjective(context.Background(), "OBJ-002")
	require.NoError(t, err)
	assert.Equal(t, "FA-001", obj.FocusAreaID)
	assert.Equal(t, 1, obj.SortOrder)

	_, err = h.objectives.GetObjective(context.Background(), "OBJ-999")
	require.Error(t, err)
}

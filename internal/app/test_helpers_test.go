package app

import (
	"context"
	"fmt"

	coreplan "github.com/example/compass/internal/core/plan"
	corerollup "github.com/example/compass/internal/core/rollup"
	"github.com/example/compass/internal/ports/secondary"
)

const testTimestamp = "2026-01-01 00:00:00"

// memStore is an in-memory hierarchy shared by the repository mocks below.
// It implements secondary.HierarchyStore directly.
type memStore struct {
	plans      map[string]*secondary.StrategicPlanRecord
	focusAreas map[string]*secondary.FocusAreaRecord
	objectives map[string]*secondary.ObjectiveRecord
	activities map[string]*secondary.ActivityRecord

	saveErr   map[string]error // node ID -> error returned by SaveStatus
	parentErr error
	saves     []string // node IDs passed to SaveStatus, in order
}

func newMemStore() *memStore {
	return &memStore{
		plans:      make(map[string]*secondary.StrategicPlanRecord),
		focusAreas: make(map[string]*secondary.FocusAreaRecord),
		objectives: make(map[string]*secondary.ObjectiveRecord),
		activities: make(map[string]*secondary.ActivityRecord),
		saveErr:    make(map[string]error),
	}
}

func (m *memStore) addPlan(id string) {
	m.plans[id] = &secondary.StrategicPlanRecord{ID: id, Title: "Plan " + id, CreatedAt: testTimestamp, UpdatedAt: testTimestamp}
}

func (m *memStore) addFocusArea(id, planID, status string) {
	m.focusAreas[id] = &secondary.FocusAreaRecord{ID: id, PlanID: planID, Title: "Focus " + id, Status: status, SortOrder: len(m.focusAreas)}
}

func (m *memStore) addObjective(id, focusAreaID, status string) {
	m.objectives[id] = &secondary.ObjectiveRecord{ID: id, FocusAreaID: focusAreaID, Title: "Objective " + id, Status: status, SortOrder: len(m.objectives)}
}

func (m *memStore) addActivity(id, objectiveID, status string) {
	m.activities[id] = &secondary.ActivityRecord{ID: id, ObjectiveID: objectiveID, Title: "Activity " + id, Status: status, SortOrder: len(m.activities)}
}

func (m *memStore) status(id string) string {
	if fa, ok := m.focusAreas[id]; ok {
		return fa.Status
	}
	if o, ok := m.objectives[id]; ok {
		return o.Status
	}
	if a, ok := m.activities[id]; ok {
		return a.Status
	}
	return ""
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, secondary.ErrNotFound)
}

func (m *memStore) LiveChildStatuses(ctx context.Context, node corerollup.NodeRef) ([]string, error) {
	var statuses []string
	switch node.Level {
	case corerollup.LevelFocusArea:
		for _, o := range m.objectives {
			if o.FocusAreaID == node.ID && o.DeletedAt == "" {
				statuses = append(statuses, o.Status)
			}
		}
	case corerollup.LevelObjective:
		for _, a := range m.activities {
			if a.ObjectiveID == node.ID && a.DeletedAt == "" {
				statuses = append(statuses, a.Status)
			}
		}
	}
	return statuses, nil
}

func (m *memStore) CurrentStatus(ctx context.Context, node corerollup.NodeRef) (string, bool, error) {
	switch node.Level {
	case corerollup.LevelFocusArea:
		if fa, ok := m.focusAreas[node.ID]; ok {
			return fa.Status, fa.DeletedAt != "", nil
		}
	case corerollup.LevelObjective:
		if o, ok := m.objectives[node.ID]; ok {
			return o.Status, o.DeletedAt != "", nil
		}
	case corerollup.LevelActivity:
		if a, ok := m.activities[node.ID]; ok {
			return a.Status, a.DeletedAt != "", nil
		}
	}
	return "", false, notFound(string(node.Level), node.ID)
}

func (m *memStore) SaveStatus(ctx context.Context, node corerollup.NodeRef, status string) error {
	if err := m.saveErr[node.ID]; err != nil {
		return err
	}
	switch node.Level {
	case corerollup.LevelFocusArea:
		m.focusAreas[node.ID].Status = status
	case corerollup.LevelObjective:
		m.objectives[node.ID].Status = status
	case corerollup.LevelActivity:
		m.activities[node.ID].Status = status
	}
	m.saves = append(m.saves, node.ID)
	return nil
}

func (m *memStore) ResolveParent(ctx context.Context, node corerollup.NodeRef) (corerollup.NodeRef, bool, error) {
	if m.parentErr != nil {
		return corerollup.NodeRef{}, false, m.parentErr
	}
	switch node.Level {
	case corerollup.LevelActivity:
		if a, ok := m.activities[node.ID]; ok {
			return corerollup.Ref(corerollup.LevelObjective, a.ObjectiveID), true, nil
		}
	case corerollup.LevelObjective:
		if o, ok := m.objectives[node.ID]; ok {
			return corerollup.Ref(corerollup.LevelFocusArea, o.FocusAreaID), true, nil
		}
	case corerollup.LevelFocusArea:
		return corerollup.NodeRef{}, false, nil
	}
	return corerollup.NodeRef{}, false, notFound(string(node.Level), node.ID)
}

var _ secondary.HierarchyStore = (*memStore)(nil)

// mockPlanRepository implements secondary.StrategicPlanRepository over a memStore.
type mockPlanRepository struct {
	*memStore
	createErr error
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *secondary.StrategicPlanRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	plan.CreatedAt, plan.UpdatedAt = testTimestamp, testTimestamp
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*secondary.StrategicPlanRecord, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, notFound("plan", id)
}

func (m *mockPlanRepository) List(ctx context.Context, filters secondary.StrategicPlanFilters) ([]*secondary.StrategicPlanRecord, error) {
	var result []*secondary.StrategicPlanRecord
	for _, p := range m.plans {
		if !filters.IncludeDeleted && p.DeletedAt != "" {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *secondary.StrategicPlanRecord) error {
	existing, ok := m.plans[plan.ID]
	if !ok {
		return notFound("plan", plan.ID)
	}
	if plan.Title != "" {
		existing.Title = plan.Title
	}
	if plan.Description != "" {
		existing.Description = plan.Description
	}
	return nil
}

func (m *mockPlanRepository) SoftDelete(ctx context.Context, id string) error {
	m.plans[id].DeletedAt = testTimestamp
	return nil
}

func (m *mockPlanRepository) Restore(ctx context.Context, id string) error {
	m.plans[id].DeletedAt = ""
	return nil
}

func (m *mockPlanRepository) GetNextID(ctx context.Context) (string, error) {
	return coreplan.GenerateID(coreplan.PrefixPlan, len(m.plans)), nil
}

// mockFocusAreaRepository implements secondary.FocusAreaRepository over a memStore.
type mockFocusAreaRepository struct {
	*memStore
}

func (m *mockFocusAreaRepository) Create(ctx context.Context, fa *secondary.FocusAreaRecord) error {
	m.focusAreas[fa.ID] = fa
	return nil
}

func (m *mockFocusAreaRepository) GetByID(ctx context.Context, id string) (*secondary.FocusAreaRecord, error) {
	if fa, ok := m.focusAreas[id]; ok {
		return fa, nil
	}
	return nil, notFound("focus area", id)
}

func (m *mockFocusAreaRepository) List(ctx context.Context, filters secondary.FocusAreaFilters) ([]*secondary.FocusAreaRecord, error) {
	var result []*secondary.FocusAreaRecord
	for _, fa := range m.focusAreas {
		if filters.PlanID != "" && fa.PlanID != filters.PlanID {
			continue
		}
		if filters.Status != "" && fa.Status != filters.Status {
			continue
		}
		if !filters.IncludeDeleted && fa.DeletedAt != "" {
			continue
		}
		result = append(result, fa)
	}
	return result, nil
}

func (m *mockFocusAreaRepository) Update(ctx context.Context, fa *secondary.FocusAreaRecord) error {
	existing, ok := m.focusAreas[fa.ID]
	if !ok {
		return notFound("focus area", fa.ID)
	}
	if fa.Title != "" {
		existing.Title = fa.Title
	}
	if fa.Description != "" {
		existing.Description = fa.Description
	}
	if fa.SortOrder >= 0 {
		existing.SortOrder = fa.SortOrder
	}
	return nil
}

func (m *mockFocusAreaRepository) SoftDelete(ctx context.Context, id string) error {
	m.focusAreas[id].DeletedAt = testTimestamp
	return nil
}

func (m *mockFocusAreaRepository) Restore(ctx context.Context, id string) error {
	m.focusAreas[id].DeletedAt = ""
	return nil
}

func (m *mockFocusAreaRepository) GetNextID(ctx context.Context) (string, error) {
	return coreplan.GenerateID(coreplan.PrefixFocusArea, len(m.focusAreas)), nil
}

func (m *mockFocusAreaRepository) NextSortOrder(ctx context.Context, planID string) (int, error) {
	next := 0
	for _, fa := range m.focusAreas {
		if fa.PlanID == planID && fa.SortOrder >= next {
			next = fa.SortOrder + 1
		}
	}
	return next, nil
}

// mockObjectiveRepository implements secondary.ObjectiveRepository over a memStore.
type mockObjectiveRepository struct {
	*memStore
}

func (m *mockObjectiveRepository) Create(ctx context.Context, o *secondary.ObjectiveRecord) error {
	m.objectives[o.ID] = o
	return nil
}

func (m *mockObjectiveRepository) GetByID(ctx context.Context, id string) (*secondary.ObjectiveRecord, error) {
	if o, ok := m.objectives[id]; ok {
		return o, nil
	}
	return nil, notFound("objective", id)
}

func (m *mockObjectiveRepository) List(ctx context.Context, filters secondary.ObjectiveFilters) ([]*secondary.ObjectiveRecord, error) {
	var result []*secondary.ObjectiveRecord
	for _, o := range m.objectives {
		if filters.FocusAreaID != "" && o.FocusAreaID != filters.FocusAreaID {
			continue
		}
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		if !filters.IncludeDeleted && o.DeletedAt != "" {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *mockObjectiveRepository) Update(ctx context.Context, o *secondary.ObjectiveRecord) error {
	existing, ok := m.objectives[o.ID]
	if !ok {
		return notFound("objective", o.ID)
	}
	if o.Title != "" {
		existing.Title = o.Title
	}
	if o.Description != "" {
		existing.Description = o.Description
	}
	if o.SortOrder >= 0 {
		existing.SortOrder = o.SortOrder
	}
	return nil
}

func (m *mockObjectiveRepository) SoftDelete(ctx context.Context, id string) error {
	m.objectives[id].DeletedAt = testTimestamp
	return nil
}

func (m *mockObjectiveRepository) Restore(ctx context.Context, id string) error {
	m.objectives[id].DeletedAt = ""
	return nil
}

func (m *mockObjectiveRepository) GetNextID(ctx context.Context) (string, error) {
	return coreplan.GenerateID(coreplan.PrefixObjective, len(m.objectives)), nil
}

func (m *mockObjectiveRepository) NextSortOrder(ctx context.Context, focusAreaID string) (int, error) {
	next := 0
	for _, o := range m.objectives {
		if o.FocusAreaID == focusAreaID && o.SortOrder >= next {
			next = o.SortOrder + 1
		}
	}
	return next, nil
}

// mockActivityRepository implements secondary.ActivityRepository over a memStore.
type mockActivityRepository struct {
	*memStore
}

func (m *mockActivityRepository) Create(ctx context.Context, a *secondary.ActivityRecord) error {
	m.activities[a.ID] = a
	return nil
}

func (m *mockActivityRepository) GetByID(ctx context.Context, id string) (*secondary.ActivityRecord, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, notFound("activity", id)
}

func (m *mockActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	var result []*secondary.ActivityRecord
	for _, a := range m.activities {
		if filters.ObjectiveID != "" && a.ObjectiveID != filters.ObjectiveID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if !filters.IncludeDeleted && a.DeletedAt != "" {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockActivityRepository) Update(ctx context.Context, a *secondary.ActivityRecord) error {
	existing, ok := m.activities[a.ID]
	if !ok {
		return notFound("activity", a.ID)
	}
	if a.Title != "" {
		existing.Title = a.Title
	}
	if a.Description != "" {
		existing.Description = a.Description
	}
	if a.SortOrder >= 0 {
		existing.SortOrder = a.SortOrder
	}
	return nil
}

func (m *mockActivityRepository) SoftDelete(ctx context.Context, id string) error {
	m.activities[id].DeletedAt = testTimestamp
	return nil
}

func (m *mockActivityRepository) Restore(ctx context.Context, id string) error {
	m.activities[id].DeletedAt = ""
	return nil
}

func (m *mockActivityRepository) GetNextID(ctx context.Context) (string, error) {
	return coreplan.GenerateID(coreplan.PrefixActivity, len(m.activities)), nil
}

func (m *mockActivityRepository) NextSortOrder(ctx context.Context, objectiveID string) (int, error) {
	next := 0
	for _, a := range m.activities {
		if a.ObjectiveID == objectiveID && a.SortOrder >= next {
			next = a.SortOrder + 1
		}
	}
	return next, nil
}

// mockStatusLogWriter captures audit entries.
type mockStatusLogWriter struct {
	steps []corerollup.StepResult
	err   error
}

func (m *mockStatusLogWriter) LogStatusChange(ctx context.Context, step corerollup.StepResult) error {
	if m.err != nil {
		return m.err
	}
	m.steps = append(m.steps, step)
	return nil
}

// mockTransactor counts transactions and optionally fails before running fn
// or while rolling back.
type mockTransactor struct {
	calls       int
	beginErr    error
	rollbackErr error
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.beginErr != nil {
		return m.beginErr
	}
	err := fn(ctx)
	if err != nil && m.rollbackErr != nil {
		return fmt.Errorf("%w (%w: %v)", err, secondary.ErrRollbackFailed, m.rollbackErr)
	}
	return err
}

// mockStatusEventRepository implements secondary.StatusEventRepository for testing.
type mockStatusEventRepository struct {
	events  []*secondary.StatusEventRecord
	listErr error
}

func (m *mockStatusEventRepository) Create(ctx context.Context, event *secondary.StatusEventRecord) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockStatusEventRepository) ListByNode(ctx context.Context, level, nodeID string, limit int) ([]*secondary.StatusEventRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.StatusEventRecord
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if e.Level != level || e.NodeID != nodeID {
			continue
		}
		result = append(result, e)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

var (
	_ secondary.StrategicPlanRepository = (*mockPlanRepository)(nil)
	_ secondary.FocusAreaRepository     = (*mockFocusAreaRepository)(nil)
	_ secondary.ObjectiveRepository     = (*mockObjectiveRepository)(nil)
	_ secondary.ActivityRepository      = (*mockActivityRepository)(nil)
	_ secondary.StatusLogWriter         = (*mockStatusLogWriter)(nil)
	_ secondary.Transactor              = (*mockTransactor)(nil)
	_ secondary.StatusEventRepository   = (*mockStatusEventRepository)(nil)
)

// testHarness wires every service over one memStore.
type testHarness struct {
	store      *memStore
	logWriter  *mockStatusLogWriter
	tx         *mockTransactor
	rollup     *RollupServiceImpl
	plans      *PlanServiceImpl
	focusAreas *FocusAreaServiceImpl
	objectives *ObjectiveServiceImpl
	activities *ActivityServiceImpl
}

func newTestHarness() *testHarness {
	store := newMemStore()
	logWriter := &mockStatusLogWriter{}
	tx := &mockTransactor{}

	planRepo := &mockPlanRepository{memStore: store}
	faRepo := &mockFocusAreaRepository{memStore: store}
	objRepo := &mockObjectiveRepository{memStore: store}
	actRepo := &mockActivityRepository{memStore: store}

	rollup := NewRollupService(store, logWriter, nil)
	return &testHarness{
		store:      store,
		logWriter:  logWriter,
		tx:         tx,
		rollup:     rollup,
		plans:      NewPlanService(planRepo, faRepo, objRepo, actRepo),
		focusAreas: NewFocusAreaService(faRepo, planRepo, rollup, tx),
		objectives: NewObjectiveService(objRepo, faRepo, rollup, tx),
		activities: NewActivityService(actRepo, objRepo, rollup, tx),
	}
}

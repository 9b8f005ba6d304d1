package runner_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldplan/fieldplan/internal/plan"
	"github.com/fieldplan/fieldplan/internal/project"
	"github.com/fieldplan/fieldplan/internal/runner"
)

// --- Mock Plan Repository ---

type mockPlanRepo struct {
	mu            sync.Mutex
	pending       []plan.Plan
	statusUpdates []plan.StatusUpdate
}

func (m *mockPlanRepo) Create(ctx context.Context, p *plan.Plan) error { return nil }

func (m *mockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	return nil, plan.ErrPlanNotFound
}

// List hands out each pending plan exactly once, like the real table does
// once a plan is marked running.
func (m *mockPlanRepo) List(ctx context.Context, filter plan.ListFilter) (*plan.ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.pending
	m.pending = nil
	return &plan.ListResult{Plans: out, Total: len(out), Page: 1, Limit: 100}, nil
}

func (m *mockPlanRepo) UpdateStatus(ctx context.Context, id uuid.UUID, su plan.StatusUpdate) (*plan.Plan, error) {
	m.mu.Lock()
	m.statusUpdates = append(m.statusUpdates, su)
	m.mu.Unlock()
	return &plan.Plan{ID: id, Status: su.Status}, nil
}

func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockPlanRepo) getStatusUpdates() []plan.StatusUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]plan.StatusUpdate, len(m.statusUpdates))
	copy(result, m.statusUpdates)
	return result
}

// --- Mock Project Repository ---

type mockProjectRepo struct {
	projects []project.Project
}

func (m *mockProjectRepo) Create(ctx context.Context, p *project.Project) error { return nil }

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return nil, project.ErrProjectNotFound
}

func (m *mockProjectRepo) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]project.Project, error) {
	return m.projects, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, id uuid.UUID, fields project.UpdateFields) (*project.Project, error) {
	return nil, project.ErrProjectNotFound
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// --- Helpers ---

func pendingPlan(strategy string) plan.Plan {
	return plan.Plan{
		ID:          uuid.New(),
		PortfolioID: uuid.New(),
		Name:        "base-case",
		Strategy:    strategy,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonDays: 1000,
		Status:      plan.StatusPending,
	}
}

func drillableProject(name string) project.Project {
	return project.Project{
		ID:        uuid.New(),
		Name:      name,
		SpudYear:  2018,
		DrillDays: 90,
		Profile: []project.ProfilePoint{
			{Year: 2020, Rate: 30},
			{Year: 2022, Rate: 10},
		},
	}
}

func testCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "test_counter"})
}

func TestRunner_ExecutesPendingPlan(t *testing.T) {
	planRepo := &mockPlanRepo{pending: []plan.Plan{pendingPlan(plan.StrategyOrdered)}}
	projRepo := &mockProjectRepo{projects: []project.Project{
		drillableProject("alpha"),
		drillableProject("bravo"),
	}}

	r := runner.New(planRepo, projRepo, 50*time.Millisecond, testCounter(), testCounter())

	ctx, cancel := context.WithCancel(context.Background())
	go r.Start(ctx)
	time.Sleep(200 * time.Millisecond)
	cancel()

	updates := planRepo.getStatusUpdates()
	require.GreaterOrEqual(t, len(updates), 2)
	assert.Equal(t, plan.StatusRunning, updates[0].Status)

	last := updates[len(updates)-1]
	assert.Equal(t, plan.StatusComplete, last.Status)
	require.Len(t, last.Sequence, 2)
	assert.Len(t, last.Production, 1000)
	require.NotNil(t, last.TotalProduction)
	assert.Greater(t, *last.TotalProduction, 0.0)
}

func TestRunner_MarksBadProfileAsError(t *testing.T) {
	planRepo := &mockPlanRepo{pending: []plan.Plan{pendingPlan(plan.StrategyOrdered)}}
	projRepo := &mockProjectRepo{projects: []project.Project{
		{
			ID:        uuid.New(),
			Name:      "broken",
			SpudYear:  2018,
			DrillDays: 30,
			// A single point cannot support a production curve.
			Profile: []project.ProfilePoint{{Year: 2020, Rate: 5}},
		},
	}}

	r := runner.New(planRepo, projRepo, 50*time.Millisecond, testCounter(), testCounter())

	ctx, cancel := context.WithCancel(context.Background())
	go r.Start(ctx)
	time.Sleep(200 * time.Millisecond)
	cancel()

	updates := planRepo.getStatusUpdates()
	require.GreaterOrEqual(t, len(updates), 2)

	last := updates[len(updates)-1]
	assert.Equal(t, plan.StatusError, last.Status)
	require.NotNil(t, last.Failure)
	assert.Contains(t, *last.Failure, "broken")
}

func TestRunner_NoEligibleProjectFailsPlan(t *testing.T) {
	p := pendingPlan(plan.StrategyPeak)
	planRepo := &mockPlanRepo{pending: []plan.Plan{p}}
	projRepo := &mockProjectRepo{projects: []project.Project{
		{
			ID:        uuid.New(),
			Name:      "future",
			SpudYear:  2030, // not drillable before the 2024 period start
			DrillDays: 60,
			Profile: []project.ProfilePoint{
				{Year: 2020, Rate: 20},
				{Year: 2021, Rate: 10},
			},
		},
	}}

	r := runner.New(planRepo, projRepo, 50*time.Millisecond, testCounter(), testCounter())

	ctx, cancel := context.WithCancel(context.Background())
	go r.Start(ctx)
	time.Sleep(200 * time.Millisecond)
	cancel()

	updates := planRepo.getStatusUpdates()
	require.GreaterOrEqual(t, len(updates), 2)
	assert.Equal(t, plan.StatusError, updates[len(updates)-1].Status)
}

func TestRunner_StopsOnCancel(t *testing.T) {
	planRepo := &mockPlanRepo{}
	r := runner.New(planRepo, &mockProjectRepo{}, 10*time.Millisecond, testCounter(), testCounter())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after context cancellation")
	}
}

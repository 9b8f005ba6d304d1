package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldplan/fieldplan/internal/api/handler"
	"github.com/fieldplan/fieldplan/internal/plan"
)

// --- Mock Plan Repository ---

type mockPlanRepo struct {
	createFn       func(ctx context.Context, p *plan.Plan) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
	listFn         func(ctx context.Context, filter plan.ListFilter) (*plan.ListResult, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, su plan.StatusUpdate) (*plan.Plan, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanRepo) Create(ctx context.Context, p *plan.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, plan.ErrPlanNotFound
}

func (m *mockPlanRepo) List(ctx context.Context, filter plan.ListFilter) (*plan.ListResult, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return &plan.ListResult{Plans: []plan.Plan{}, Total: 0, Page: 1, Limit: 20}, nil
}

func (m *mockPlanRepo) UpdateStatus(ctx context.Context, id uuid.UUID, su plan.StatusUpdate) (*plan.Plan, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, su)
	}
	return nil, plan.ErrPlanNotFound
}

func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func samplePlan(id uuid.UUID, status string) *plan.Plan {
	now := time.Now().UTC()
	return &plan.Plan{
		ID:          id,
		PortfolioID: uuid.New(),
		Name:        "base-case",
		Strategy:    plan.StrategyOrdered,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonDays: 3650,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ===== POST /plans =====

func TestPlanCreate_Accepted(t *testing.T) {
	t.Parallel()

	repo := &mockPlanRepo{
		createFn: func(ctx context.Context, p *plan.Plan) error {
			assert.Equal(t, plan.StatusPending, p.Status)
			assert.Equal(t, plan.StrategyBalanced, p.Strategy)
			p.ID = uuid.New()
			p.CreatedAt = time.Now().UTC()
			p.UpdatedAt = time.Now().UTC()
			return nil
		},
	}
	h := handler.NewPlanHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"portfolioId": uuid.New().String(),
		"name":        "base-case",
		"strategy":    "balanced",
		"startDate":   "2024-01-01",
		"horizonDays": 3650,
	})

	req, w := makeChiRequest(http.MethodPost, "/plans", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "2024-01-01", data["startDate"])
}

func TestPlanCreate_DefaultsToOrdered(t *testing.T) {
	t.Parallel()

	var gotStrategy string
	repo := &mockPlanRepo{
		createFn: func(ctx context.Context, p *plan.Plan) error {
			gotStrategy = p.Strategy
			p.ID = uuid.New()
			return nil
		},
	}
	h := handler.NewPlanHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"portfolioId": uuid.New().String(),
		"name":        "base-case",
		"startDate":   "2024-01-01",
		"horizonDays": 365,
	})

	req, w := makeChiRequest(http.MethodPost, "/plans", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, plan.StrategyOrdered, gotStrategy)
}

func TestPlanCreate_UnknownStrategy(t *testing.T) {
	t.Parallel()

	h := handler.NewPlanHandler(&mockPlanRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"portfolioId": uuid.New().String(),
		"name":        "base-case",
		"strategy":    "greedy",
		"startDate":   "2024-01-01",
		"horizonDays": 365,
	})

	req, w := makeChiRequest(http.MethodPost, "/plans", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, w))
}

func TestPlanCreate_UnknownPortfolio(t *testing.T) {
	t.Parallel()

	repo := &mockPlanRepo{
		createFn: func(ctx context.Context, p *plan.Plan) error {
			return plan.ErrPortfolioNotFound
		},
	}
	h := handler.NewPlanHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"portfolioId": uuid.New().String(),
		"name":        "base-case",
		"startDate":   "2024-01-01",
		"horizonDays": 365,
	})

	req, w := makeChiRequest(http.MethodPost, "/plans", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

// ===== GET /plans =====

func TestPlanList_StatusFilter(t *testing.T) {
	t.Parallel()

	repo := &mockPlanRepo{
		listFn: func(ctx context.Context, filter plan.ListFilter) (*plan.ListResult, error) {
			require.NotNil(t, filter.Status)
			assert.Equal(t, plan.StatusComplete, *filter.Status)
			p := samplePlan(uuid.New(), plan.StatusComplete)
			return &plan.ListResult{Plans: []plan.Plan{*p}, Total: 1, Page: 1, Limit: 20}, nil
		},
	}
	h := handler.NewPlanHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/plans?status=complete", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	meta := env["meta"].(map[string]interface{})
	assert.Equal(t, 1.0, meta["total"])
}

func TestPlanList_InvalidStatus(t *testing.T) {
	t.Parallel()

	h := handler.NewPlanHandler(&mockPlanRepo{})

	req, w := makeChiRequest(http.MethodGet, "/plans?status=done", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", errCode(t, w))
}

// ===== GET /plans/{id} =====

func TestPlanGetByID_CompleteCarriesResults(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	total := 1234.5
	repo := &mockPlanRepo{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*plan.Plan, error) {
			p := samplePlan(id, plan.StatusComplete)
			p.Production = []float64{1, 2, 3}
			p.TotalProduction = &total
			return p, nil
		},
	}
	h := handler.NewPlanHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/plans/"+id.String(), nil, map[string]string{"id": id.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "complete", data["status"])
	assert.Equal(t, 1234.5, data["totalProduction"])
	assert.Len(t, data["production"], 3)
}

// ===== DELETE /plans/{id} =====

func TestPlanDelete_RunningConflict(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockPlanRepo{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*plan.Plan, error) {
			return samplePlan(id, plan.StatusRunning), nil
		},
	}
	h := handler.NewPlanHandler(repo)

	req, w := makeChiRequest(http.MethodDelete, "/plans/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PLAN_RUNNING", errCode(t, w))
}

func TestPlanDelete_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockPlanRepo{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*plan.Plan, error) {
			return samplePlan(id, plan.StatusComplete), nil
		},
	}
	h := handler.NewPlanHandler(repo)

	req, w := makeChiRequest(http.MethodDelete, "/plans/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

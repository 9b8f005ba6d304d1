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
	"github.com/fieldplan/fieldplan/internal/portfolio"
	"github.com/fieldplan/fieldplan/internal/project"
)

// --- Mock Portfolio Repository ---

type mockPortfolioRepo struct {
	createFn  func(ctx context.Context, p *portfolio.Portfolio) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*portfolio.Portfolio, error)
	listFn    func(ctx context.Context) ([]portfolio.Portfolio, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPortfolioRepo) Create(ctx context.Context, p *portfolio.Portfolio) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockPortfolioRepo) GetByID(ctx context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, portfolio.ErrPortfolioNotFound
}

func (m *mockPortfolioRepo) GetByName(ctx context.Context, name string) (*portfolio.Portfolio, error) {
	return nil, portfolio.ErrPortfolioNotFound
}

func (m *mockPortfolioRepo) List(ctx context.Context) ([]portfolio.Portfolio, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []portfolio.Portfolio{}, nil
}

func (m *mockPortfolioRepo) Update(ctx context.Context, id uuid.UUID, fields portfolio.UpdateFields) (*portfolio.Portfolio, error) {
	return nil, portfolio.ErrPortfolioNotFound
}

func (m *mockPortfolioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock Project Repository ---

type mockProjectRepo struct {
	createFn          func(ctx context.Context, p *project.Project) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*project.Project, error)
	listByPortfolioFn func(ctx context.Context, portfolioID uuid.UUID) ([]project.Project, error)
	updateFn          func(ctx context.Context, id uuid.UUID, fields project.UpdateFields) (*project.Project, error)
	deleteFn          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *project.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, project.ErrProjectNotFound
}

func (m *mockProjectRepo) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]project.Project, error) {
	if m.listByPortfolioFn != nil {
		return m.listByPortfolioFn(ctx, portfolioID)
	}
	return []project.Project{}, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, id uuid.UUID, fields project.UpdateFields) (*project.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, project.ErrProjectNotFound
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ===== POST /portfolios =====

func TestPortfolioCreate_Success(t *testing.T) {
	t.Parallel()

	h := handler.NewPortfolioHandler(&mockPortfolioRepo{}, &mockProjectRepo{}, testCounter())

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "north-sea",
		"description": "North Sea drilling candidates",
	})

	req, w := makeChiRequest(http.MethodPost, "/portfolios", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "north-sea", data["name"])
}

func TestPortfolioCreate_DuplicateName(t *testing.T) {
	t.Parallel()

	repo := &mockPortfolioRepo{
		createFn: func(ctx context.Context, p *portfolio.Portfolio) error {
			return portfolio.ErrDuplicatePortfolioName
		},
	}
	h := handler.NewPortfolioHandler(repo, &mockProjectRepo{}, testCounter())

	body, _ := json.Marshal(map[string]interface{}{"name": "north-sea"})

	req, w := makeChiRequest(http.MethodPost, "/portfolios", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_NAME", errCode(t, w))
}

// ===== POST /portfolios/import =====

func TestPortfolioImport_Success(t *testing.T) {
	t.Parallel()

	var createdProjects []string
	projRepo := &mockProjectRepo{
		createFn: func(ctx context.Context, p *project.Project) error {
			p.ID = uuid.New()
			createdProjects = append(createdProjects, p.Name)
			return nil
		},
	}
	h := handler.NewPortfolioHandler(&mockPortfolioRepo{}, projRepo, testCounter())

	doc := `
portfolio:
  name: north-sea
projects:
  - name: alpha
    spudYear: 2024
    drillDays: 90
    profile:
      - { year: 2025, rate: 40 }
      - { year: 2027, rate: 20 }
  - name: bravo
    spudYear: 2026
    drillDays: 120
    profile:
      - { year: 2027, rate: 15 }
`

	req, w := makeChiRequest(http.MethodPost, "/portfolios/import", []byte(doc), nil)
	h.Import(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["projects"])
	assert.Equal(t, []string{"alpha", "bravo"}, createdProjects)
}

func TestPortfolioImport_InvalidDocument(t *testing.T) {
	t.Parallel()

	h := handler.NewPortfolioHandler(&mockPortfolioRepo{}, &mockProjectRepo{}, testCounter())

	req, w := makeChiRequest(http.MethodPost, "/portfolios/import", []byte("portfolio: {}\n"), nil)
	h.Import(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DOCUMENT", errCode(t, w))
}

// ===== DELETE /portfolios/{id} =====

func TestPortfolioDelete_HasPlansConflict(t *testing.T) {
	t.Parallel()

	repo := &mockPortfolioRepo{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return portfolio.ErrPortfolioHasPlans
		},
	}
	h := handler.NewPortfolioHandler(repo, &mockProjectRepo{}, testCounter())

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/portfolios/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PORTFOLIO_HAS_PLANS", errCode(t, w))
}

// ===== Nested project routes =====

func TestProjectGetByID_WrongPortfolioIsNotFound(t *testing.T) {
	t.Parallel()

	projID := uuid.New()
	repo := &mockProjectRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*project.Project, error) {
			return &project.Project{
				ID:          projID,
				PortfolioID: uuid.New(), // belongs to a different portfolio
				Name:        "alpha",
			}, nil
		},
	}
	h := handler.NewProjectHandler(repo)

	otherPortfolio := uuid.New()
	req, w := makeChiRequest(http.MethodGet, "/portfolios/"+otherPortfolio.String()+"/projects/"+projID.String(), nil,
		map[string]string{"portfolioId": otherPortfolio.String(), "id": projID.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestProjectCreate_Success(t *testing.T) {
	t.Parallel()

	portfolioID := uuid.New()
	var created *project.Project
	repo := &mockProjectRepo{
		createFn: func(ctx context.Context, p *project.Project) error {
			p.ID = uuid.New()
			created = p
			return nil
		},
	}
	h := handler.NewProjectHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":      "alpha",
		"spudYear":  2024,
		"drillDays": 90,
		"profile": []map[string]interface{}{
			{"year": 2025, "rate": 40},
			{"year": 2027, "rate": 20},
		},
	})

	req, w := makeChiRequest(http.MethodPost, "/portfolios/"+portfolioID.String()+"/projects", body,
		map[string]string{"portfolioId": portfolioID.String()})
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.Equal(t, portfolioID, created.PortfolioID)
	assert.Len(t, created.Profile, 2)
}

func TestProjectCreate_BadProfile(t *testing.T) {
	t.Parallel()

	h := handler.NewProjectHandler(&mockProjectRepo{})

	portfolioID := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{
		"name":      "alpha",
		"spudYear":  2024,
		"drillDays": 90,
		"profile": []map[string]interface{}{
			{"year": 2027, "rate": 40},
			{"year": 2025, "rate": 20}, // out of order
		},
	})

	req, w := makeChiRequest(http.MethodPost, "/portfolios/"+portfolioID.String()+"/projects", body,
		map[string]string{"portfolioId": portfolioID.String()})
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, w))
}

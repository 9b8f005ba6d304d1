package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/api/response"
	"github.com/fieldplan/fieldplan/internal/api/validation"
	"github.com/fieldplan/fieldplan/internal/importer"
	"github.com/fieldplan/fieldplan/internal/portfolio"
	"github.com/fieldplan/fieldplan/internal/project"
)

// createPortfolioRequest is the request body for POST /portfolios.
type createPortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// updatePortfolioRequest is the request body for PATCH /portfolios/{id}.
type updatePortfolioRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// portfolioResponse is the API representation of a portfolio.
type portfolioResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// importResponse reports what a bulk import created.
type importResponse struct {
	Portfolio portfolioResponse `json:"portfolio"`
	Projects  int               `json:"projects"`
}

func toPortfolioResponse(p *portfolio.Portfolio) portfolioResponse {
	return portfolioResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// PortfolioHandler handles portfolio CRUD and bulk import endpoints.
type PortfolioHandler struct {
	repo     portfolio.Repository
	projRepo project.Repository
	imports  prometheus.Counter
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(repo portfolio.Repository, projRepo project.Repository, imports prometheus.Counter) *PortfolioHandler {
	return &PortfolioHandler{repo: repo, projRepo: projRepo, imports: imports}
}

// Create handles POST /portfolios.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	fieldErrors := validation.ValidateCreatePortfolioRequest(validation.CreatePortfolioRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p := &portfolio.Portfolio{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, portfolio.ErrDuplicatePortfolioName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A portfolio named %q already exists", req.Name), requestID)
			return
		}
		slog.Error("failed to create portfolio", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create portfolio", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toPortfolioResponse(p), requestID)
}

// Import handles POST /portfolios/import: a YAML document creating a
// portfolio together with its projects.
func (h *PortfolioHandler) Import(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_BODY", "Failed to read request body", requestID)
		return
	}

	doc, err := importer.Parse(body)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_DOCUMENT", err.Error(), requestID)
		return
	}

	p := &portfolio.Portfolio{
		Name:        doc.Portfolio.Name,
		Description: doc.Portfolio.Description,
	}
	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, portfolio.ErrDuplicatePortfolioName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A portfolio named %q already exists", p.Name), requestID)
			return
		}
		slog.Error("failed to create portfolio from import", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to import portfolio", requestID)
		return
	}

	for _, pd := range doc.Projects {
		profile := make([]project.ProfilePoint, 0, len(pd.Profile))
		for _, pt := range pd.Profile {
			profile = append(profile, project.ProfilePoint{Year: pt.Year, Rate: pt.Rate})
		}
		proj := &project.Project{
			PortfolioID: p.ID,
			Name:        pd.Name,
			SpudYear:    pd.SpudYear,
			DrillDays:   pd.DrillDays,
			Profile:     profile,
		}
		if err := h.projRepo.Create(r.Context(), proj); err != nil {
			slog.Error("failed to create project from import", "error", err, "project", pd.Name)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", fmt.Sprintf("Failed to import project %q", pd.Name), requestID)
			return
		}
	}

	h.imports.Inc()
	slog.Info("portfolio imported", "portfolio", p.Name, "projects", len(doc.Projects))

	response.Success(w, http.StatusCreated, importResponse{
		Portfolio: toPortfolioResponse(p),
		Projects:  len(doc.Projects),
	}, requestID)
}

// List handles GET /portfolios.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolios, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list portfolios", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list portfolios", requestID)
		return
	}

	items := make([]portfolioResponse, 0, len(portfolios))
	for i := range portfolios {
		items = append(items, toPortfolioResponse(&portfolios[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// GetByID handles GET /portfolios/{id}.
func (h *PortfolioHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, portfolio.ErrPortfolioNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to get portfolio", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get portfolio", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPortfolioResponse(p), requestID)
}

// Update handles PATCH /portfolios/{id}.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if req.Name != nil {
		response.Err(w, http.StatusBadRequest, "IMMUTABLE_FIELD", "name cannot be changed", requestID)
		return
	}

	if req.Description != nil && len(*req.Description) > 1000 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "description", Message: "description must be at most 1000 characters"}}, requestID)
		return
	}

	p, err := h.repo.Update(r.Context(), id, portfolio.UpdateFields{Description: req.Description})
	if err != nil {
		if errors.Is(err, portfolio.ErrPortfolioNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to update portfolio", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update portfolio", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPortfolioResponse(p), requestID)
}

// Delete handles DELETE /portfolios/{id}.
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, portfolio.ErrPortfolioNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		if errors.Is(err, portfolio.ErrPortfolioHasPlans) {
			response.Err(w, http.StatusConflict, "PORTFOLIO_HAS_PLANS", "Cannot delete a portfolio with plans", requestID)
			return
		}
		slog.Error("failed to delete portfolio", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete portfolio", requestID)
		return
	}

	response.NoContent(w)
}

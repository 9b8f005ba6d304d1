package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/api/response"
	"github.com/fieldplan/fieldplan/internal/api/validation"
	"github.com/fieldplan/fieldplan/internal/project"
)

// profilePoint is the API representation of a production profile point.
type profilePoint struct {
	Year int     `json:"year"`
	Rate float64 `json:"rate"`
}

// createProjectRequest is the request body for POST /portfolios/{portfolioId}/projects.
type createProjectRequest struct {
	Name      string         `json:"name"`
	SpudYear  int            `json:"spudYear"`
	DrillDays int            `json:"drillDays"`
	Profile   []profilePoint `json:"profile"`
}

// updateProjectRequest is the request body for PATCH /portfolios/{portfolioId}/projects/{id}.
type updateProjectRequest struct {
	Name      *string        `json:"name"`
	SpudYear  *int           `json:"spudYear"`
	DrillDays *int           `json:"drillDays"`
	Profile   []profilePoint `json:"profile"`
}

// projectResponse is the API representation of a project.
type projectResponse struct {
	ID          string         `json:"id"`
	PortfolioID string         `json:"portfolioId"`
	Name        string         `json:"name"`
	SpudYear    int            `json:"spudYear"`
	DrillDays   int            `json:"drillDays"`
	Profile     []profilePoint `json:"profile"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

func toProjectResponse(p *project.Project) projectResponse {
	profile := make([]profilePoint, 0, len(p.Profile))
	for _, pt := range p.Profile {
		profile = append(profile, profilePoint{Year: pt.Year, Rate: pt.Rate})
	}
	return projectResponse{
		ID:          p.ID.String(),
		PortfolioID: p.PortfolioID.String(),
		Name:        p.Name,
		SpudYear:    p.SpudYear,
		DrillDays:   p.DrillDays,
		Profile:     profile,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toValidationProfile(profile []profilePoint) []validation.ProfilePointRequest {
	if profile == nil {
		return nil
	}
	out := make([]validation.ProfilePointRequest, 0, len(profile))
	for _, pt := range profile {
		out = append(out, validation.ProfilePointRequest{Year: pt.Year, Rate: pt.Rate})
	}
	return out
}

// ProjectHandler handles project endpoints nested under a portfolio.
type ProjectHandler struct {
	repo project.Repository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(repo project.Repository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

func portfolioIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "portfolioId"))
}

// Create handles POST /portfolios/{portfolioId}/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolioID, err := portfolioIDParam(r)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	fieldErrors := validation.ValidateCreateProjectRequest(validation.CreateProjectRequest{
		Name:      req.Name,
		SpudYear:  req.SpudYear,
		DrillDays: req.DrillDays,
		Profile:   toValidationProfile(req.Profile),
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	profile := make([]project.ProfilePoint, 0, len(req.Profile))
	for _, pt := range req.Profile {
		profile = append(profile, project.ProfilePoint{Year: pt.Year, Rate: pt.Rate})
	}

	p := &project.Project{
		PortfolioID: portfolioID,
		Name:        req.Name,
		SpudYear:    req.SpudYear,
		DrillDays:   req.DrillDays,
		Profile:     profile,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		switch {
		case errors.Is(err, project.ErrDuplicateProjectName):
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A project named %q already exists in this portfolio", req.Name), requestID)
		case errors.Is(err, project.ErrPortfolioNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
		default:
			slog.Error("failed to create project", "error", err)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project", requestID)
		}
		return
	}

	response.Success(w, http.StatusCreated, toProjectResponse(p), requestID)
}

// List handles GET /portfolios/{portfolioId}/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolioID, err := portfolioIDParam(r)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	projects, err := h.repo.ListByPortfolio(r.Context(), portfolioID)
	if err != nil {
		slog.Error("failed to list projects", "error", err, "portfolioId", portfolioID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list projects", requestID)
		return
	}

	items := make([]projectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, toProjectResponse(&projects[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// GetByID handles GET /portfolios/{portfolioId}/projects/{id}.
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolioID, err := portfolioIDParam(r)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to get project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get project", requestID)
		return
	}

	if p.PortfolioID != portfolioID {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, toProjectResponse(p), requestID)
}

// Update handles PATCH /portfolios/{portfolioId}/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolioID, err := portfolioIDParam(r)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if req.Name != nil {
		response.Err(w, http.StatusBadRequest, "IMMUTABLE_FIELD", "name cannot be changed", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateProjectRequest(validation.UpdateProjectRequest{
		SpudYear:  req.SpudYear,
		DrillDays: req.DrillDays,
		Profile:   toValidationProfile(req.Profile),
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to get project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update project", requestID)
		return
	}
	if existing.PortfolioID != portfolioID {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	var profile []project.ProfilePoint
	if req.Profile != nil {
		profile = make([]project.ProfilePoint, 0, len(req.Profile))
		for _, pt := range req.Profile {
			profile = append(profile, project.ProfilePoint{Year: pt.Year, Rate: pt.Rate})
		}
	}

	p, err := h.repo.Update(r.Context(), id, project.UpdateFields{
		SpudYear:  req.SpudYear,
		DrillDays: req.DrillDays,
		Profile:   profile,
	})
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to update project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update project", requestID)
		return
	}

	response.Success(w, http.StatusOK, toProjectResponse(p), requestID)
}

// Delete handles DELETE /portfolios/{portfolioId}/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	portfolioID, err := portfolioIDParam(r)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to get project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete project", requestID)
		return
	}
	if existing.PortfolioID != portfolioID {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Project not found", requestID)
			return
		}
		slog.Error("failed to delete project", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete project", requestID)
		return
	}

	response.NoContent(w)
}

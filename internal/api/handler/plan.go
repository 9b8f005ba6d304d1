package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/api/response"
	"github.com/fieldplan/fieldplan/internal/api/validation"
	"github.com/fieldplan/fieldplan/internal/plan"
	"github.com/fieldplan/fieldplan/internal/planner"
)

// createPlanRequest is the request body for POST /plans.
type createPlanRequest struct {
	PortfolioID string `json:"portfolioId"`
	Name        string `json:"name"`
	Strategy    string `json:"strategy"`
	StartDate   string `json:"startDate"`
	HorizonDays int    `json:"horizonDays"`
}

// sequenceEntryResponse is the API representation of one sequenced project.
type sequenceEntryResponse struct {
	ProjectID     string `json:"projectId"`
	Name          string `json:"name"`
	StartDay      int    `json:"startDay"`
	DrillStartDay int    `json:"drillStartDay"`
}

// planResponse is the API representation of a plan.
type planResponse struct {
	ID              string                  `json:"id"`
	PortfolioID     string                  `json:"portfolioId"`
	Name            string                  `json:"name"`
	Strategy        string                  `json:"strategy"`
	StartDate       string                  `json:"startDate"`
	HorizonDays     int                     `json:"horizonDays"`
	Status          string                  `json:"status"`
	Failure         *string                 `json:"failure,omitempty"`
	Sequence        []sequenceEntryResponse `json:"sequence,omitempty"`
	Production      []float64               `json:"production,omitempty"`
	TotalProduction *float64                `json:"totalProduction,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

func toPlanResponse(p *plan.Plan) planResponse {
	resp := planResponse{
		ID:              p.ID.String(),
		PortfolioID:     p.PortfolioID.String(),
		Name:            p.Name,
		Strategy:        p.Strategy,
		StartDate:       p.StartDate.UTC().Format("2006-01-02"),
		HorizonDays:     p.HorizonDays,
		Status:          p.Status,
		Failure:         p.Failure,
		Production:      p.Production,
		TotalProduction: p.TotalProduction,
		CreatedAt:       p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for _, e := range p.Sequence {
		resp.Sequence = append(resp.Sequence, toSequenceEntryResponse(e))
	}
	return resp
}

func toSequenceEntryResponse(e planner.SequenceEntry) sequenceEntryResponse {
	return sequenceEntryResponse{
		ProjectID:     e.ProjectID,
		Name:          e.Name,
		StartDay:      e.StartDay,
		DrillStartDay: e.DrillStartDay,
	}
}

// PlanHandler handles plan endpoints. Plans are created pending and picked
// up by the runner; results appear on the plan record once it completes.
type PlanHandler struct {
	repo plan.Repository
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(repo plan.Repository) *PlanHandler {
	return &PlanHandler{repo: repo}
}

// Create handles POST /plans.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Strategy = strings.ToLower(strings.TrimSpace(req.Strategy))
	if req.Strategy == "" {
		req.Strategy = plan.StrategyOrdered
	}

	portfolioID, err := uuid.Parse(req.PortfolioID)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
		return
	}

	fieldErrors := validation.ValidateCreatePlanRequest(validation.CreatePlanRequest{
		Name:        req.Name,
		Strategy:    req.Strategy,
		StartDate:   req.StartDate,
		HorizonDays: req.HorizonDays,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	p := &plan.Plan{
		PortfolioID: portfolioID,
		Name:        req.Name,
		Strategy:    req.Strategy,
		StartDate:   startDate,
		HorizonDays: req.HorizonDays,
		Status:      plan.StatusPending,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, plan.ErrPortfolioNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Portfolio not found", requestID)
			return
		}
		slog.Error("failed to create plan", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create plan", requestID)
		return
	}

	response.Success(w, http.StatusAccepted, toPlanResponse(p), requestID)
}

// List handles GET /plans with optional portfolioId, status, page and limit
// query parameters.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var filter plan.ListFilter

	if v := r.URL.Query().Get("portfolioId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "portfolioId must be a valid UUID", requestID)
			return
		}
		filter.PortfolioID = &id
	}

	if v := r.URL.Query().Get("status"); v != "" {
		switch v {
		case plan.StatusPending, plan.StatusRunning, plan.StatusComplete, plan.StatusError:
			filter.Status = &v
		default:
			response.Err(w, http.StatusBadRequest, "INVALID_STATUS", "status must be one of: pending, running, complete, error", requestID)
			return
		}
	}

	filter.Page = parsePositiveInt(r.URL.Query().Get("page"), 1)
	filter.Limit = parsePositiveInt(r.URL.Query().Get("limit"), 20)
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	result, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list plans", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list plans", requestID)
		return
	}

	items := make([]planResponse, 0, len(result.Plans))
	for i := range result.Plans {
		items = append(items, toPlanResponse(&result.Plans[i]))
	}
	response.SuccessList(w, http.StatusOK, items, result.Total, result.Page, result.Limit, requestID)
}

// GetByID handles GET /plans/{id}.
func (h *PlanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Plan not found", requestID)
			return
		}
		slog.Error("failed to get plan", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get plan", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPlanResponse(p), requestID)
}

// Delete handles DELETE /plans/{id}. Running plans cannot be deleted.
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Plan not found", requestID)
			return
		}
		slog.Error("failed to get plan", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete plan", requestID)
		return
	}

	if p.Status == plan.StatusRunning {
		response.Err(w, http.StatusConflict, "PLAN_RUNNING", "Cannot delete a running plan", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Plan not found", requestID)
			return
		}
		slog.Error("failed to delete plan", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete plan", requestID)
		return
	}

	response.NoContent(w)
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldplan/fieldplan/internal/allocation"
	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/api/response"
	"github.com/fieldplan/fieldplan/internal/api/validation"
	"github.com/fieldplan/fieldplan/internal/helicopter"
	"github.com/fieldplan/fieldplan/internal/logistics"
)

// allocationTeam is one team in an allocation request or response.
type allocationTeam struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Destination string `json:"destination"`
}

// createAllocationRequest is the request body for POST /allocations. The
// fleet is taken from the helicopter register; seed, scenarios and sigma
// drive the optional demand-uncertainty evaluation.
type createAllocationRequest struct {
	Name      string           `json:"name"`
	Teams     []allocationTeam `json:"teams"`
	Seed      *int64           `json:"seed"`
	Scenarios int              `json:"scenarios"`
	Sigma     float64          `json:"sigma"`
}

// allocationResponse is the API representation of a solved allocation.
type allocationResponse struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Seed              int64                      `json:"seed"`
	Scenarios         int                        `json:"scenarios"`
	Sigma             float64                    `json:"sigma"`
	Teams             []allocationTeam           `json:"teams"`
	Flights           []logistics.Flight         `json:"flights"`
	Unassigned        []string                   `json:"unassigned"`
	EmptySeats        int                        `json:"emptySeats"`
	ExpectedShortfall float64                    `json:"expectedShortfall"`
	WorstShortfall    int                        `json:"worstShortfall"`
	Fleet             []logistics.HelicopterSpec `json:"fleet"`
	CreatedAt         string                     `json:"createdAt"`
}

func toAllocationResponse(a *allocation.Allocation) allocationResponse {
	teams := make([]allocationTeam, 0, len(a.Teams))
	for _, t := range a.Teams {
		teams = append(teams, allocationTeam{Name: t.Name, Size: t.Size, Destination: t.Destination})
	}
	return allocationResponse{
		ID:                a.ID.String(),
		Name:              a.Name,
		Seed:              a.Seed,
		Scenarios:         a.Scenarios,
		Sigma:             a.Sigma,
		Teams:             teams,
		Flights:           a.Flights,
		Unassigned:        a.Unassigned,
		EmptySeats:        a.EmptySeats,
		ExpectedShortfall: a.ExpectedShortfall,
		WorstShortfall:    a.WorstShortfall,
		Fleet:             a.Fleet,
		CreatedAt:         a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// AllocationHandler handles crew transport allocation endpoints. Solving is
// synchronous; the result is persisted with its inputs.
type AllocationHandler struct {
	repo     allocation.Repository
	heliRepo helicopter.Repository
	runs     prometheus.Counter
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(repo allocation.Repository, heliRepo helicopter.Repository, runs prometheus.Counter) *AllocationHandler {
	return &AllocationHandler{repo: repo, heliRepo: heliRepo, runs: runs}
}

// Create handles POST /allocations.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	vTeams := make([]validation.AllocationTeamRequest, 0, len(req.Teams))
	for _, t := range req.Teams {
		vTeams = append(vTeams, validation.AllocationTeamRequest{Name: t.Name, Size: t.Size, Destination: t.Destination})
	}
	fieldErrors := validation.ValidateCreateAllocationRequest(validation.CreateAllocationRequest{
		Name:      req.Name,
		Teams:     vTeams,
		Scenarios: req.Scenarios,
		Sigma:     req.Sigma,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	helicopters, err := h.heliRepo.List(r.Context())
	if err != nil {
		slog.Error("failed to list helicopters", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load the fleet", requestID)
		return
	}

	fleet := make([]logistics.HelicopterSpec, 0, len(helicopters))
	for _, hc := range helicopters {
		fleet = append(fleet, logistics.HelicopterSpec{TailNumber: hc.TailNumber, Seats: hc.Seats})
	}

	teams := make([]logistics.TeamRequest, 0, len(req.Teams))
	for _, t := range req.Teams {
		teams = append(teams, logistics.TeamRequest{
			Name:        strings.TrimSpace(t.Name),
			Size:        t.Size,
			Destination: strings.TrimSpace(t.Destination),
		})
	}

	sol, err := logistics.Solve(teams, fleet)
	if err != nil {
		if errors.Is(err, logistics.ErrNoFleet) {
			response.Err(w, http.StatusConflict, "NO_FLEET", "No helicopters are registered", requestID)
			return
		}
		slog.Error("failed to solve allocation", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to solve allocation", requestID)
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	stats := logistics.EvaluateScenarios(sol, teams, req.Scenarios, req.Sigma, rand.NewSource(seed))

	a := &allocation.Allocation{
		Name:              req.Name,
		Seed:              seed,
		Scenarios:         req.Scenarios,
		Sigma:             req.Sigma,
		Teams:             teams,
		Fleet:             fleet,
		Flights:           sol.Flights,
		Unassigned:        sol.Unassigned,
		EmptySeats:        sol.EmptySeats,
		ExpectedShortfall: stats.ExpectedShortfall,
		WorstShortfall:    stats.WorstShortfall,
	}

	if err := h.repo.Create(r.Context(), a); err != nil {
		slog.Error("failed to store allocation", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store allocation", requestID)
		return
	}

	h.runs.Inc()
	slog.Info("allocation solved", "allocation", a.Name, "flights", len(a.Flights), "unassigned", len(a.Unassigned))

	response.Success(w, http.StatusCreated, toAllocationResponse(a), requestID)
}

// List handles GET /allocations.
func (h *AllocationHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	allocations, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list allocations", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list allocations", requestID)
		return
	}

	items := make([]allocationResponse, 0, len(allocations))
	for i := range allocations {
		items = append(items, toAllocationResponse(&allocations[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// GetByID handles GET /allocations/{id}.
func (h *AllocationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	a, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, allocation.ErrAllocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Allocation not found", requestID)
			return
		}
		slog.Error("failed to get allocation", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get allocation", requestID)
		return
	}

	response.Success(w, http.StatusOK, toAllocationResponse(a), requestID)
}

// Delete handles DELETE /allocations/{id}.
func (h *AllocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, allocation.ErrAllocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Allocation not found", requestID)
			return
		}
		slog.Error("failed to delete allocation", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete allocation", requestID)
		return
	}

	response.NoContent(w)
}

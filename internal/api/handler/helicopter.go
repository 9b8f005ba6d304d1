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
	"github.com/fieldplan/fieldplan/internal/helicopter"
)

// createHelicopterRequest is the request body for POST /helicopters.
type createHelicopterRequest struct {
	TailNumber     string     `json:"tailNumber"`
	Model          string     `json:"model"`
	Seats          int        `json:"seats"`
	BaseLocationID *uuid.UUID `json:"baseLocationId"`
}

// updateHelicopterRequest is the request body for PATCH /helicopters/{id}.
type updateHelicopterRequest struct {
	TailNumber     *string    `json:"tailNumber"`
	Model          *string    `json:"model"`
	Seats          *int       `json:"seats"`
	BaseLocationID *uuid.UUID `json:"baseLocationId"`
}

// helicopterResponse is the API representation of a helicopter.
type helicopterResponse struct {
	ID             string  `json:"id"`
	TailNumber     string  `json:"tailNumber"`
	Model          string  `json:"model"`
	Seats          int     `json:"seats"`
	BaseLocationID *string `json:"baseLocationId,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

func toHelicopterResponse(h *helicopter.Helicopter) helicopterResponse {
	resp := helicopterResponse{
		ID:         h.ID.String(),
		TailNumber: h.TailNumber,
		Model:      h.Model,
		Seats:      h.Seats,
		CreatedAt:  h.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  h.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if h.BaseLocationID != nil {
		s := h.BaseLocationID.String()
		resp.BaseLocationID = &s
	}
	return resp
}

// HelicopterHandler handles helicopter CRUD endpoints.
type HelicopterHandler struct {
	repo helicopter.Repository
}

// NewHelicopterHandler creates a new HelicopterHandler.
func NewHelicopterHandler(repo helicopter.Repository) *HelicopterHandler {
	return &HelicopterHandler{repo: repo}
}

// Create handles POST /helicopters.
func (h *HelicopterHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createHelicopterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.TailNumber = strings.ToUpper(strings.TrimSpace(req.TailNumber))

	fieldErrors := validation.ValidateCreateHelicopterRequest(validation.CreateHelicopterRequest{
		TailNumber: req.TailNumber,
		Model:      req.Model,
		Seats:      req.Seats,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	heli := &helicopter.Helicopter{
		TailNumber:     req.TailNumber,
		Model:          req.Model,
		Seats:          req.Seats,
		BaseLocationID: req.BaseLocationID,
	}

	if err := h.repo.Create(r.Context(), heli); err != nil {
		if errors.Is(err, helicopter.ErrDuplicateTailNumber) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A helicopter with tail number %q already exists", req.TailNumber), requestID)
			return
		}
		if errors.Is(err, helicopter.ErrLocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Base location not found", requestID)
			return
		}
		slog.Error("failed to create helicopter", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create helicopter", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toHelicopterResponse(heli), requestID)
}

// List handles GET /helicopters.
func (h *HelicopterHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	fleet, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list helicopters", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list helicopters", requestID)
		return
	}

	items := make([]helicopterResponse, 0, len(fleet))
	for i := range fleet {
		items = append(items, toHelicopterResponse(&fleet[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// GetByID handles GET /helicopters/{id}.
func (h *HelicopterHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	heli, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, helicopter.ErrHelicopterNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Helicopter not found", requestID)
			return
		}
		slog.Error("failed to get helicopter", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get helicopter", requestID)
		return
	}

	response.Success(w, http.StatusOK, toHelicopterResponse(heli), requestID)
}

// Update handles PATCH /helicopters/{id}.
func (h *HelicopterHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateHelicopterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if req.TailNumber != nil {
		response.Err(w, http.StatusBadRequest, "IMMUTABLE_FIELD", "tailNumber cannot be changed", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateHelicopterRequest(validation.UpdateHelicopterRequest{
		Model: req.Model,
		Seats: req.Seats,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	fields := helicopter.UpdateFields{
		Model:          req.Model,
		Seats:          req.Seats,
		BaseLocationID: req.BaseLocationID,
	}

	heli, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, helicopter.ErrHelicopterNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Helicopter not found", requestID)
			return
		}
		if errors.Is(err, helicopter.ErrLocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Base location not found", requestID)
			return
		}
		slog.Error("failed to update helicopter", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update helicopter", requestID)
		return
	}

	response.Success(w, http.StatusOK, toHelicopterResponse(heli), requestID)
}

// Delete handles DELETE /helicopters/{id}.
func (h *HelicopterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, helicopter.ErrHelicopterNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Helicopter not found", requestID)
			return
		}
		slog.Error("failed to delete helicopter", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete helicopter", requestID)
		return
	}

	response.NoContent(w)
}

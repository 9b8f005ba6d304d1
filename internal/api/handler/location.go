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
	"github.com/fieldplan/fieldplan/internal/location"
)

// createLocationRequest is the request body for POST /locations.
type createLocationRequest struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Berths int    `json:"berths"`
}

// updateLocationRequest is the request body for PATCH /locations/{id}.
type updateLocationRequest struct {
	Name   *string `json:"name"`
	Kind   *string `json:"kind"`
	Berths *int    `json:"berths"`
}

// locationResponse is the API representation of a location.
type locationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Berths    int    `json:"berths"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toLocationResponse(loc *location.Location) locationResponse {
	return locationResponse{
		ID:        loc.ID.String(),
		Name:      loc.Name,
		Kind:      loc.Kind,
		Berths:    loc.Berths,
		CreatedAt: loc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: loc.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// LocationHandler handles location CRUD endpoints.
type LocationHandler struct {
	repo location.Repository
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(repo location.Repository) *LocationHandler {
	return &LocationHandler{repo: repo}
}

// Create handles POST /locations.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	fieldErrors := validation.ValidateCreateLocationRequest(validation.CreateLocationRequest{
		Name:   req.Name,
		Kind:   req.Kind,
		Berths: req.Berths,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	loc := &location.Location{
		Name:   req.Name,
		Kind:   req.Kind,
		Berths: req.Berths,
	}

	if err := h.repo.Create(r.Context(), loc); err != nil {
		if errors.Is(err, location.ErrDuplicateLocationName) {
			response.Err(w, http.StatusConflict, "DUPLICATE_NAME", fmt.Sprintf("A location named %q already exists", req.Name), requestID)
			return
		}
		slog.Error("failed to create location", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create location", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toLocationResponse(loc), requestID)
}

// List handles GET /locations.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	locs, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list locations", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list locations", requestID)
		return
	}

	items := make([]locationResponse, 0, len(locs))
	for i := range locs {
		items = append(items, toLocationResponse(&locs[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// GetByID handles GET /locations/{id}.
func (h *LocationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	loc, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Location not found", requestID)
			return
		}
		slog.Error("failed to get location", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get location", requestID)
		return
	}

	response.Success(w, http.StatusOK, toLocationResponse(loc), requestID)
}

// Update handles PATCH /locations/{id}.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if req.Name != nil {
		response.Err(w, http.StatusBadRequest, "IMMUTABLE_FIELD", "name cannot be changed", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateLocationRequest(validation.UpdateLocationRequest{
		Kind:   req.Kind,
		Berths: req.Berths,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	fields := location.UpdateFields{
		Kind:   req.Kind,
		Berths: req.Berths,
	}

	loc, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Location not found", requestID)
			return
		}
		slog.Error("failed to update location", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update location", requestID)
		return
	}

	response.Success(w, http.StatusOK, toLocationResponse(loc), requestID)
}

// Delete handles DELETE /locations/{id}.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Location not found", requestID)
			return
		}
		if errors.Is(err, location.ErrLocationInUse) {
			response.Err(w, http.StatusConflict, "LOCATION_IN_USE", "Cannot delete a location with assigned teams or based helicopters", requestID)
			return
		}
		slog.Error("failed to delete location", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete location", requestID)
		return
	}

	response.NoContent(w)
}

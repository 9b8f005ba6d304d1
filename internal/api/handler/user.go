package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldplan/fieldplan/internal/api/middleware"
	"github.com/fieldplan/fieldplan/internal/api/response"
	"github.com/fieldplan/fieldplan/internal/api/validation"
	"github.com/fieldplan/fieldplan/internal/auth"
)

// createUserRequest is the request body for POST /users.
type createUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// userResponse is the API representation of a user. ApiKey is only set on
// creation; the raw key is never recoverable afterwards.
type userResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Role         *string `json:"role"`
	IsSuperuser  bool    `json:"isSuperuser"`
	ApiKeyPrefix string  `json:"apiKeyPrefix"`
	ApiKey       string  `json:"apiKey,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	RevokedAt    *string `json:"revokedAt,omitempty"`
}

func toUserResponse(u *auth.User) userResponse {
	resp := userResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Role:         u.Role,
		IsSuperuser:  u.IsSuperuser,
		ApiKeyPrefix: u.ApiKeyPrefix,
		CreatedAt:    u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if u.RevokedAt != nil {
		s := u.RevokedAt.UTC().Format("2006-01-02T15:04:05Z")
		resp.RevokedAt = &s
	}
	return resp
}

// UserHandler handles user management endpoints. All routes require a
// superuser identity.
type UserHandler struct {
	repo        auth.UserRepository
	authService *auth.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(repo auth.UserRepository, authService *auth.Service) *UserHandler {
	return &UserHandler{repo: repo, authService: authService}
}

// Create handles POST /users. The response carries the raw API key exactly
// once.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	fieldErrors := validation.ValidateCreateUserRequest(validation.CreateUserRequest{
		Name: req.Name,
		Role: req.Role,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	rawKey, prefix, hash, err := h.authService.GenerateKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", requestID)
		return
	}

	role := req.Role
	u := &auth.User{
		Name:         req.Name,
		Role:         &role,
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}

	if err := h.repo.Create(r.Context(), u); err != nil {
		slog.Error("failed to create user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", requestID)
		return
	}

	resp := toUserResponse(u)
	resp.ApiKey = rawKey
	response.Success(w, http.StatusCreated, resp, requestID)
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	users, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users", requestID)
		return
	}

	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	response.SuccessList(w, http.StatusOK, items, len(items), 1, 100, requestID)
}

// Revoke handles DELETE /users/{id}. Revocation keeps the row but rejects
// the user's key from then on.
func (h *UserHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if identity := middleware.GetIdentity(r.Context()); identity != nil && identity.UserID == id {
		response.Err(w, http.StatusConflict, "SELF_REVOKE", "Cannot revoke your own key", requestID)
		return
	}

	if err := h.repo.Revoke(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
		case errors.Is(err, auth.ErrUserRevoked):
			response.Err(w, http.StatusConflict, "ALREADY_REVOKED", "User is already revoked", requestID)
		default:
			slog.Error("failed to revoke user", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke user", requestID)
		}
		return
	}

	response.NoContent(w)
}

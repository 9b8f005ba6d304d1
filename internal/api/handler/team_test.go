package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fieldplan/fieldplan/internal/api/handler"
	"github.com/fieldplan/fieldplan/internal/location"
	"github.com/fieldplan/fieldplan/internal/team"
)

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn  func(ctx context.Context, t *team.Team) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listFn    func(ctx context.Context) ([]team.Team, error)
	updateFn  func(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]team.Team, error) {
	return []team.Team{}, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock Location Repository ---

type mockLocationRepo struct {
	createFn    func(ctx context.Context, loc *location.Location) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*location.Location, error)
	getByNameFn func(ctx context.Context, name string) (*location.Location, error)
	listFn      func(ctx context.Context) ([]location.Location, error)
	updateFn    func(ctx context.Context, id uuid.UUID, fields location.UpdateFields) (*location.Location, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockLocationRepo) Create(ctx context.Context, loc *location.Location) error {
	if m.createFn != nil {
		return m.createFn(ctx, loc)
	}
	loc.ID = uuid.New()
	loc.CreatedAt = time.Now().UTC()
	loc.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockLocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, location.ErrLocationNotFound
}

func (m *mockLocationRepo) GetByName(ctx context.Context, name string) (*location.Location, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, location.ErrLocationNotFound
}

func (m *mockLocationRepo) List(ctx context.Context) ([]location.Location, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []location.Location{}, nil
}

func (m *mockLocationRepo) Update(ctx context.Context, id uuid.UUID, fields location.UpdateFields) (*location.Location, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, location.ErrLocationNotFound
}

func (m *mockLocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Helpers ---

func sampleTeam(id uuid.UUID) *team.Team {
	now := time.Now().UTC()
	return &team.Team{
		ID:        id,
		Name:      "drilling-crew",
		Size:      9,
		Specialty: "drilling",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ===== POST /teams =====

func TestTeamCreate_Success(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"name":      "drilling-crew",
		"size":      9,
		"specialty": "drilling",
	})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	env := parseEnvelope(t, w)
	assert.Nil(t, env["error"])
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "drilling-crew", data["name"])
	assert.Equal(t, 9.0, data["size"])
	assert.NotEmpty(t, data["id"])
}

func TestTeamCreate_ResolvesLocationByName(t *testing.T) {
	t.Parallel()

	locID := uuid.New()
	locRepo := &mockLocationRepo{
		getByNameFn: func(ctx context.Context, name string) (*location.Location, error) {
			assert.Equal(t, "ekofisk-b", name)
			return &location.Location{ID: locID, Name: name, Kind: "platform"}, nil
		},
	}
	h := handler.NewTeamHandler(&mockTeamRepo{}, locRepo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "catering-crew",
		"size":         4,
		"specialty":    "catering",
		"locationName": "ekofisk-b",
	})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, locID.String(), data["locationId"])
}

func TestTeamCreate_UnknownLocation(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "catering-crew",
		"size":         4,
		"locationName": "nowhere",
	})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestTeamCreate_ValidationError(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	body, _ := json.Marshal(map[string]interface{}{"size": 0})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errCode(t, w))
}

func TestTeamCreate_DuplicateName(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{
		createFn: func(ctx context.Context, tm *team.Team) error {
			return team.ErrDuplicateTeamName
		},
	}
	h := handler.NewTeamHandler(repo, &mockLocationRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"name": "drilling-crew",
		"size": 9,
	})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_NAME", errCode(t, w))
}

func TestTeamCreate_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	req, w := makeChiRequest(http.MethodPost, "/teams", []byte("{not json"), nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", errCode(t, w))
}

// ===== GET /teams/{id} =====

func TestTeamGetByID_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockTeamRepo{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*team.Team, error) {
			assert.Equal(t, id, gotID)
			return sampleTeam(id), nil
		},
	}
	h := handler.NewTeamHandler(repo, &mockLocationRepo{})

	req, w := makeChiRequest(http.MethodGet, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, id.String(), data["id"])
}

func TestTeamGetByID_NotFound(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	id := uuid.New()
	req, w := makeChiRequest(http.MethodGet, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

func TestTeamGetByID_InvalidID(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	req, w := makeChiRequest(http.MethodGet, "/teams/abc", nil, map[string]string{"id": "abc"})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errCode(t, w))
}

// ===== PATCH /teams/{id} =====

func TestTeamUpdate_NameIsImmutable(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"name": "renamed"})

	req, w := makeChiRequest(http.MethodPatch, "/teams/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "IMMUTABLE_FIELD", errCode(t, w))
}

func TestTeamUpdate_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockTeamRepo{
		updateFn: func(ctx context.Context, gotID uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
			assert.Equal(t, id, gotID)
			assert.NotNil(t, fields.Size)
			assert.Equal(t, 12, *fields.Size)
			tm := sampleTeam(id)
			tm.Size = 12
			return tm, nil
		},
	}
	h := handler.NewTeamHandler(repo, &mockLocationRepo{})

	body, _ := json.Marshal(map[string]interface{}{"size": 12})

	req, w := makeChiRequest(http.MethodPatch, "/teams/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 12.0, data["size"])
}

// ===== DELETE /teams/{id} =====

func TestTeamDelete_Success(t *testing.T) {
	t.Parallel()

	h := handler.NewTeamHandler(&mockTeamRepo{}, &mockLocationRepo{})

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestTeamDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return team.ErrTeamNotFound
		},
	}
	h := handler.NewTeamHandler(repo, &mockLocationRepo{})

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, w))
}

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapsense/snapsense-server/internal/domain"
)

func TestListProfiles_SeedsDemoProfiles(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeData[struct {
		Profiles   []domain.Profile `json:"profiles"`
		SelectedID string           `json:"selected_id"`
	}](t, resp)

	require.Len(t, body.Profiles, 2)
	assert.Equal(t, "aria", body.Profiles[0].ID)
	assert.Equal(t, "dev", body.Profiles[1].ID)
	assert.Empty(t, body.SelectedID)
}

func TestCreateProfile(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/profiles", map[string]any{
		"name": "  Noor ",
		"age":  6,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	created := decodeData[domain.Profile](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Noor", created.Name)
	assert.Equal(t, 1, created.Level)
	assert.Zero(t, created.Exp)
	assert.Equal(t, domain.DefaultAvatarColor, created.AvatarColor)

	resp = ts.api.Get("/api/v1/profiles/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, created, decodeData[domain.Profile](t, resp))

	assert.Len(t, ts.services.Profile.Profiles(), 3)
}

func TestCreateProfile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"too old", map[string]any{"name": "Sam", "age": 9}},
		{"too young", map[string]any{"name": "Sam", "age": 2}},
		{"blank name", map[string]any{"name": "   ", "age": 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			resp := ts.api.Post("/api/v1/profiles", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

			apiErr := decodeError(t, resp)
			assert.Equal(t, "VALIDATION", apiErr.Code)
			assert.NotEmpty(t, apiErr.Details)
			assert.Len(t, ts.services.Profile.Profiles(), 2)
		})
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/profiles/ghost")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestDeleteProfile(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/selection", map[string]any{"profile_id": "dev"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/profiles/dev")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	assert.False(t, ts.services.Profile.Exists("dev"))
	assert.Empty(t, ts.services.Profile.SelectedID())

	// Unknown ids are a no-op.
	resp = ts.api.Delete("/api/v1/profiles/dev")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Len(t, ts.services.Profile.Profiles(), 1)
}

func TestSelection(t *testing.T) {
	ts := setupTestServer(t)

	type selection struct {
		ProfileID string          `json:"profile_id"`
		Profile   *domain.Profile `json:"profile"`
	}

	resp := ts.api.Get("/api/v1/selection")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeData[selection](t, resp).ProfileID)

	resp = ts.api.Put("/api/v1/selection", map[string]any{"profile_id": "aria"})
	require.Equal(t, http.StatusOK, resp.Code)
	sel := decodeData[selection](t, resp)
	assert.Equal(t, "aria", sel.ProfileID)
	require.NotNil(t, sel.Profile)
	assert.Equal(t, "Aria", sel.Profile.Name)

	resp = ts.api.Put("/api/v1/selection", map[string]any{"profile_id": ""})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeData[selection](t, resp).ProfileID)
	assert.Empty(t, ts.services.Profile.SelectedID())
}

func TestSelection_UnknownProfile(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/selection", map[string]any{"profile_id": "aria"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put("/api/v1/selection", map[string]any{"profile_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
	assert.Equal(t, "aria", ts.services.Profile.SelectedID())
}

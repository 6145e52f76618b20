package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aiko543/quotedeck/internal/config"
)

func TestSyncSettingsController_GetSettings(t *testing.T) {
	t.Run("returns defaults with sources", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.GET("/api/settings/sync", controller.GetSettings)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/settings/sync", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response SyncSettingsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.False(t, response.Config.Enabled)
		assert.Equal(t, "default", response.Config.EnabledSource)
		assert.Equal(t, config.DefaultSyncSchedule, response.Config.Schedule)
		assert.Equal(t, config.PolicyServerWins, response.Config.ConflictPolicy)
		assert.NotEmpty(t, response.Presets)
	})
}

func TestSyncSettingsController_UpdateSettings(t *testing.T) {
	t.Run("saves overrides to the database", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.POST("/api/settings/sync", controller.UpdateSettings)

		body := `{"enabled": true, "schedule": "0 * * * * *", "conflict_policy": "local-wins"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/settings/sync", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		assert.True(t, fixture.settings.GetSyncEnabled())
		assert.Equal(t, "0 * * * * *", fixture.settings.GetSyncSchedule())
		assert.Equal(t, config.PolicyLocalWins, fixture.settings.GetConflictPolicy())
		assert.Equal(t, "database", fixture.settings.GetSyncEnabledSource())
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.POST("/api/settings/sync", controller.UpdateSettings)

		body := `{"enabled": true}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/settings/sync", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, fixture.settings.GetSyncEnabled())
		assert.Equal(t, "default", fixture.settings.GetSyncScheduleSource())
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.POST("/api/settings/sync", controller.UpdateSettings)

		body := `{"schedule": "not a cron line"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/settings/sync", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid schedule")
	})

	t.Run("rejects invalid conflict policy", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.POST("/api/settings/sync", controller.UpdateSettings)

		body := `{"conflict_policy": "coin-flip"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/settings/sync", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid conflict policy")
	})
}

func TestSyncSettingsController_ResetSettings(t *testing.T) {
	t.Run("clears database overrides", func(t *testing.T) {
		fixture, cleanup := setupControllerTest(t)
		defer cleanup()

		require.NoError(t, fixture.settings.SetSyncEnabled(true))
		require.NoError(t, fixture.settings.SetConflictPolicy(config.PolicyManual))

		controller := NewSyncSettingsController(fixture.settings, nil)

		router := gin.New()
		router.POST("/api/settings/sync/reset", controller.ResetSettings)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/settings/sync/reset", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "default", fixture.settings.GetSyncEnabledSource())
		assert.Equal(t, config.PolicyServerWins, fixture.settings.GetConflictPolicy())
	})
}

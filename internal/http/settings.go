package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/scheduler"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// SyncSettingsController handles quote sync settings and schedule changes.
type SyncSettingsController struct {
	settingsStore *settingsstore.SettingsStore
	scheduler     *scheduler.QuoteSyncScheduler
}

func NewSyncSettingsController(store *settingsstore.SettingsStore, sched *scheduler.QuoteSyncScheduler) *SyncSettingsController {
	return &SyncSettingsController{
		settingsStore: store,
		scheduler:     sched,
	}
}

// SchedulePreset is a predefined schedule option for the settings UI.
type SchedulePreset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func schedulePresets() []SchedulePreset {
	return []SchedulePreset{
		{Label: "Every 30 seconds", Value: "*/30 * * * * *", Description: "Aggressive, for testing"},
		{Label: "Every minute", Value: "0 * * * * *", Description: "Frequent updates"},
		{Label: "Every 5 minutes", Value: "0 */5 * * * *", Description: "Balanced"},
		{Label: "Every hour", Value: "0 0 * * * *", Description: "Light traffic"},
	}
}

// SyncSettingsResponse is the response for GET /api/settings/sync
type SyncSettingsResponse struct {
	Config    settingsstore.QuoteSyncConfigInfo `json:"config"`
	Status    settingsstore.QuoteSyncStatus     `json:"status"`
	NextRun   *time.Time                        `json:"next_run,omitempty"`
	IsRunning bool                              `json:"is_running"`
	IsSyncing bool                              `json:"is_syncing"`
	Presets   []SchedulePreset                  `json:"presets"`
}

// GetSettings returns current sync settings with per-field sources.
func (c *SyncSettingsController) GetSettings(ctx *gin.Context) {
	response := SyncSettingsResponse{
		Config:  c.settingsStore.GetSyncConfigInfo(),
		Status:  c.settingsStore.GetSyncStatus(),
		Presets: schedulePresets(),
	}

	if c.scheduler != nil {
		response.NextRun = c.scheduler.GetNextRunTime()
		response.IsRunning = c.scheduler.IsRunning()
		response.IsSyncing = c.scheduler.IsSyncing()
	}

	ctx.IndentedJSON(http.StatusOK, response)
}

// UpdateSettingsRequest carries partial updates; nil fields are left unchanged.
type UpdateSettingsRequest struct {
	Enabled        *bool   `json:"enabled"`
	Schedule       *string `json:"schedule"`
	ConflictPolicy *string `json:"conflict_policy"`
}

// UpdateSettings saves sync settings and reschedules the running scheduler.
func (c *SyncSettingsController) UpdateSettings(ctx *gin.Context) {
	var req UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Schedule != nil {
		if err := settingsstore.ValidateCronSchedule(*req.Schedule); err != nil {
			ctx.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid schedule: " + err.Error()})
			return
		}
	}
	if req.ConflictPolicy != nil && !config.ValidConflictPolicy(config.ConflictPolicy(*req.ConflictPolicy)) {
		ctx.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid conflict policy: " + *req.ConflictPolicy})
		return
	}

	if req.Enabled != nil {
		if err := c.settingsStore.SetSyncEnabled(*req.Enabled); err != nil {
			ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Schedule != nil {
		if err := c.settingsStore.SetSyncSchedule(*req.Schedule); err != nil {
			ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.ConflictPolicy != nil {
		if err := c.settingsStore.SetConflictPolicy(config.ConflictPolicy(*req.ConflictPolicy)); err != nil {
			ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if c.scheduler != nil {
		if err := c.scheduler.Reschedule(); err != nil {
			ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "settings saved but reschedule failed: " + err.Error()})
			return
		}
	}

	ctx.IndentedJSON(http.StatusOK, gin.H{
		"message": "Sync settings saved",
		"config":  c.settingsStore.GetSyncConfigInfo(),
	})
}

// ResetSettings clears database overrides so environment values apply again.
func (c *SyncSettingsController) ResetSettings(ctx *gin.Context) {
	if err := c.settingsStore.ClearSyncSettings(); err != nil {
		ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.scheduler != nil {
		if err := c.scheduler.Reschedule(); err != nil {
			ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "settings reset but reschedule failed: " + err.Error()})
			return
		}
	}

	ctx.IndentedJSON(http.StatusOK, gin.H{
		"message": "Sync settings reset to environment defaults",
		"config":  c.settingsStore.GetSyncConfigInfo(),
	})
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/database/syncruns"
	"github.com/Aiko543/quotedeck/internal/scheduler"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/syncer"
)

type SyncController struct {
	engine        *syncer.Engine
	scheduler     *scheduler.QuoteSyncScheduler
	runs          *syncruns.Repository
	settingsStore *settingsstore.SettingsStore
}

func NewSyncController(engine *syncer.Engine, sched *scheduler.QuoteSyncScheduler, runs *syncruns.Repository, store *settingsstore.SettingsStore) *SyncController {
	return &SyncController{
		engine:        engine,
		scheduler:     sched,
		runs:          runs,
		settingsStore: store,
	}
}

// RunSync triggers a sync cycle and waits for it to finish. A cycle
// already in flight is not interrupted; the caller gets a 409 instead.
func (controller *SyncController) RunSync(c *gin.Context) {
	result, err := controller.engine.RunCycle(c.Request.Context())
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

type SyncStatusResponse struct {
	Status     settingsstore.QuoteSyncStatus `json:"status"`
	IsSyncing  bool                          `json:"is_syncing"`
	NextRun    interface{}                   `json:"next_run,omitempty"`
	LatestRun  interface{}                   `json:"latest_run,omitempty"`
	RecentRuns interface{}                   `json:"recent_runs,omitempty"`
}

// GetStatus reports the last sync outcome plus run history.
func (controller *SyncController) GetStatus(c *gin.Context) {
	response := SyncStatusResponse{
		Status:    controller.settingsStore.GetSyncStatus(),
		IsSyncing: controller.engine.IsSyncing(),
	}

	if controller.scheduler != nil {
		if next := controller.scheduler.GetNextRunTime(); next != nil {
			response.NextRun = next
		}
	}

	if latest, err := controller.runs.GetLatest(); err == nil {
		response.LatestRun = latest
	}
	if recent, err := controller.runs.GetRecent(10); err == nil {
		response.RecentRuns = recent
	}

	c.IndentedJSON(http.StatusOK, response)
}

// GetConflicts lists unresolved conflicts held from the last manual-policy cycle.
func (controller *SyncController) GetConflicts(c *gin.Context) {
	conflicts := controller.engine.PendingConflicts()
	c.IndentedJSON(http.StatusOK, gin.H{"conflicts": conflicts, "count": len(conflicts)})
}

type ResolveConflictsRequest struct {
	// Maps external IDs to "server" or "local". Omitted conflicts
	// default to the server version.
	Resolutions map[string]syncer.Resolution `json:"resolutions"`
}

// ResolveConflicts discharges held conflicts with the caller's choices.
func (controller *SyncController) ResolveConflicts(c *gin.Context) {
	var req ResolveConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for externalID, resolution := range req.Resolutions {
		if resolution != syncer.ResolutionServer && resolution != syncer.ResolutionLocal {
			c.IndentedJSON(http.StatusBadRequest, gin.H{
				"error": "invalid resolution for " + externalID + ": must be \"server\" or \"local\"",
			})
			return
		}
	}

	resolved, err := controller.engine.ApplyResolutions(req.Resolutions)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"resolved": resolved})
}

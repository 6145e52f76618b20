package http

import (
	"github.com/Aiko543/quotedeck/internal/audit"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/syncruns"
	"github.com/Aiko543/quotedeck/internal/exporters"
	"github.com/Aiko543/quotedeck/internal/importers"
	"github.com/Aiko543/quotedeck/internal/picker"
	"github.com/Aiko543/quotedeck/internal/scheduler"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/syncer"
	"github.com/Aiko543/quotedeck/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database   *database.Database
	QuoteStore QuoteStore
	Picker     *picker.Picker
	Importer   *importers.JSONImporter
	Exporter   *exporters.JSONExporter

	// Auditor archives raw import payloads (optional)
	Auditor *audit.Auditor

	// Settings persistence (category filter + sync config)
	SettingsStore *settingsstore.SettingsStore

	// Sync engine and its run history (optional; sync routes are
	// skipped when Engine is nil)
	Engine    *syncer.Engine
	Runs      *syncruns.Repository
	Scheduler *scheduler.QuoteSyncScheduler

	// Session tracking for last viewed quote (optional)
	SessionManager *SessionManager

	// Task queue client for background pushes (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}

package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session middleware tracks the last viewed quote per browser
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	quotesController := NewQuotesController(cfg.QuoteStore, cfg.Picker, cfg.SettingsStore, cfg.SessionManager, cfg.TaskClient)
	categoriesController := NewCategoriesController(cfg.QuoteStore, cfg.SettingsStore)
	importController := NewJSONImportController(cfg.Importer, cfg.Auditor)
	exportController := NewExportController(cfg.Exporter)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Quotes API endpoints
	router.GET("/api/quotes", quotesController.GetAllQuotes)
	router.POST("/api/quotes", quotesController.AddQuote)
	router.GET("/api/quotes/random", quotesController.GetRandomQuote)
	router.GET("/api/quotes/last", quotesController.GetLastViewed)
	router.GET("/api/quotes/stats", quotesController.GetQuoteStats)

	// Category endpoints
	router.GET("/api/categories", categoriesController.GetCategories)
	router.GET("/api/categories/filter", categoriesController.GetFilter)
	router.PUT("/api/categories/filter", categoriesController.SetFilter)

	// Import/export endpoints
	router.POST("/api/quotes/import", importController.Import)
	router.GET("/api/quotes/export", exportController.Export)

	// Sync endpoints
	if cfg.Engine != nil {
		syncController := NewSyncController(cfg.Engine, cfg.Scheduler, cfg.Runs, cfg.SettingsStore)
		router.POST("/api/sync/run", syncController.RunSync)
		router.GET("/api/sync/status", syncController.GetStatus)
		router.GET("/api/sync/conflicts", syncController.GetConflicts)
		router.POST("/api/sync/conflicts/resolve", syncController.ResolveConflicts)

		settingsController := NewSyncSettingsController(cfg.SettingsStore, cfg.Scheduler)
		router.GET("/api/settings/sync", settingsController.GetSettings)
		router.POST("/api/settings/sync", settingsController.UpdateSettings)
		router.POST("/api/settings/sync/reset", settingsController.ResetSettings)
	}

	return router
}

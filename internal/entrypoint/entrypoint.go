package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aiko543/quotedeck/internal/audit"
	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/database/settings"
	"github.com/Aiko543/quotedeck/internal/database/syncruns"
	"github.com/Aiko543/quotedeck/internal/exporters"
	http_controllers "github.com/Aiko543/quotedeck/internal/http"
	"github.com/Aiko543/quotedeck/internal/importers"
	"github.com/Aiko543/quotedeck/internal/picker"
	"github.com/Aiko543/quotedeck/internal/remote"
	"github.com/Aiko543/quotedeck/internal/scheduler"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/syncer"
	"github.com/Aiko543/quotedeck/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (scheduler and task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting QuoteDeck v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	quotesRepo := quotes.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(db.DB)
	runsRepo := syncruns.NewRepository(db.DB)

	settingsStore := settingsstore.New(settingsRepo)
	quotePicker := picker.New(quotesRepo)
	importer := importers.NewJSONImporter(quotesRepo)
	exporter := exporters.NewJSONExporter(quotesRepo)

	// Optional import payload auditing
	var auditor *audit.Auditor
	if cfg.Audit.Dir != "" {
		auditor = audit.NewAuditor(cfg.Audit.Dir)
		log.Printf("Import auditing enabled at %s", cfg.Audit.Dir)
	}

	// Remote client and sync engine
	remoteClient := remote.NewClient(cfg.Remote.Endpoint)
	engine := syncer.New(quotesRepo, runsRepo, settingsStore, remoteClient, cfg.Remote.FetchLimit)

	// Scheduler runs sync cycles when enabled in settings
	syncScheduler := scheduler.NewQuoteSyncScheduler(engine, settingsStore)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := syncScheduler.Start(schedulerCtx); err != nil {
		log.Printf("WARNING: Failed to start sync scheduler: %v", err)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		// Register task queues
		taskClient.Register(
			tasks.NewPushQuoteQueue(quotesRepo, remoteClient),
			tasks.NewPruneSyncRunsQueue(runsRepo),
		)
		syncScheduler.SetTaskClient(taskClient)

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Session manager remembers the last viewed quote per browser
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := http_controllers.NewSessionManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		QuoteStore:     quotesRepo,
		Picker:         quotePicker,
		Importer:       importer,
		Exporter:       exporter,
		Auditor:        auditor,
		SettingsStore:  settingsStore,
		Engine:         engine,
		Runs:           runsRepo,
		Scheduler:      syncScheduler,
		SessionManager: sessionManager,
		TaskClient:     taskClient,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		schedulerCancel()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/syncer"
	"github.com/Aiko543/quotedeck/internal/tasks"
)

// syncRunRetention is how long completed sync runs are kept before the
// prune task trims them.
const syncRunRetention = 7 * 24 * time.Hour

// QuoteSyncScheduler manages periodic sync cycles against the remote endpoint
type QuoteSyncScheduler struct {
	engine        *syncer.Engine
	settingsStore *settingsstore.SettingsStore

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
	taskClient *tasks.Client
}

// SetTaskClient enables enqueueing maintenance tasks after cycles.
func (s *QuoteSyncScheduler) SetTaskClient(client *tasks.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskClient = client
}

// NewQuoteSyncScheduler creates a new scheduler instance
func NewQuoteSyncScheduler(engine *syncer.Engine, settingsStore *settingsstore.SettingsStore) *QuoteSyncScheduler {
	return &QuoteSyncScheduler{
		engine:        engine,
		settingsStore: settingsStore,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if sync is enabled
func (s *QuoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settingsStore.GetSyncConfig()

	if !config.Enabled {
		log.Printf("Quote sync scheduler: disabled")
		return nil
	}

	// Validate schedule
	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	// Add the sync job
	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	// Create cancellable context
	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	// Start cron scheduler
	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	log.Printf("Quote sync scheduler: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *QuoteSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Quote sync scheduler: stopped")
}

// Reschedule updates the schedule (call after settings change)
func (s *QuoteSyncScheduler) Reschedule() error {
	s.mu.Lock()
	wasRunning := s.isRunning
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	// Restart with new settings
	return s.Start(context.Background())
}

// RunNow triggers an immediate sync cycle
func (s *QuoteSyncScheduler) RunNow() error {
	go s.runSync()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *QuoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a sync cycle is currently in progress
func (s *QuoteSyncScheduler) IsSyncing() bool {
	return s.engine.IsSyncing()
}

// GetNextRunTime returns when the next sync will occur
func (s *QuoteSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync performs one sync cycle. The engine guarantees cycles never
// overlap, so a timer firing while a manual trigger is in flight simply
// skips its turn.
func (s *QuoteSyncScheduler) runSync() {
	config := s.settingsStore.GetSyncConfig()
	if !config.Enabled {
		log.Printf("Quote sync: skipped (disabled)")
		return
	}

	log.Printf("Quote sync: starting cycle (policy: %s)", config.ConflictPolicy)
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.engine.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			log.Printf("Quote sync: skipped (already syncing)")
			return
		}
		log.Printf("Quote sync: cycle failed: %v", err)
		return
	}

	duration := time.Since(startTime)
	log.Printf("Quote sync: pushed %d, added %d, updated %d, %d conflicts in %v",
		result.Pushed, result.Added, result.Updated, len(result.Conflicts),
		duration.Round(time.Millisecond))

	s.mu.RLock()
	client := s.taskClient
	s.mu.RUnlock()
	if client != nil {
		task := tasks.PruneSyncRunsTask{MaxAge: syncRunRetention}
		if _, err := client.Add(task).Save(); err != nil {
			log.Printf("Quote sync: failed to enqueue run pruning: %v", err)
		}
	}
}

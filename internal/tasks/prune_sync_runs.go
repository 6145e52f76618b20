package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/Aiko543/quotedeck/internal/database/syncruns"
)

// PruneSyncRunsTask trims old sync run history. Enqueued after each cycle.
type PruneSyncRunsTask struct {
	MaxAge time.Duration `json:"max_age"`
}

// Config returns the queue configuration for sync run pruning tasks.
func (t PruneSyncRunsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_sync_runs",
		MaxAttempts: 2,
		Backoff:     1 * time.Minute,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// PruneSyncRunsProcessor creates a processor function for PruneSyncRunsTask.
func PruneSyncRunsProcessor(runsRepo *syncruns.Repository) backlite.QueueProcessor[PruneSyncRunsTask] {
	return func(ctx context.Context, task PruneSyncRunsTask) error {
		maxAge := task.MaxAge
		if maxAge <= 0 {
			maxAge = 7 * 24 * time.Hour
		}

		deleted, err := runsRepo.PruneOlderThan(time.Now().Add(-maxAge))
		if err != nil {
			return fmt.Errorf("prune sync runs: %w", err)
		}

		if deleted > 0 {
			log.Printf("[TASK] Pruned %d old sync runs", deleted)
		}
		return nil
	}
}

// NewPruneSyncRunsQueue creates a backlite queue for sync run pruning tasks.
func NewPruneSyncRunsQueue(runsRepo *syncruns.Repository) backlite.Queue {
	return backlite.NewQueue(PruneSyncRunsProcessor(runsRepo))
}

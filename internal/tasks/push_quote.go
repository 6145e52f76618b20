package tasks

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/remote"
)

// PushQuoteTask pushes a single pending quote to the remote endpoint so
// newly added quotes do not wait for the next scheduled sync cycle.
type PushQuoteTask struct {
	QuoteID uint `json:"quote_id"`
}

// Config returns the queue configuration for quote push tasks.
func (t PushQuoteTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "push_quote",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PushQuoteProcessor creates a processor function for PushQuoteTask.
func PushQuoteProcessor(quotesRepo *quotes.Repository, client *remote.Client) backlite.QueueProcessor[PushQuoteTask] {
	return func(ctx context.Context, task PushQuoteTask) error {
		quote, err := quotesRepo.GetByID(task.QuoteID)
		if err != nil {
			return fmt.Errorf("load quote %d: %w", task.QuoteID, err)
		}

		// Already pushed by a sync cycle in the meantime
		if !quote.Pending {
			return nil
		}

		created, err := client.Create(ctx, remote.Post{
			Title:  quote.Text,
			Body:   quote.Category,
			UserID: 1,
		})
		if err != nil {
			return fmt.Errorf("push quote %d: %w", task.QuoteID, err)
		}

		if err := quotesRepo.MarkSynced(quote.ID, strconv.Itoa(created.ID), time.Now()); err != nil {
			return fmt.Errorf("mark quote %d synced: %w", task.QuoteID, err)
		}

		log.Printf("[TASK] Pushed quote %d (remote id %d)", task.QuoteID, created.ID)
		return nil
	}
}

// NewPushQuoteQueue creates a backlite queue for quote push tasks.
func NewPushQuoteQueue(quotesRepo *quotes.Repository, client *remote.Client) backlite.Queue {
	return backlite.NewQueue(PushQuoteProcessor(quotesRepo, client))
}

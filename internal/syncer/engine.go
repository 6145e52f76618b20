// Package syncer reconciles the local quote store against the remote demo
// endpoint: it pushes locally-added pending quotes, fetches a page of remote
// records, and merges them by remote id under a configurable conflict policy.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/database/syncruns"
	"github.com/Aiko543/quotedeck/internal/entities"
	"github.com/Aiko543/quotedeck/internal/remote"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// ErrSyncInProgress is returned when a cycle is requested while another is
// still running. Cycles never overlap.
var ErrSyncInProgress = errors.New("a sync cycle is already in progress")

// pushUserID identifies this client on the remote endpoint.
const pushUserID = 1

type Resolution string

const (
	ResolutionServer Resolution = "server"
	ResolutionLocal  Resolution = "local"
)

// Conflict pairs the local and server snapshots of a diverged record. It is
// transient: held only until resolutions are applied or the next cycle starts.
type Conflict struct {
	ExternalID string         `json:"external_id"`
	Local      entities.Quote `json:"local"`
	Server     entities.Quote `json:"server"`
}

// Result summarizes a completed sync cycle.
type Result struct {
	Policy    config.ConflictPolicy `json:"policy"`
	Pushed    int                   `json:"pushed"`
	Added     int                   `json:"added"`
	Updated   int                   `json:"updated"`
	Conflicts []Conflict            `json:"conflicts,omitempty"`
}

type Engine struct {
	quotes     *quotes.Repository
	runs       *syncruns.Repository
	settings   *settingsstore.SettingsStore
	client     *remote.Client
	fetchLimit int

	mu        sync.Mutex
	isSyncing bool
	held      []Conflict // unresolved conflicts from the last manual-policy cycle
}

func New(quotesRepo *quotes.Repository, runsRepo *syncruns.Repository, settings *settingsstore.SettingsStore, client *remote.Client, fetchLimit int) *Engine {
	if fetchLimit <= 0 {
		fetchLimit = config.DefaultFetchLimit
	}
	return &Engine{
		quotes:     quotesRepo,
		runs:       runsRepo,
		settings:   settings,
		client:     client,
		fetchLimit: fetchLimit,
	}
}

// IsSyncing reports whether a cycle is currently running.
func (e *Engine) IsSyncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSyncing
}

// RunCycle executes one full sync cycle: push pending, fetch, merge. Only
// one cycle may run at a time; concurrent callers get ErrSyncInProgress.
// Any remote failure after the push phase aborts the cycle with a failed
// status and no rollback of already-applied changes.
func (e *Engine) RunCycle(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.isSyncing {
		e.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	e.isSyncing = true
	// A new cycle supersedes any conflicts still held from the previous one
	e.held = nil
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.isSyncing = false
		e.mu.Unlock()
	}()

	run, err := e.runs.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to record sync run: %w", err)
	}

	policy := e.settings.GetConflictPolicy()

	if policy == config.PolicyReplace {
		return e.runReplaceCycle(ctx, run)
	}

	result := &Result{Policy: policy}

	// Push phase: per-record failures leave the record pending for the next
	// cycle; they do not abort the run.
	pending, err := e.quotes.GetPending()
	if err != nil {
		return nil, e.fail(run, fmt.Errorf("failed to list pending quotes: %w", err))
	}
	for _, quote := range pending {
		if ctx.Err() != nil {
			return nil, e.fail(run, ctx.Err())
		}
		created, err := e.client.Create(ctx, remote.Post{
			Title:  quote.Text,
			Body:   quote.Category,
			UserID: pushUserID,
		})
		if err != nil {
			log.Printf("Quote sync: failed to push quote %s: %v", quote.Key, err)
			continue
		}
		if err := e.quotes.MarkSynced(quote.ID, strconv.Itoa(created.ID), time.Now()); err != nil {
			return nil, e.fail(run, fmt.Errorf("failed to mark quote synced: %w", err))
		}
		result.Pushed++
	}

	// Fetch phase
	posts, err := e.client.Fetch(ctx, e.fetchLimit)
	if err != nil {
		return nil, e.fail(run, fmt.Errorf("failed to fetch remote quotes: %w", err))
	}

	// Merge phase: lookup by stringified remote id
	if err := e.merge(posts, policy, result); err != nil {
		return nil, e.fail(run, err)
	}

	if policy == config.PolicyManual && len(result.Conflicts) > 0 {
		e.mu.Lock()
		e.held = append([]Conflict(nil), result.Conflicts...)
		e.mu.Unlock()
	}

	if err := e.runs.Complete(run, result.Pushed, result.Added, result.Updated, len(result.Conflicts)); err != nil {
		log.Printf("Quote sync: failed to finalize sync run: %v", err)
	}

	e.recordStatus(result)
	return result, nil
}

func (e *Engine) merge(posts []remote.Post, policy config.ConflictPolicy, result *Result) error {
	now := time.Now()
	for _, post := range posts {
		mapped := mapPost(post, now)

		local, err := e.quotes.GetByExternalID(mapped.ExternalID)
		if err == gorm.ErrRecordNotFound {
			if _, err := e.quotes.ImportAll([]entities.Quote{mapped}); err != nil {
				return fmt.Errorf("failed to add remote quote %s: %w", mapped.ExternalID, err)
			}
			result.Added++
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up quote %s: %w", mapped.ExternalID, err)
		}

		if local.Text == mapped.Text && local.Category == mapped.Category {
			continue
		}

		// Any field divergence is a conflict, whatever the policy decides
		result.Conflicts = append(result.Conflicts, Conflict{
			ExternalID: mapped.ExternalID,
			Local:      *local,
			Server:     mapped,
		})

		switch policy {
		case config.PolicyServerWins:
			local.Text = mapped.Text
			local.Category = mapped.Category
			local.SyncedAt = &now
			if err := e.quotes.Update(local); err != nil {
				return fmt.Errorf("failed to update quote %s: %w", mapped.ExternalID, err)
			}
			result.Updated++
		case config.PolicyLocalWins, config.PolicyManual:
			// Local copy stays until a resolution says otherwise
		}
	}
	return nil
}

// runReplaceCycle implements the wholesale-replacement policy: no push, no
// merge, the local store becomes exactly the fetched page.
func (e *Engine) runReplaceCycle(ctx context.Context, run *entities.SyncRun) (*Result, error) {
	posts, err := e.client.Fetch(ctx, e.fetchLimit)
	if err != nil {
		return nil, e.fail(run, fmt.Errorf("failed to fetch remote quotes: %w", err))
	}

	now := time.Now()
	records := make([]entities.Quote, 0, len(posts))
	for _, post := range posts {
		records = append(records, mapPost(post, now))
	}

	if err := e.quotes.ReplaceAll(records); err != nil {
		return nil, e.fail(run, fmt.Errorf("failed to replace quote store: %w", err))
	}

	result := &Result{Policy: config.PolicyReplace, Added: len(records)}
	if err := e.runs.Complete(run, 0, result.Added, 0, 0); err != nil {
		log.Printf("Quote sync: failed to finalize sync run: %v", err)
	}
	e.recordStatus(result)
	return result, nil
}

// PendingConflicts returns the conflicts held since the last manual-policy
// cycle, in merge order.
func (e *Engine) PendingConflicts() []Conflict {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Conflict(nil), e.held...)
}

// ApplyResolutions resolves held conflicts by external id. Conflicts without
// an explicit choice default to the server copy. All held conflicts are
// discharged, whichever way they resolve.
func (e *Engine) ApplyResolutions(resolutions map[string]Resolution) (int, error) {
	e.mu.Lock()
	held := e.held
	e.held = nil
	e.mu.Unlock()

	applied := 0
	now := time.Now()
	for _, conflict := range held {
		choice, ok := resolutions[conflict.ExternalID]
		if !ok {
			choice = ResolutionServer
		}
		if choice != ResolutionServer {
			continue
		}

		local, err := e.quotes.GetByExternalID(conflict.ExternalID)
		if err != nil {
			return applied, fmt.Errorf("failed to load conflicted quote %s: %w", conflict.ExternalID, err)
		}
		local.Text = conflict.Server.Text
		local.Category = conflict.Server.Category
		local.SyncedAt = &now
		if err := e.quotes.Update(local); err != nil {
			return applied, fmt.Errorf("failed to apply resolution for %s: %w", conflict.ExternalID, err)
		}
		applied++
	}
	return applied, nil
}

func (e *Engine) fail(run *entities.SyncRun, cause error) error {
	log.Printf("Quote sync: %v", cause)
	if err := e.runs.Fail(run, cause.Error()); err != nil {
		log.Printf("Quote sync: failed to record failure: %v", err)
	}
	if err := e.settings.SetSyncStatus("failed", "Sync failed, will retry on the next cycle", 0); err != nil {
		log.Printf("Quote sync: failed to record status: %v", err)
	}
	return cause
}

func (e *Engine) recordStatus(result *Result) {
	msg := fmt.Sprintf("Pushed %d, added %d, updated %d quotes", result.Pushed, result.Added, result.Updated)
	status := "success"
	if n := len(result.Conflicts); n > 0 {
		msg = fmt.Sprintf("%s (%d conflicts)", msg, n)
		status = "conflicts"
	}
	if err := e.settings.SetSyncStatus(status, msg, result.Added+result.Updated); err != nil {
		log.Printf("Quote sync: failed to record status: %v", err)
	}
}

// mapPost reshapes a remote record into a quote: title becomes the text and
// the owner id becomes a synthesized category label.
func mapPost(post remote.Post, fetchedAt time.Time) entities.Quote {
	return entities.Quote{
		Text:       post.Title,
		Category:   fmt.Sprintf("Server %d", post.UserID),
		ExternalID: strconv.Itoa(post.ID),
		SyncedAt:   &fetchedAt,
	}
}

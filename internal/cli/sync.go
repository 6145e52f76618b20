package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/database/settings"
	"github.com/Aiko543/quotedeck/internal/database/syncruns"
	"github.com/Aiko543/quotedeck/internal/remote"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
	"github.com/Aiko543/quotedeck/internal/syncer"
)

// SyncCommand runs a single sync cycle against the remote endpoint.
type SyncCommand struct {
	DatabasePath string
	Endpoint     string
	Policy       string
	FetchLimit   int
	Timeout      time.Duration
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

func (cmd *SyncCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.Endpoint, "endpoint", config.DefaultSyncEndpoint, "Remote endpoint URL")
	fs.StringVar(&cmd.Policy, "policy", "", "Conflict policy: server-wins, local-wins, manual or replace (default: persisted setting)")
	fs.IntVar(&cmd.FetchLimit, "limit", config.DefaultFetchLimit, "Maximum number of remote records to fetch")
	fs.DurationVar(&cmd.Timeout, "timeout", 2*time.Minute, "Overall cycle timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run one sync cycle: push pending local quotes, fetch remote records\n")
		fmt.Fprintf(os.Stderr, "and merge them according to the conflict policy.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Policy != "" && !config.ValidConflictPolicy(config.ConflictPolicy(cmd.Policy)) {
		return fmt.Errorf("invalid conflict policy: %s", cmd.Policy)
	}

	return nil
}

func (cmd *SyncCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	quotesRepo := quotes.NewRepository(db.DB)
	runsRepo := syncruns.NewRepository(db.DB)
	store := settingsstore.New(settings.NewRepository(db.DB))

	if cmd.Policy != "" {
		if err := store.SetConflictPolicy(config.ConflictPolicy(cmd.Policy)); err != nil {
			return fmt.Errorf("failed to set conflict policy: %w", err)
		}
	}

	engine := syncer.New(quotesRepo, runsRepo, store, remote.NewClient(cmd.Endpoint), cmd.FetchLimit)

	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	fmt.Printf("Syncing with %s...\n", cmd.Endpoint)
	result, err := engine.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("Sync complete (policy: %s)\n", result.Policy)
	fmt.Printf("  Pushed:  %d\n", result.Pushed)
	fmt.Printf("  Added:   %d\n", result.Added)
	fmt.Printf("  Updated: %d\n", result.Updated)

	if len(result.Conflicts) > 0 {
		fmt.Printf("  Conflicts: %d\n", len(result.Conflicts))
		for _, conflict := range result.Conflicts {
			fmt.Printf("    [%s] local %q vs server %q\n",
				conflict.ExternalID, conflict.Local.Text, conflict.Server.Text)
		}
	}

	return nil
}

package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/database/settings"
	"github.com/Aiko543/quotedeck/internal/picker"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// RandomCommand prints a random quote, honoring the persisted category
// filter unless one is given explicitly.
type RandomCommand struct {
	Category     string
	DatabasePath string
}

func NewRandomCommand() *RandomCommand {
	return &RandomCommand{}
}

func (cmd *RandomCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("random", flag.ExitOnError)

	fs.StringVar(&cmd.Category, "category", "", "Restrict to a category (default: the persisted filter)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s random [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print a random quote from the local database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *RandomCommand) Run() error {
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

	category := cmd.Category
	if category == "" {
		store := settingsstore.New(settings.NewRepository(db.DB))
		category = store.GetSelectedCategory()
	}

	quote, err := picker.New(quotesRepo).Pick(category)
	if err != nil {
		return err
	}

	fmt.Printf("%q\n", quote.Text)
	fmt.Printf("  [%s]\n", quote.Category)
	return nil
}

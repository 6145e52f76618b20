package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
)

// AddCommand adds a single quote to the local database.
type AddCommand struct {
	Text         string
	Category     string
	DatabasePath string
}

func NewAddCommand() *AddCommand {
	return &AddCommand{}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)

	fs.StringVar(&cmd.Text, "text", "", "Quote text (required)")
	fs.StringVar(&cmd.Category, "category", "", "Quote category (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -text <quote> -category <category> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a quote to the local database. The quote is marked pending and\n")
		fmt.Fprintf(os.Stderr, "pushed to the remote endpoint on the next sync cycle.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add -text \"Stay hungry, stay foolish.\" -category Motivation\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Text == "" {
		return fmt.Errorf("required flag -text not provided")
	}
	if cmd.Category == "" {
		return fmt.Errorf("required flag -category not provided")
	}

	return nil
}

func (cmd *AddCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := quotes.NewRepository(db.DB)
	quote, err := repo.Add(cmd.Text, cmd.Category)
	if err != nil {
		return fmt.Errorf("failed to add quote: %w", err)
	}

	fmt.Printf("Added quote %s to category %q\n", quote.Key, quote.Category)
	return nil
}

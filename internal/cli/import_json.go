package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/importers"
)

// ImportJSONCommand imports quotes from a JSON file into the local database.
type ImportJSONCommand struct {
	FilePath     string
	DatabasePath string
	DryRun       bool
}

func NewImportJSONCommand() *ImportJSONCommand {
	return &ImportJSONCommand{}
}

func (cmd *ImportJSONCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the JSON file to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse the file and report what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import quotes from a JSON file. The file must contain a top-level\n")
		fmt.Fprintf(os.Stderr, "array of objects with \"text\" and \"category\" fields, matching the\n")
		fmt.Fprintf(os.Stderr, "format produced by the export command.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file quotes.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportJSONCommand) Run() error {
	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	parsed, err := importers.ParseQuotes(data)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d quotes in %s\n", len(parsed), cmd.FilePath)

	if cmd.DryRun {
		for i, quote := range parsed {
			fmt.Printf("%d. %q [%s]\n", i+1, quote.Text, quote.Category)
		}
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	importer := importers.NewJSONImporter(quotes.NewRepository(db.DB))
	imported, err := importer.Import(data)
	if err != nil {
		return fmt.Errorf("failed to import quotes: %w", err)
	}

	fmt.Printf("Imported %d quotes into %s\n", imported, absDBPath)
	return nil
}

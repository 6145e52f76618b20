package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aiko543/quotedeck/internal/config"
	"github.com/Aiko543/quotedeck/internal/database"
	"github.com/Aiko543/quotedeck/internal/database/quotes"
	"github.com/Aiko543/quotedeck/internal/exporters"
)

// ExportJSONCommand writes the full quote collection to a JSON file.
type ExportJSONCommand struct {
	OutputPath   string
	DatabasePath string
}

func NewExportJSONCommand() *ExportJSONCommand {
	return &ExportJSONCommand{}
}

func (cmd *ExportJSONCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.OutputPath, "output", exporters.ExportFileName, "Output file path")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export all quotes to a JSON file that the import command accepts.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportJSONCommand) Run() error {
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
	exporter := exporters.NewJSONExporter(repo)

	if err := exporter.ExportToFile(cmd.OutputPath); err != nil {
		return fmt.Errorf("failed to export quotes: %w", err)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d quotes to %s\n", count, cmd.OutputPath)
	return nil
}

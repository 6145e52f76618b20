// Package exporters serializes the quote store for download and backup.
package exporters

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Aiko543/quotedeck/internal/entities"
)

// ExportFileName is the suggested name for downloaded exports.
const ExportFileName = "quotes.json"

// QuoteReader is the subset of the quotes repository the exporter needs.
type QuoteReader interface {
	GetAll() ([]entities.Quote, error)
}

type JSONExporter struct {
	reader QuoteReader
}

func NewJSONExporter(reader QuoteReader) *JSONExporter {
	return &JSONExporter{reader: reader}
}

// Export serializes the entire store as a pretty-printed JSON array.
func (e *JSONExporter) Export() ([]byte, error) {
	quotes, err := e.reader.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}
	if quotes == nil {
		quotes = []entities.Quote{}
	}

	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize quotes: %w", err)
	}
	return data, nil
}

// ExportToFile writes the serialized store to the given path.
func (e *JSONExporter) ExportToFile(path string) error {
	data, err := e.Export()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

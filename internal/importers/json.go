// Package importers parses uploaded quote files and merges them into the
// store with append semantics.
package importers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aiko543/quotedeck/internal/entities"
)

// ErrNotArray is returned when the payload parses but is not a top-level array.
var ErrNotArray = errors.New("invalid JSON format: expected a top-level array of quotes")

// QuoteStore is the subset of the quotes repository the importer needs.
type QuoteStore interface {
	ImportAll(records []entities.Quote) (int, error)
}

// ParseQuotes decodes a JSON payload into quote records. The payload must be
// a top-level array; per-record shape is not validated (records are appended
// verbatim, matching file import semantics).
func ParseQuotes(data []byte) ([]entities.Quote, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing JSON file: %w", err)
	}

	var quotes []entities.Quote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, ErrNotArray
	}
	return quotes, nil
}

type JSONImporter struct {
	store QuoteStore
}

func NewJSONImporter(store QuoteStore) *JSONImporter {
	return &JSONImporter{store: store}
}

// Import parses the payload and appends all records to the store. On parse
// failure or non-array shape, no mutation occurs.
func (i *JSONImporter) Import(data []byte) (int, error) {
	quotes, err := ParseQuotes(data)
	if err != nil {
		return 0, err
	}
	return i.store.ImportAll(quotes)
}

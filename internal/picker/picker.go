// Package picker selects a random quote from the store, optionally
// restricted to a single category.
package picker

import (
	"errors"
	"math/rand"

	"github.com/Aiko543/quotedeck/internal/entities"
	"github.com/Aiko543/quotedeck/internal/settingsstore"
)

// ErrNoQuotes is returned when the candidate pool is empty.
var ErrNoQuotes = errors.New("no quotes available")

// QuoteSource is the subset of the quotes repository the picker needs.
type QuoteSource interface {
	GetAll() ([]entities.Quote, error)
	GetByCategory(category string) ([]entities.Quote, error)
}

type Picker struct {
	source QuoteSource
}

func New(source QuoteSource) *Picker {
	return &Picker{source: source}
}

// Pick returns a uniformly random quote from the candidate pool. The pool is
// the full store when category is empty or the synthetic "all" value,
// otherwise only quotes matching the category exactly. Returns ErrNoQuotes
// when the pool is empty.
func (p *Picker) Pick(category string) (*entities.Quote, error) {
	var pool []entities.Quote
	var err error

	if category == "" || category == settingsstore.CategoryAll {
		pool, err = p.source.GetAll()
	} else {
		pool, err = p.source.GetByCategory(category)
	}
	if err != nil {
		return nil, err
	}

	if len(pool) == 0 {
		return nil, ErrNoQuotes
	}

	quote := pool[rand.Intn(len(pool))]
	return &quote, nil
}

package http

import (
	"github.com/Aiko543/quotedeck/internal/entities"
)

// QuoteStore is the interface controllers use for quote persistence.
// Satisfied by quotes.Repository.
type QuoteStore interface {
	GetAll() ([]entities.Quote, error)
	GetByCategory(category string) ([]entities.Quote, error)
	GetByKey(key string) (*entities.Quote, error)
	GetPending() ([]entities.Quote, error)
	GetCategories() ([]string, error)
	Add(text, category string) (*entities.Quote, error)
	Count() (int64, error)
}

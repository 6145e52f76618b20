// Package quotes provides database operations for quote records.
//
// # Usage
//
//	repo := quotes.NewRepository(db)
//	quote, err := repo.Add("Stay hungry.", "Motivation")
package quotes

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aiko543/quotedeck/internal/entities"
)

// ErrEmptyField is returned when a quote is added with a blank text or category.
var ErrEmptyField = errors.New("quote text and category must not be empty")

// Repository handles all quote database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new quotes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add trims and validates both fields, then inserts a new pending quote
// with a generated key. Returns ErrEmptyField without mutating the store
// when either field is blank after trimming.
func (r *Repository) Add(text, category string) (*entities.Quote, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if text == "" || category == "" {
		return nil, ErrEmptyField
	}

	quote := &entities.Quote{
		Key:      uuid.NewString(),
		Text:     text,
		Category: category,
		Pending:  true,
	}
	if err := r.db.Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// ImportAll appends the given records verbatim (no dedup, append semantics).
// Every imported record gets a fresh key so re-importing an export of this
// store cannot collide with the originals; records without an external id
// are marked pending so the next sync cycle pushes them.
func (r *Repository) ImportAll(records []entities.Quote) (int, error) {
	imported := 0
	for _, record := range records {
		record.ID = 0
		record.Key = uuid.NewString()
		if record.ExternalID == "" {
			record.Pending = true
		}
		if err := r.db.Create(&record).Error; err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ReplaceAll swaps the entire store for the given records in one transaction.
// Used by the wholesale-replacement sync policy.
func (r *Repository) ReplaceAll(records []entities.Quote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Quote{}).Error; err != nil {
			return err
		}
		for _, record := range records {
			record.ID = 0
			if record.Key == "" {
				record.Key = uuid.NewString()
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAll retrieves every quote in insertion order.
func (r *Repository) GetAll() ([]entities.Quote, error) {
	var quotes []entities.Quote
	err := r.db.Order("id ASC").Find(&quotes).Error
	return quotes, err
}

// GetByCategory retrieves quotes matching a category exactly.
func (r *Repository) GetByCategory(category string) ([]entities.Quote, error) {
	var quotes []entities.Quote
	err := r.db.Where("category = ?", category).Order("id ASC").Find(&quotes).Error
	return quotes, err
}

// GetByKey retrieves a quote by its generated key.
func (r *Repository) GetByKey(key string) (*entities.Quote, error) {
	var quote entities.Quote
	err := r.db.Where("key = ?", key).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByID retrieves a quote by primary key.
func (r *Repository) GetByID(id uint) (*entities.Quote, error) {
	var quote entities.Quote
	err := r.db.First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetByExternalID retrieves a quote by its remote identifier.
func (r *Repository) GetByExternalID(externalID string) (*entities.Quote, error) {
	var quote entities.Quote
	err := r.db.Where("external_id = ?", externalID).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetPending retrieves quotes created locally and not yet pushed.
func (r *Repository) GetPending() ([]entities.Quote, error) {
	var quotes []entities.Quote
	err := r.db.Where("pending = ?", true).Order("id ASC").Find(&quotes).Error
	return quotes, err
}

// GetCategories returns distinct categories in first-seen insertion order.
func (r *Repository) GetCategories() ([]string, error) {
	var quotes []entities.Quote
	if err := r.db.Select("category").Order("id ASC").Find(&quotes).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, quote := range quotes {
		if !seen[quote.Category] {
			seen[quote.Category] = true
			categories = append(categories, quote.Category)
		}
	}
	return categories, nil
}

// Update persists changes to an existing quote.
func (r *Repository) Update(quote *entities.Quote) error {
	return r.db.Save(quote).Error
}

// MarkSynced clears the pending flag and records the acknowledged remote id.
func (r *Repository) MarkSynced(id uint, externalID string, syncedAt time.Time) error {
	return r.db.Model(&entities.Quote{}).Where("id = ?", id).Updates(map[string]interface{}{
		"pending":     false,
		"external_id": externalID,
		"synced_at":   syncedAt,
	}).Error
}

// Count returns the number of quotes in the store.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Quote{}).Count(&count).Error
	return count, err
}

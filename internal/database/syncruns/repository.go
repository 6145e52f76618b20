// Package syncruns provides database operations for sync cycle history.
//
// # Usage
//
//	repo := syncruns.NewRepository(db)
//	run, err := repo.Start()
package syncruns

import (
	"time"

	"gorm.io/gorm"

	"github.com/Aiko543/quotedeck/internal/entities"
)

// Repository handles all sync run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sync runs repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start records the beginning of a sync cycle.
func (r *Repository) Start() (*entities.SyncRun, error) {
	run := &entities.SyncRun{
		Status:    entities.SyncStatusRunning,
		StartedAt: time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// Complete marks a run as finished with its counters.
func (r *Repository) Complete(run *entities.SyncRun, pushed, added, updated, conflicts int) error {
	now := time.Now()
	run.Status = entities.SyncStatusCompleted
	run.Pushed = pushed
	run.Added = added
	run.Updated = updated
	run.Conflicts = conflicts
	run.CompletedAt = &now
	return r.db.Save(run).Error
}

// Fail marks a run as failed with an error message.
func (r *Repository) Fail(run *entities.SyncRun, errMsg string) error {
	now := time.Now()
	run.Status = entities.SyncStatusFailed
	run.Error = errMsg
	run.CompletedAt = &now
	return r.db.Save(run).Error
}

// GetLatest returns the most recent run, or gorm.ErrRecordNotFound.
func (r *Repository) GetLatest() (*entities.SyncRun, error) {
	var run entities.SyncRun
	err := r.db.Order("id DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRecent returns the most recent runs, newest first.
func (r *Repository) GetRecent(limit int) ([]entities.SyncRun, error) {
	var runs []entities.SyncRun
	err := r.db.Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// PruneOlderThan removes completed runs older than the given cutoff and
// returns the number of rows deleted.
func (r *Repository) PruneOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("started_at < ? AND status <> ?", cutoff, entities.SyncStatusRunning).
		Delete(&entities.SyncRun{})
	return result.RowsAffected, result.Error
}

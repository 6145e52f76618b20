package entities

import (
	"time"
)

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun records a single sync cycle against the remote endpoint.
type SyncRun struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Status      SyncStatus `gorm:"size:20" json:"status"`
	Pushed      int        `json:"pushed"`
	Added       int        `json:"added"`
	Updated     int        `json:"updated"`
	Conflicts   int        `json:"conflicts"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

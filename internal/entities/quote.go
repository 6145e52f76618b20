package entities

import (
	"time"
)

// Quote is a single text/category pair with optional sync metadata.
// Every quote gets a generated Key at creation time; ExternalID is only
// set for records that exist on the remote endpoint.
type Quote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"uniqueIndex;size:36" json:"key"`
	Text       string     `gorm:"type:text" json:"text"`
	Category   string     `gorm:"index;size:100" json:"category"`
	ExternalID string     `gorm:"index;size:64" json:"external_id,omitempty"`
	Pending    bool       `gorm:"default:false" json:"pending"`
	SyncedAt   *time.Time `json:"synced_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Quote) TableName() string {
	return "quotes"
}

package models

import (
	"time"
)

// Metadata stores the last-synchronized content hash for one document
// stream. Exactly one row exists per stream; the hash is rewritten only
// inside the same transaction that commits the stream's record changes.
type Metadata struct {
	ID        string `gorm:"size:64;primaryKey" json:"id"`
	JSONHash  string `gorm:"size:64;not null" json:"json_hash"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Metadata
func (Metadata) TableName() string {
	return "metadata"
}

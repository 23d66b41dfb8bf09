package models

import (
	"time"
)

// SearchFlow holds the ordered field names driving the filter UI for one
// category. Order is semantically significant and preserved exactly as
// delivered by the assign feed.
type SearchFlow struct {
	CategoryID int        `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	Order      StringList `json:"order"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for SearchFlow
func (SearchFlow) TableName() string {
	return "search_flows"
}

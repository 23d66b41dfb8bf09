package models

import (
	"time"
)

// Field represents a dynamic filter field from the attributes feed.
// ParentName is nullable on the wire; absent must stay absent, not "".
type Field struct {
	ID         int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	DataType   string  `gorm:"size:64" json:"data_type"`
	ParentID   int     `json:"parent_id"`
	ParentName *string `gorm:"size:255" json:"parent_name,omitempty"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FieldLabel carries the localized labels for a field. The feed declares
// no key for it; rows get a surrogate ID and are matched by FieldName at
// query time.
type FieldLabel struct {
	LabelID   uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	FieldName string `gorm:"size:255;index" json:"field_name"`
	LabelAr   string `gorm:"size:255" json:"label_ar"`
	LabelEn   string `gorm:"size:255" json:"label_en"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Option represents a selectable value of a Field. IDs are globally
// unique strings across all fields.
type Option struct {
	ID        string  `gorm:"size:64;primaryKey" json:"id"`
	FieldID   string  `gorm:"size:64;index" json:"field_id"`
	Label     string  `gorm:"size:255" json:"label"`
	LabelEn   string  `gorm:"size:255" json:"label_en"`
	Value     string  `gorm:"size:255" json:"value"`
	OptionImg *string `gorm:"size:512" json:"option_img,omitempty"`
	HasChild  bool    `json:"has_child"`
	ParentID  *string `gorm:"size:64" json:"parent_id,omitempty"`
	Order     int     `json:"order"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for Field
func (Field) TableName() string {
	return "fields"
}

// TableName overrides the table name for FieldLabel
func (FieldLabel) TableName() string {
	return "field_labels"
}

// TableName overrides the table name for Option
func (Option) TableName() string {
	return "options"
}

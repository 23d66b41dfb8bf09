package models

import (
	"time"
)

// MainCategory represents a top-level marketplace category. Subcategories
// are fully owned by their parent and are wholesale-replaced on every
// update, never patched in place.
type MainCategory struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Order         int    `json:"order"`
	ParentID      int    `json:"parent_id"`
	Label         string `gorm:"size:255" json:"label"`
	LabelEn       string `gorm:"size:255" json:"label_en"`
	LabelAr       string `gorm:"size:255" json:"label_ar"`
	HasChild      bool   `json:"has_child"`
	ReportingName string `gorm:"size:255" json:"reporting_name"`
	Icon          string `gorm:"size:512" json:"icon"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubCategories []SubCategory `gorm:"foreignKey:ParentID;references:ID" json:"subCategories"`
}

// SubCategory represents a second-level category owned by a MainCategory
// via ParentID.
type SubCategory struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Order         int    `json:"order"`
	ParentID      int    `gorm:"index" json:"parent_id"`
	Label         string `gorm:"size:255" json:"label"`
	LabelEn       string `gorm:"size:255" json:"label_en"`
	LabelAr       string `gorm:"size:255" json:"label_ar"`
	HasChild      bool   `json:"has_child"`
	ReportingName string `gorm:"size:255" json:"reporting_name"`
	Icon          string `gorm:"size:512" json:"icon"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the table name for MainCategory
func (MainCategory) TableName() string {
	return "main_categories"
}

// TableName overrides the table name for SubCategory
func (SubCategory) TableName() string {
	return "sub_categories"
}

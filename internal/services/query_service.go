package services

import (
	"errors"

	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/models"
	"gorm.io/gorm"
)

// GetCategories returns all main categories with their subcategories.
// No ordering is applied; callers sort by the Order field as needed.
func GetCategories(db *gorm.DB) ([]models.MainCategory, error) {
	if db == nil {
		return nil, database.ErrNotInitialized
	}
	var categories []models.MainCategory
	if err := db.Preload("SubCategories").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetSearchFlow returns the search flow for a category, or nil when none
// is stored. Absence is not an error.
func GetSearchFlow(db *gorm.DB, categoryID int) (*models.SearchFlow, error) {
	if db == nil {
		return nil, database.ErrNotInitialized
	}
	var flow models.SearchFlow
	err := db.Where("category_id = ?", categoryID).First(&flow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &flow, nil
}

// GetAllFieldLabels returns every stored field label.
func GetAllFieldLabels(db *gorm.DB) ([]models.FieldLabel, error) {
	if db == nil {
		return nil, database.ErrNotInitialized
	}
	var labels []models.FieldLabel
	if err := db.Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// GetAllFields returns every stored field definition.
func GetAllFields(db *gorm.DB) ([]models.Field, error) {
	if db == nil {
		return nil, database.ErrNotInitialized
	}
	var fields []models.Field
	if err := db.Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// GetOptionsByFieldID returns the options belonging to one field.
func GetOptionsByFieldID(db *gorm.DB, fieldID string) ([]models.Option, error) {
	if db == nil {
		return nil, database.ErrNotInitialized
	}
	var options []models.Option
	if err := db.Where("field_id = ?", fieldID).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

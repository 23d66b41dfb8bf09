package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/models"
	"github.com/classimark/catalog-sync/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Metadata row IDs, one per synchronized document stream.
const (
	CategoriesMetadataID = "categories_metadata"
	AssignMetadataID     = "assign_metadata"
	AttributesMetadataID = "attributes_metadata"
)

// StreamResult describes the outcome of one document stream within a
// synchronization pass.
type StreamResult struct {
	Stream  string `json:"stream"`
	Updated bool   `json:"updated"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SyncReport is the result of one Synchronize call.
type SyncReport struct {
	RunID   string         `json:"run_id"`
	Streams []StreamResult `json:"streams"`
}

// Synchronize ingests the three catalog documents. Each stream computes a
// content hash, compares it against the stream's Metadata row, and only on
// a mismatch reconciles the parsed records inside one transaction that
// also stamps the new hash. Unchanged input produces zero writes. The
// streams are independent: a failure in one does not stop the others, and
// all failures are joined into the returned error.
func Synchronize(db *gorm.DB, categoriesJSON, assignJSON, attributesJSON string) (SyncReport, error) {
	report := SyncReport{RunID: uuid.NewString()}
	if db == nil {
		return report, database.ErrNotInitialized
	}

	streams := []struct {
		name       string
		metadataID string
		doc        string
		skipEmpty  bool
		apply      func(tx *gorm.DB, doc string) error
	}{
		{DocCategories, CategoriesMetadataID, categoriesJSON, false, applyCategories},
		{DocAssign, AssignMetadataID, assignJSON, true, applyAssign},
		{DocAttributes, AttributesMetadataID, attributesJSON, true, applyAttributes},
	}

	var errs []error
	for _, s := range streams {
		result := StreamResult{Stream: s.name}
		if s.skipEmpty && s.doc == "" {
			log.Printf("sync %s: %s document is empty, skipping", report.RunID, s.name)
			result.Skipped = true
			report.Streams = append(report.Streams, result)
			continue
		}
		updated, err := syncStream(db, s.metadataID, s.doc, s.apply)
		if err != nil {
			log.Printf("sync %s: %s stream failed: %v", report.RunID, s.name, err)
			result.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		} else if updated {
			log.Printf("sync %s: %s stream reconciled", report.RunID, s.name)
		}
		result.Updated = updated
		report.Streams = append(report.Streams, result)
	}

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}

// syncStream runs the hash gate for one stream and, on a changed document,
// applies the reconciliation and stamps the metadata hash inside a single
// transaction. Returns whether a reconciliation transaction ran.
func syncStream(db *gorm.DB, metadataID, doc string, apply func(tx *gorm.DB, doc string) error) (bool, error) {
	newHash := utils.Hash(doc)

	var meta models.Metadata
	err := db.Where("id = ?", metadataID).First(&meta).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to read metadata %s: %w", metadataID, err)
	}
	if err == nil && meta.JSONHash == newHash {
		return false, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := apply(tx, doc); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&models.Metadata{ID: metadataID, JSONHash: newHash}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// applyCategories reconciles parsed categories: new IDs are inserted with
// their subcategories, existing IDs get every scalar overwritten and the
// subcategory list wholesale-replaced.
func applyCategories(tx *gorm.DB, doc string) error {
	categories, err := ParseCategories(doc)
	if err != nil {
		return err
	}
	for i := range categories {
		category := &categories[i]
		var existing models.MainCategory
		err := tx.Where("id = ?", category.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("failed to insert category %d: %w", category.ID, err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up category %d: %w", category.ID, err)
		default:
			if err := updateCategory(tx, category); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateCategory overwrites an existing category's scalar fields and
// clears and recreates its subcategory rows. Stale subcategories from a
// previous document version must not survive.
func updateCategory(tx *gorm.DB, category *models.MainCategory) error {
	updates := map[string]interface{}{
		"name":           category.Name,
		"order":          category.Order,
		"parent_id":      category.ParentID,
		"label":          category.Label,
		"label_en":       category.LabelEn,
		"label_ar":       category.LabelAr,
		"has_child":      category.HasChild,
		"reporting_name": category.ReportingName,
		"icon":           category.Icon,
	}
	if err := tx.Model(&models.MainCategory{}).Where("id = ?", category.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update category %d: %w", category.ID, err)
	}
	if err := tx.Where("parent_id = ?", category.ID).Delete(&models.SubCategory{}).Error; err != nil {
		return fmt.Errorf("failed to clear subcategories of %d: %w", category.ID, err)
	}
	if len(category.SubCategories) > 0 {
		if err := tx.Create(&category.SubCategories).Error; err != nil {
			return fmt.Errorf("failed to insert subcategories of %d: %w", category.ID, err)
		}
	}
	return nil
}

// applyAssign upserts search flows by category ID and appends field
// labels. FieldLabel has no natural key, so label rows accumulate when
// the assign document changes.
func applyAssign(tx *gorm.DB, doc string) error {
	flows, err := ParseSearchFlow(doc)
	if err != nil {
		return err
	}
	labels, err := ParseFieldLabels(doc)
	if err != nil {
		return err
	}
	if len(flows) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&flows).Error; err != nil {
			return fmt.Errorf("failed to upsert search flows: %w", err)
		}
	}
	if len(labels) > 0 {
		if err := tx.Create(&labels).Error; err != nil {
			return fmt.Errorf("failed to insert field labels: %w", err)
		}
	}
	return nil
}

// applyAttributes upserts options and fields by primary key.
func applyAttributes(tx *gorm.DB, doc string) error {
	options, err := ParseOptions(doc)
	if err != nil {
		return err
	}
	fields, err := ParseFields(doc)
	if err != nil {
		return err
	}
	if len(options) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&options).Error; err != nil {
			return fmt.Errorf("failed to upsert options: %w", err)
		}
	}
	if len(fields) > 0 {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&fields).Error; err != nil {
			return fmt.Errorf("failed to upsert fields: %w", err)
		}
	}
	return nil
}

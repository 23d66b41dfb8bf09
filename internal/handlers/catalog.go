package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/services"
	"github.com/classimark/catalog-sync/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogHandler serves the normalized catalog records
type CatalogHandler struct {
	DB *gorm.DB
}

// GetCategories handles GET /api/catalog/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := services.GetCategories(h.DB)
	if err != nil {
		return h.serviceError(c, err, "getCategories")
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// GetSearchFlow handles GET /api/catalog/search-flow/:categoryId
func (h *CatalogHandler) GetSearchFlow(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("categoryId"))
	if err != nil {
		return utils.ErrorResponse(c, "categoryId must be an integer", fiber.StatusBadRequest, "getSearchFlow")
	}

	flow, err := services.GetSearchFlow(h.DB, categoryID)
	if err != nil {
		return h.serviceError(c, err, "getSearchFlow")
	}
	if flow == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("No search flow for category %d", categoryID))
	}
	return c.Status(fiber.StatusOK).JSON(flow)
}

// GetFieldLabels handles GET /api/catalog/field-labels
func (h *CatalogHandler) GetFieldLabels(c *fiber.Ctx) error {
	labels, err := services.GetAllFieldLabels(h.DB)
	if err != nil {
		return h.serviceError(c, err, "getFieldLabels")
	}
	return c.Status(fiber.StatusOK).JSON(labels)
}

// GetFields handles GET /api/catalog/fields
func (h *CatalogHandler) GetFields(c *fiber.Ctx) error {
	fields, err := services.GetAllFields(h.DB)
	if err != nil {
		return h.serviceError(c, err, "getFields")
	}
	return c.Status(fiber.StatusOK).JSON(fields)
}

// GetFieldOptions handles GET /api/catalog/fields/:fieldId/options
func (h *CatalogHandler) GetFieldOptions(c *fiber.Ctx) error {
	fieldID := c.Params("fieldId")
	options, err := services.GetOptionsByFieldID(h.DB, fieldID)
	if err != nil {
		return h.serviceError(c, err, "getFieldOptions")
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

func (h *CatalogHandler) serviceError(c *fiber.Ctx, err error, errorType string) error {
	if errors.Is(err, database.ErrNotInitialized) {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, errorType)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

package handlers

import (
	"time"

	"github.com/classimark/catalog-sync/data"
	"github.com/classimark/catalog-sync/internal/services"
	"github.com/classimark/catalog-sync/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SyncHandler triggers catalog synchronization passes
type SyncHandler struct {
	DB *gorm.DB
}

// SyncRequest carries override documents for a sync pass. Members left
// empty fall back to the bundled assets.
type SyncRequest struct {
	Categories string `json:"categories"`
	Assign     string `json:"assign"`
	Attributes string `json:"attributes"`
}

// Sync handles POST /api/catalog/sync
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	var req SyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.ErrorResponse(c, "invalid request body", fiber.StatusBadRequest, "sync")
		}
	}
	if req.Categories == "" {
		req.Categories = data.CategoriesJSON
	}
	if req.Assign == "" {
		req.Assign = data.AssignJSON
	}
	if req.Attributes == "" {
		req.Attributes = data.AttributesJSON
	}

	report, err := services.Synchronize(h.DB, req.Categories, req.Assign, req.Attributes)
	status := fiber.StatusOK
	if err != nil {
		// Stream failures are independent; report partial progress.
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"ok":        err == nil,
		"report":    report,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

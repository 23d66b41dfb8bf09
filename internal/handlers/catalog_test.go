package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/classimark/catalog-sync/data"
	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/handlers"
	"github.com/classimark/catalog-sync/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupSyncedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	if _, err := services.Synchronize(db, data.CategoriesJSON, data.AssignJSON, data.AttributesJSON); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	app := fiber.New()
	catalog := &handlers.CatalogHandler{DB: db}
	app.Get("/api/catalog/categories", catalog.GetCategories)
	app.Get("/api/catalog/search-flow/:categoryId", catalog.GetSearchFlow)
	app.Get("/api/catalog/field-labels", catalog.GetFieldLabels)
	app.Get("/api/catalog/fields", catalog.GetFields)
	app.Get("/api/catalog/fields/:fieldId/options", catalog.GetFieldOptions)
	return app, db
}

// TestGetCategories tests the GET /api/catalog/categories endpoint
func TestGetCategories(t *testing.T) {
	app, _ := setupSyncedApp(t)

	req := httptest.NewRequest("GET", "/api/catalog/categories", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("Expected categories in response")
	}
	if result[0]["subCategories"] == nil {
		t.Error("Expected embedded subCategories in response")
	}
}

// TestGetSearchFlow tests the GET /api/catalog/search-flow/:categoryId endpoint
func TestGetSearchFlow(t *testing.T) {
	app, _ := setupSyncedApp(t)

	req := httptest.NewRequest("GET", "/api/catalog/search-flow/10", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	order, ok := result["order"].([]interface{})
	if !ok || len(order) == 0 {
		t.Errorf("Expected a non-empty order list, got %v", result["order"])
	}
}

// TestSearchFlowNotFound tests 404 for a category without a flow
func TestSearchFlowNotFound(t *testing.T) {
	app, _ := setupSyncedApp(t)

	req := httptest.NewRequest("GET", "/api/catalog/search-flow/99999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

// TestSearchFlowBadParam tests 400 for a non-numeric category ID
func TestSearchFlowBadParam(t *testing.T) {
	app, _ := setupSyncedApp(t)

	req := httptest.NewRequest("GET", "/api/catalog/search-flow/not-a-number", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestGetFieldOptions tests the GET /api/catalog/fields/:fieldId/options endpoint
func TestGetFieldOptions(t *testing.T) {
	app, _ := setupSyncedApp(t)

	req := httptest.NewRequest("GET", "/api/catalog/fields/1/options", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) == 0 {
		t.Fatal("Expected options for field 1")
	}
}

// TestSync tests the POST /api/catalog/sync endpoint
func TestSync(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	sync := &handlers.SyncHandler{DB: db}
	app.Post("/api/catalog/sync", sync.Sync)

	// Empty body falls back to the bundled documents.
	req := httptest.NewRequest("POST", "/api/catalog/sync", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["ok"] != true {
		t.Error("Expected ok=true in response")
	}
	report, ok := result["report"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a report object, got %v", result["report"])
	}
	if runID, _ := report["run_id"].(string); runID == "" {
		t.Error("Expected a run_id in the report")
	}
}

// TestSyncMalformedStream tests partial progress reporting
func TestSyncMalformedStream(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	sync := &handlers.SyncHandler{DB: db}
	app.Post("/api/catalog/sync", sync.Sync)

	body, _ := json.Marshal(handlers.SyncRequest{
		Categories: `{ not json`,
	})
	req := httptest.NewRequest("POST", "/api/catalog/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Errorf("Expected status 422, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["ok"] != false {
		t.Error("Expected ok=false in response")
	}
	// The other streams still ran from the bundled fallbacks.
	report := result["report"].(map[string]interface{})
	streams := report["streams"].([]interface{})
	if len(streams) != 3 {
		t.Fatalf("Expected 3 stream results, got %d", len(streams))
	}
}

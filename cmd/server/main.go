package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/classimark/catalog-sync/data"
	"github.com/classimark/catalog-sync/internal/config"
	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/handlers"
	"github.com/classimark/catalog-sync/internal/middleware"
	"github.com/classimark/catalog-sync/internal/services"
)

func main() {
	// Load optional .env before reading configuration
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initial synchronization from the bundled catalog assets. Stream
	// failures are independent; a bad document blocks only its own stream.
	if cfg.SyncOnStart {
		report, err := services.Synchronize(db, data.CategoriesJSON, data.AssignJSON, data.AttributesJSON)
		if err != nil {
			log.Printf("Startup sync %s completed with errors: %v", report.RunID, err)
		} else {
			log.Printf("Startup sync %s complete", report.RunID)
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("catalog-sync")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	catalogHandler := &handlers.CatalogHandler{DB: db}
	syncHandler := &handlers.SyncHandler{DB: db}

	// Catalog routes
	catalog := api.Group("/catalog")
	catalog.Get("/categories", catalogHandler.GetCategories)
	catalog.Get("/search-flow/:categoryId", catalogHandler.GetSearchFlow)
	catalog.Get("/field-labels", catalogHandler.GetFieldLabels)
	catalog.Get("/fields", catalogHandler.GetFields)
	catalog.Get("/fields/:fieldId/options", catalogHandler.GetFieldOptions)
	catalog.Post("/sync", syncHandler.Sync)

	// Health route
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

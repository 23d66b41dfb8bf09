package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/classimark/catalog-sync/internal/config"
	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/services"
	"github.com/classimark/catalog-sync/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Check the API server is listening
	serverStatus := "ok"
	if err := utils.PingServer(cfg.Port); err != nil {
		serverStatus = fmt.Sprintf("unreachable: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)
	result.Details["server"] = serverStatus
	if serverStatus != "ok" {
		result.Status = "unhealthy"
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}

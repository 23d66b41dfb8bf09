// seed runs a one-shot synchronization pass against the configured
// database, using the bundled assets or document files given as
// arguments: seed [categories.json assign.json attributes.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/classimark/catalog-sync/data"
	"github.com/classimark/catalog-sync/internal/config"
	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/services"
)

func main() {
	envFile := flag.String("env", ".env", "path to an env file to load before reading configuration")
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("Failed to load %s: %v", *envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	categoriesJSON := data.CategoriesJSON
	assignJSON := data.AssignJSON
	attributesJSON := data.AttributesJSON

	if args := flag.Args(); len(args) > 0 {
		if len(args) != 3 {
			log.Fatalf("Expected 3 document paths (categories assign attributes), got %d", len(args))
		}
		categoriesJSON = readDocument(args[0])
		assignJSON = readDocument(args[1])
		attributesJSON = readDocument(args[2])
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	report, syncErr := services.Synchronize(db, categoriesJSON, assignJSON, attributesJSON)

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal sync report: %v", err)
	}
	fmt.Println(string(output))

	if syncErr != nil {
		log.Printf("Sync completed with errors: %v", syncErr)
		os.Exit(1)
	}
}

func readDocument(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(content)
}

package services_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/classimark/catalog-sync/data"
	"github.com/classimark/catalog-sync/internal/config"
	"github.com/classimark/catalog-sync/internal/database"
	"github.com/classimark/catalog-sync/internal/models"
	"github.com/classimark/catalog-sync/internal/services"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// startMariaDB starts a throwaway MariaDB container and returns a
// connected gorm handle. Set DB_IMAGE to override the image.
func startMariaDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "catalog-test",
				"MARIADB_DATABASE":      "catalog",
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate MariaDB: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            mappedPort.Port(),
		DBDatabase:        "catalog",
		DBUser:            "root",
		DBPassword:        "catalog-test",
		DBConnectionLimit: 4,
	}

	// The listening port comes up before MariaDB accepts logins, so
	// retry the initial connection for a while.
	var db *gorm.DB
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err = database.Connect(cfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("MariaDB not ready: %v", err)
		}
		time.Sleep(time.Second)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestSynchronizeMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container-backed test in short mode")
	}

	db := startMariaDB(t)

	report, err := services.Synchronize(db, data.CategoriesJSON, data.AssignJSON, data.AttributesJSON)
	if err != nil {
		t.Fatalf("Synchronize failed: %v", err)
	}
	for _, stream := range report.Streams {
		if !stream.Updated {
			t.Errorf("Stream %s should have reconciled on first run", stream.Stream)
		}
	}

	categories, err := services.GetCategories(db)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("Expected categories after sync")
	}

	fields, err := services.GetAllFields(db)
	if err != nil {
		t.Fatalf("GetAllFields failed: %v", err)
	}
	if len(fields) == 0 {
		t.Fatal("Expected fields after sync")
	}
	options, err := services.GetOptionsByFieldID(db, "1")
	if err != nil {
		t.Fatalf("GetOptionsByFieldID failed: %v", err)
	}
	if len(options) == 0 {
		t.Error("Expected options for field 1")
	}

	var labelsBefore int64
	db.Model(&models.FieldLabel{}).Count(&labelsBefore)

	report, err = services.Synchronize(db, data.CategoriesJSON, data.AssignJSON, data.AttributesJSON)
	if err != nil {
		t.Fatalf("Re-sync failed: %v", err)
	}
	for _, stream := range report.Streams {
		if stream.Updated {
			t.Errorf("Stream %s reconciled on unchanged input", stream.Stream)
		}
	}

	var labelsAfter int64
	db.Model(&models.FieldLabel{}).Count(&labelsAfter)
	if labelsBefore != labelsAfter {
		t.Errorf("Label count changed on idempotent re-run: %d -> %d", labelsBefore, labelsAfter)
	}
}

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/api/server"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/config"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/store"
)

func main() {
	// Load a local .env if present so dev environments start without exports.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Create logger
	lg := logger.New(cfg.LogLevel, nil)

	lg.Info("Starting task service", map[string]any{
		"version":          cfg.Version,
		"port":             cfg.ServerPort,
		"log_level":        cfg.LogLevel,
		"mongo_configured": cfg.MongoConfigured(),
	})

	// Select the storage backend once, at startup. A configured Mongo URI
	// wins; otherwise tasks live in process memory and die with it.
	taskStore, backend := selectStore(cfg)
	svc := service.New(taskStore, backend, lg)

	// Create and start server
	srv := server.New(svc, taskStore, cfg, lg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// selectStore picks the store variant based on configuration presence.
func selectStore(cfg *config.Config) (store.TaskStore, string) {
	if cfg.MongoConfigured() {
		return store.NewMongoTaskStore(cfg.MongoURI, cfg.MongoDatabase), "mongo"
	}
	return store.NewMemoryTaskStore(), "memory"
}

// Package main implements the entry point for the taskdeck API server,
// a task-tracking HTTP API with optional bearer-token authentication.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/taskdeck/api/internal/config"
	"github.com/taskdeck/api/internal/platform/logger"
)

func main() {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	app, err := newApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting catalog API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := container.New(cfg)

	if err := app.Server.Run(); err != nil {
		log.Fatalf("Catalog API exited with error: %v", err)
	}
}

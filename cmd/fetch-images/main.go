package main

import (
	"context"

	"probuild/catalog/internal/config"
	"probuild/catalog/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting image fetch...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := container.New(cfg)

	if err := app.Service.RunFetchImages(context.Background()); err != nil {
		log.Fatalf("Image fetch failed: %v", err)
	}
}

package main

import (
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting page generation...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := container.New(cfg)

	if err := app.Service.RunGeneratePages(); err != nil {
		log.Fatalf("Page generation failed: %v", err)
	}
}

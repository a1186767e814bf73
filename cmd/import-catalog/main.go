package main

import (
	"flag"

	"probuild/catalog/internal/config"
	"probuild/catalog/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	batchSize := flag.Int("batch-size", 0, "process at most this many products (0 = all)")
	offset := flag.Int("offset", 0, "skip this many products before processing")
	flag.Parse()

	log.Info("Starting catalog import...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := container.New(cfg)

	if err := app.Service.RunImport(*batchSize, *offset); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

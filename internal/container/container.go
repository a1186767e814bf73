package container

import (
	"probuild/catalog/internal/assembler"
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/fetcher"
	"probuild/catalog/internal/pages"
	"probuild/catalog/internal/server"
	"probuild/catalog/internal/service"
	"probuild/catalog/internal/source"
	"probuild/catalog/internal/storage"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Store   storage.CatalogStore
	Service *service.Service
	Server  *server.Server
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) *Container {
	store := storage.NewFileStore()
	loader := source.NewLoader()
	asm := assembler.New(cfg.Site, store)
	materializer := pages.NewMaterializer(cfg.Site, cfg.Paths, store)
	fetch := fetcher.New(cfg.Fetcher, cfg.Site, cfg.Paths.ImagesDir)

	return &Container{
		Config:  cfg,
		Store:   store,
		Service: service.NewService(cfg, loader, asm, materializer, fetch, store),
		Server:  server.New(cfg.Server, cfg.Paths, store),
	}
}

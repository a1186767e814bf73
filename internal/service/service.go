package service

import (
	"context"
	"fmt"

	"probuild/catalog/internal/assembler"
	"probuild/catalog/internal/classifier"
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/fetcher"
	"probuild/catalog/internal/pages"
	"probuild/catalog/internal/source"
	"probuild/catalog/internal/storage"
	"probuild/catalog/internal/tree"

	log "github.com/sirupsen/logrus"
)

// Service orchestrates the pipeline stages. Stages run strictly in sequence;
// each one consumes its predecessor's complete output, since priority
// reassignment needs the whole category tree before any product is placed.
type Service struct {
	cfg          *config.Config
	loader       *source.Loader
	assembler    *assembler.Assembler
	materializer *pages.Materializer
	fetcher      *fetcher.Fetcher
	store        storage.CatalogStore
}

func NewService(
	cfg *config.Config,
	loader *source.Loader,
	asm *assembler.Assembler,
	materializer *pages.Materializer,
	fetch *fetcher.Fetcher,
	store storage.CatalogStore,
) *Service {
	return &Service{
		cfg:          cfg,
		loader:       loader,
		assembler:    asm,
		materializer: materializer,
		fetcher:      fetch,
		store:        store,
	}
}

// RunImport executes the full reconciliation pipeline: load the scraped
// snapshot, build the category tree, classify products, assemble the
// canonical dataset and persist both artifacts. The summary prints even when
// classification left warnings behind.
func (s *Service) RunImport(batchSize, offset int) error {
	log.Info("🚀 Starting catalog import...")

	catalog, err := s.loader.Load(s.cfg.Paths.SourceSnapshot, batchSize, offset)
	if err != nil {
		return err
	}
	log.Infof("✅ Loaded %d categories and %d products", len(catalog.Categories), len(catalog.Products))

	t := tree.Build(catalog.Categories)
	log.Infof("✅ Category tree built: %d top-level categories", len(t.Roots))

	ledger := classifier.NewPlacementLedger()
	report := classifier.New(t).Run(catalog.Products, ledger)

	dataset, summary := s.assembler.Assemble(t, catalog.Products, ledger)

	persistErr := s.assembler.Persist(s.cfg.Paths, catalog.Categories, catalog.Products, dataset)

	log.Info("Import summary:")
	log.Infof("  Categories:     %d", summary.Categories)
	log.Infof("  Subcategories:  %d", summary.Subcategories)
	log.Infof("  Placed:         %d", summary.PlacedProducts)
	log.Infof("  Dropped slugs:  %d", summary.DroppedSlugs)
	log.Infof("  Orphaned refs:  %d", summary.OrphanedRefs)
	log.Infof("  Unclassified:   %d", len(report.Unclassified))
	log.Infof("  Ambiguous:      %d", len(report.Ambiguous))

	for _, name := range report.Unclassified {
		log.Warnf("⚠ Unclassified product: %s", name)
	}
	for _, name := range report.Ambiguous {
		log.Warnf("⚠ Ambiguous classification: %s", name)
	}

	if persistErr != nil {
		return persistErr
	}
	log.Info("✅ Catalog import finished")
	return nil
}

// RunGeneratePages materializes the page tree and the navigation index from
// the processed snapshot written by the import stage.
func (s *Service) RunGeneratePages() error {
	log.Info("🚀 Generating pages...")

	snapshot, err := s.store.LoadSnapshot(s.cfg.Paths.ProcessedSnapshot)
	if err != nil {
		return fmt.Errorf("processed snapshot %s is not readable: run import-catalog first: %w",
			s.cfg.Paths.ProcessedSnapshot, err)
	}

	summary, err := s.materializer.Materialize(&snapshot.Structure, snapshot.Products)

	log.Info("Page generation summary:")
	log.Infof("  Created:  %d", summary.Created)
	log.Infof("  Updated:  %d", summary.Updated)
	log.Infof("  Skipped:  %d", summary.Skipped)
	log.Infof("  Failed:   %d", summary.Failed)

	if err != nil {
		return err
	}
	log.Info("✅ Page generation finished")
	return nil
}

// RunFetchImages downloads every gallery asset the generated pages reference.
// Individual failures are reported and skipped; the run always completes.
func (s *Service) RunFetchImages(ctx context.Context) error {
	log.Info("🚀 Fetching catalog images...")

	snapshot, err := s.store.LoadSnapshot(s.cfg.Paths.ProcessedSnapshot)
	if err != nil {
		return fmt.Errorf("processed snapshot %s is not readable: run import-catalog first: %w",
			s.cfg.Paths.ProcessedSnapshot, err)
	}

	assets := s.fetcher.Plan(&snapshot.Structure, snapshot.Products)
	log.Infof("Planned %d assets", len(assets))

	summary := s.fetcher.FetchAll(ctx, assets)

	log.Info("Fetch summary:")
	log.Infof("  Downloaded: %d", summary.Downloaded)
	log.Infof("  Skipped:    %d", summary.Skipped)
	log.Infof("  Failed:     %d", summary.Failed)
	return nil
}

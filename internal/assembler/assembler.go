package assembler

import (
	"fmt"

	"probuild/catalog/internal/classifier"
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/storage"
	"probuild/catalog/internal/tree"

	log "github.com/sirupsen/logrus"
)

// Summary counts what an assembly run produced.
type Summary struct {
	Categories     int
	Subcategories  int
	PlacedProducts int
	DroppedSlugs   int
	OrphanedRefs   int
}

// Assembler merges the category tree, the placement ledger and the full
// product records into the canonical dataset, and persists the two run
// artifacts (intermediate snapshot, consumer dataset).
type Assembler struct {
	site  config.SiteConfig
	store storage.CatalogStore
}

func New(site config.SiteConfig, store storage.CatalogStore) *Assembler {
	return &Assembler{site: site, store: store}
}

// Assemble builds the canonical dataset. Categories are emitted in the
// declared priority order first, then any remaining roots in source order.
// Two distinct root categories normalizing to the same slug are a source
// conflict: the first occurrence wins and the drop is reported.
func (a *Assembler) Assemble(t *tree.Tree, products []domain.Product, ledger *classifier.PlacementLedger) (*domain.Dataset, *Summary) {
	summary := &Summary{}

	ordered := orderRoots(t)
	dataset := &domain.Dataset{Categories: make([]domain.Category, 0, len(ordered))}

	seenSlugs := make(map[string]string, len(ordered))
	catIndex := make(map[string]int, len(ordered))
	subIndex := make(map[string]struct {
		cat int
		sub int
	})

	for _, root := range ordered {
		if first, dup := seenSlugs[root.Slug]; dup {
			log.Warnf("⚠ Duplicate category slug %q: keeping %q, dropping %q", root.Slug, first, root.ID)
			continue
		}
		seenSlugs[root.Slug] = root.ID

		category := domain.Category{
			ID:              root.ID,
			Name:            root.Name,
			Slug:            root.Slug,
			Description:     root.Description,
			Image:           fmt.Sprintf("%s/%s.jpg", a.site.CategoryImagePrefix, root.Slug),
			MetaTitle:       root.MetaTitle,
			MetaDescription: root.MetaDescription,
			Subcategories:   make([]domain.Subcategory, 0, len(root.Children)),
			Products:        []domain.ProductRef{},
		}
		if category.MetaTitle == "" {
			category.MetaTitle = fmt.Sprintf("%s – %s", root.Name, a.site.Name)
		}
		if category.MetaDescription == "" {
			category.MetaDescription = fmt.Sprintf("%s - %s", root.Name, a.site.Name)
		}

		for _, child := range root.Children {
			category.Subcategories = append(category.Subcategories, domain.Subcategory{
				ID:       child.ID,
				Name:     child.Name,
				Slug:     child.Slug,
				ParentID: root.ID,
				Products: []domain.ProductRef{},
			})
			subIndex[child.ID] = struct {
				cat int
				sub int
			}{len(dataset.Categories), len(category.Subcategories) - 1}
			summary.Subcategories++
		}

		catIndex[root.ID] = len(dataset.Categories)
		dataset.Categories = append(dataset.Categories, category)
		summary.Categories++
	}

	// Products are walked in source order so reruns are byte-identical.
	for _, product := range products {
		placement, ok := ledger.Lookup(product.ID)
		if !ok {
			continue
		}
		ref := domain.ProductRef{ID: product.ID, Name: product.Name, Slug: product.Slug}

		if placement.Subcategory != "" {
			if pos, ok := subIndex[placement.Subcategory]; ok {
				sub := &dataset.Categories[pos.cat].Subcategories[pos.sub]
				sub.Products = append(sub.Products, ref)
				summary.PlacedProducts++
				continue
			}
		}
		if idx, ok := catIndex[placement.Category]; ok {
			dataset.Categories[idx].Products = append(dataset.Categories[idx].Products, ref)
			summary.PlacedProducts++
			continue
		}
		summary.OrphanedRefs++
		log.Warnf("⚠ Product %q (%s) placed under dropped category %q; ref omitted",
			product.Name, product.ID, placement.Category)
	}

	// Final slug-keyed dedup within every list, independently.
	for i := range dataset.Categories {
		cat := &dataset.Categories[i]
		before := len(cat.Products)
		cat.Products = classifier.DedupeRefsBySlug(cat.Products, "category "+cat.ID)
		summary.DroppedSlugs += before - len(cat.Products)
		for j := range cat.Subcategories {
			sub := &cat.Subcategories[j]
			before = len(sub.Products)
			sub.Products = classifier.DedupeRefsBySlug(sub.Products, "subcategory "+sub.ID)
			summary.DroppedSlugs += before - len(sub.Products)
		}
	}
	summary.PlacedProducts = countRefs(dataset)

	// Descriptions are synthesized last: the template depends on whether the
	// category ended up holding products.
	for i := range dataset.Categories {
		cat := &dataset.Categories[i]
		if cat.Description != "" {
			continue
		}
		total := len(cat.Products)
		for _, sub := range cat.Subcategories {
			total += len(sub.Products)
		}
		if total > 0 {
			cat.Description = fmt.Sprintf("%s - professional solutions, %d products available.", cat.Name, total)
		} else {
			cat.Description = fmt.Sprintf("%s - professional solutions.", cat.Name)
		}
	}

	return dataset, summary
}

// Persist writes the intermediate snapshot and the consumer dataset as two
// distinct artifacts: a failed page run can then restart from the snapshot
// without reclassifying. The previous dataset is backed up before rewrite.
func (a *Assembler) Persist(paths config.PathsConfig, flat []domain.FlatCategory, products []domain.Product, dataset *domain.Dataset) error {
	snapshot := &domain.Snapshot{
		Categories: flat,
		Products:   products,
		Structure:  *dataset,
		Metadata: domain.SnapshotMeta{
			TotalCategories: len(dataset.Categories),
			TotalProducts:   len(products),
		},
	}
	if err := a.store.SaveSnapshot(paths.ProcessedSnapshot, snapshot); err != nil {
		return fmt.Errorf("failed to persist processed snapshot: %w", err)
	}

	if err := a.store.BackupDataset(paths.Dataset, paths.DatasetBackup); err != nil {
		return fmt.Errorf("failed to back up previous dataset: %w", err)
	}
	if err := a.store.SaveDataset(paths.Dataset, dataset); err != nil {
		return fmt.Errorf("failed to persist dataset: %w", err)
	}
	return nil
}

// orderRoots yields the declared-priority categories first, then the
// remaining roots in source order.
func orderRoots(t *tree.Tree) []tree.Root {
	ordered := make([]tree.Root, 0, len(t.Roots))
	taken := make(map[string]struct{})
	for _, id := range classifier.PriorityOrder() {
		if root, ok := t.Root(id); ok {
			ordered = append(ordered, root)
			taken[id] = struct{}{}
		}
	}
	for _, root := range t.Roots {
		if _, ok := taken[root.ID]; !ok {
			ordered = append(ordered, root)
		}
	}
	return ordered
}

func countRefs(dataset *domain.Dataset) int {
	total := 0
	for _, cat := range dataset.Categories {
		total += len(cat.Products)
		for _, sub := range cat.Subcategories {
			total += len(sub.Products)
		}
	}
	return total
}

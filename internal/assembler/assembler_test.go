package assembler

import (
	"strings"
	"testing"

	"probuild/catalog/internal/classifier"
	"probuild/catalog/internal/config"
	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/storage"
	"probuild/catalog/internal/tree"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{
		Name:                "PROBUILD",
		CategoryPathPrefix:  "/categories",
		ProductPathPrefix:   "/products",
		CategoryImagePrefix: "/images/products",
		ProductImagePrefix:  "/images/products-detail",
	}
}

func TestAssembleOrdersByDeclaredPriority(t *testing.T) {
	// Source order deliberately scrambled relative to the declared order, plus
	// one unknown category that must trail in source order.
	tr := tree.Build([]domain.FlatCategory{
		{ID: "wood-wool-panels", Name: "Wood Wool Panels", Slug: "wood-wool-panels"},
		{ID: "specials", Name: "Specials", Slug: "specials"},
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems"},
	})

	dataset, _ := New(testSite(), storage.NewFileStore()).Assemble(tr, nil, classifier.NewPlacementLedger())

	got := make([]string, 0, len(dataset.Categories))
	for _, cat := range dataset.Categories {
		got = append(got, cat.ID)
	}
	want := []string{"carrier-systems", "wood-wool-panels", "specials"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order = %v, want %v", got, want)
		}
	}
}

func TestAssembleDropsDuplicateCategorySlug(t *testing.T) {
	tr := tree.Build([]domain.FlatCategory{
		{ID: "panouri-gips-a", Name: "Panouri Gips", Slug: "panouri-gips"},
		{ID: "panouri-gips-b", Name: "Panouri Gips Alt", Slug: "panouri-gips"},
	})

	dataset, summary := New(testSite(), storage.NewFileStore()).Assemble(tr, nil, classifier.NewPlacementLedger())

	if len(dataset.Categories) != 1 {
		t.Fatalf("expected duplicate slug dropped, got %d categories", len(dataset.Categories))
	}
	if dataset.Categories[0].ID != "panouri-gips-a" {
		t.Fatalf("first occurrence must win, got %q", dataset.Categories[0].ID)
	}
	if summary.Categories != 1 {
		t.Fatalf("summary.Categories = %d, want 1", summary.Categories)
	}
}

func TestAssembleCountsRefsOrphanedByDroppedCategory(t *testing.T) {
	// p1 is placed under the duplicate-slug loser: its ref has no home in the
	// dataset, and the loss must show up in the summary rather than vanish.
	tr := tree.Build([]domain.FlatCategory{
		{ID: "panouri-gips-a", Name: "Panouri Gips", Slug: "panouri-gips"},
		{ID: "panouri-gips-b", Name: "Panouri Gips Alt", Slug: "panouri-gips"},
	})
	products := []domain.Product{
		{ID: "p1", Name: "Gips Panel", Slug: "gips-panel"},
	}
	ledger := classifier.NewPlacementLedger()
	ledger.Propose(domain.Placement{ProductID: "p1", Category: "panouri-gips-b", Priority: 0})

	dataset, summary := New(testSite(), storage.NewFileStore()).Assemble(tr, products, ledger)

	if got := countRefs(dataset); got != 0 {
		t.Fatalf("dataset holds %d refs, want 0", got)
	}
	if summary.OrphanedRefs != 1 {
		t.Fatalf("summary.OrphanedRefs = %d, want 1", summary.OrphanedRefs)
	}
	if summary.PlacedProducts != 0 {
		t.Fatalf("summary.PlacedProducts = %d, want 0", summary.PlacedProducts)
	}
}

func TestAssembleSynthesizesDefaults(t *testing.T) {
	tr := tree.Build([]domain.FlatCategory{
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems"},
	})
	products := []domain.Product{
		{ID: "p1", Name: "T24 Grid", Slug: "t24-grid"},
	}
	ledger := classifier.NewPlacementLedger()
	ledger.Propose(domain.Placement{ProductID: "p1", Category: "carrier-systems", Priority: 0})

	dataset, _ := New(testSite(), storage.NewFileStore()).Assemble(tr, products, ledger)

	cat := dataset.Categories[0]
	if cat.Image != "/images/products/carrier-systems.jpg" {
		t.Fatalf("default image wrong: %q", cat.Image)
	}
	if !strings.Contains(cat.MetaTitle, "Carrier Systems") || !strings.Contains(cat.MetaTitle, "PROBUILD") {
		t.Fatalf("meta title not parameterized by site name: %q", cat.MetaTitle)
	}
	if !strings.Contains(cat.Description, "1 products available") {
		t.Fatalf("populated category should use the counted template: %q", cat.Description)
	}
}

func TestAssembleEmptyCategoryDescription(t *testing.T) {
	tr := tree.Build([]domain.FlatCategory{
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems"},
	})

	dataset, _ := New(testSite(), storage.NewFileStore()).Assemble(tr, nil, classifier.NewPlacementLedger())

	desc := dataset.Categories[0].Description
	if desc == "" || strings.Contains(desc, "available") {
		t.Fatalf("empty category should use the no-products template: %q", desc)
	}
}

func TestAssembleSinglePlacement(t *testing.T) {
	tr := tree.Build([]domain.FlatCategory{
		{ID: "metal-ceiling-systems", Name: "Metal Ceiling Systems", Slug: "metal-ceiling-systems"},
		{ID: "baffle-linear-ceiling", Name: "Baffle Linear Ceiling", Slug: "baffle-linear-ceiling", ParentID: "metal-ceiling-systems"},
	})
	products := []domain.Product{
		{ID: "p1", Name: "Baffle Panel", Slug: "baffle-panel"},
	}
	ledger := classifier.NewPlacementLedger()
	ledger.Propose(domain.Placement{
		ProductID:   "p1",
		Category:    "metal-ceiling-systems",
		Subcategory: "baffle-linear-ceiling",
		Priority:    5,
	})

	dataset, summary := New(testSite(), storage.NewFileStore()).Assemble(tr, products, ledger)

	occurrences := 0
	for _, cat := range dataset.Categories {
		for _, ref := range cat.Products {
			if ref.ID == "p1" {
				occurrences++
			}
		}
		for _, sub := range cat.Subcategories {
			for _, ref := range sub.Products {
				if ref.ID == "p1" {
					occurrences++
				}
			}
			if sub.ParentID != cat.ID {
				t.Fatalf("subcategory parent id %q, want %q", sub.ParentID, cat.ID)
			}
		}
	}
	if occurrences != 1 {
		t.Fatalf("product appears %d times, want exactly 1", occurrences)
	}
	if summary.PlacedProducts != 1 {
		t.Fatalf("summary.PlacedProducts = %d, want 1", summary.PlacedProducts)
	}
}

func TestAssembleDedupesSlugsWithinList(t *testing.T) {
	tr := tree.Build([]domain.FlatCategory{
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems"},
	})
	products := []domain.Product{
		{ID: "p1", Name: "Grid", Slug: "grid"},
		{ID: "p2", Name: "Grid Again", Slug: "grid"},
	}
	ledger := classifier.NewPlacementLedger()
	ledger.Propose(domain.Placement{ProductID: "p1", Category: "carrier-systems", Priority: 0})
	ledger.Propose(domain.Placement{ProductID: "p2", Category: "carrier-systems", Priority: 0})

	dataset, summary := New(testSite(), storage.NewFileStore()).Assemble(tr, products, ledger)

	if len(dataset.Categories[0].Products) != 1 {
		t.Fatalf("expected slug dedup to keep one ref, got %d", len(dataset.Categories[0].Products))
	}
	if dataset.Categories[0].Products[0].ID != "p1" {
		t.Fatalf("first occurrence must win, got %q", dataset.Categories[0].Products[0].ID)
	}
	if summary.DroppedSlugs != 1 {
		t.Fatalf("summary.DroppedSlugs = %d, want 1", summary.DroppedSlugs)
	}
}

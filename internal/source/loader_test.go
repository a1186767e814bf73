package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog_source.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestLoadMissingSnapshotIsFatal(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.json"), 0, 0)
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("error should name the missing file problem: %v", err)
	}
}

func TestMintIDStableAcrossRuns(t *testing.T) {
	a := MintID("T24 Support Grid", "t24-support-grid")
	b := MintID("T24 Support Grid", "t24-support-grid")
	if a != b {
		t.Fatalf("minted ids differ across calls: %s vs %s", a, b)
	}
	if c := MintID("T24 Support Grid", "other-slug"); c == a {
		t.Fatal("different slug must mint a different id")
	}
}

func TestLoadMintsIDAndSlug(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [],
		"products": [{"name": "Plăci Acustice®"}]
	}`)

	catalog, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(catalog.Products))
	}
	p := catalog.Products[0]
	if p.Slug != "placi-acustice" {
		t.Fatalf("slug fallback wrong: %q", p.Slug)
	}
	if p.ID != MintID("Plăci Acustice®", "placi-acustice") {
		t.Fatalf("id not minted from name+slug: %q", p.ID)
	}
}

func TestLoadFiltersAndClassifiesPDFs(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [],
		"products": [{
			"name": "Baffle Ceiling",
			"slug": "baffle-ceiling",
			"pdfs": [
				"https://example.com/docs/katalog.pdf",
				"https://example.com/docs/teknik-cizim-baffle.pdf",
				"https://example.com/docs/baffle-data-sheet.pdf"
			]
		}]
	}`)

	catalog, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := catalog.Products[0]
	if len(p.PDFs) != 2 {
		t.Fatalf("katalog.pdf must be filtered, got %v", p.PDFs)
	}
	if !p.HasDrawing || !p.HasDataSheet {
		t.Fatalf("pdf kinds misclassified: drawing=%v datasheet=%v", p.HasDrawing, p.HasDataSheet)
	}
	if got := FindDrawingPDF(p.PDFs); !strings.Contains(got, "teknik-cizim") {
		t.Fatalf("wrong drawing pdf: %q", got)
	}
	if got := FindDataSheetPDF(p.PDFs); !strings.Contains(got, "data-sheet") {
		t.Fatalf("wrong data sheet pdf: %q", got)
	}
}

func TestLoadDropsOnlyNameDescription(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [],
		"products": [
			{"name": "Short Desc", "slug": "short-desc", "description": "Short Desc"},
			{"name": "Real Desc", "slug": "real-desc", "description": "A proper description of the panel, long enough to keep, with real content."}
		]
	}`)

	catalog, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if catalog.Products[0].Description != "" || catalog.Products[0].DescriptionHTML != "" {
		t.Fatal("only-name description must be dropped")
	}
	if catalog.Products[1].Description == "" {
		t.Fatal("real description must survive")
	}
	if !strings.Contains(catalog.Products[1].DescriptionHTML, "<p>") {
		t.Fatalf("plain description should be wrapped: %q", catalog.Products[1].DescriptionHTML)
	}
}

func TestLoadHTMLDescriptionToText(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [],
		"products": [{
			"name": "HTML Desc",
			"slug": "html-desc",
			"description": "<p>First paragraph with plenty of words inside it.</p><p>Second paragraph also long enough.</p>"
		}]
	}`)

	catalog, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := catalog.Products[0]
	if strings.Contains(p.Description, "<p>") {
		t.Fatalf("plain text must not contain markup: %q", p.Description)
	}
	if !strings.HasPrefix(p.DescriptionHTML, "<p>") {
		t.Fatalf("html variant must keep markup: %q", p.DescriptionHTML)
	}
}

func TestLoadBatchWindow(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [],
		"products": [
			{"name": "P1", "slug": "p1"},
			{"name": "P2", "slug": "p2"},
			{"name": "P3", "slug": "p3"},
			{"name": "P4", "slug": "p4"}
		]
	}`)

	catalog, err := NewLoader().Load(path, 2, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("expected window of 2, got %d", len(catalog.Products))
	}
	if catalog.Products[0].Name != "P2" || catalog.Products[1].Name != "P3" {
		t.Fatalf("wrong window: %s, %s", catalog.Products[0].Name, catalog.Products[1].Name)
	}

	all, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all.Products) != 4 {
		t.Fatalf("zero batch size must mean no limit, got %d", len(all.Products))
	}

	past, err := NewLoader().Load(path, 0, 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(past.Products) != 0 {
		t.Fatalf("offset past end must yield empty window, got %d", len(past.Products))
	}
}

func TestLoadCategorySlugAndIDFallbacks(t *testing.T) {
	path := writeSnapshot(t, `{
		"categories": [{"name": "Sisteme de Susținere"}],
		"products": []
	}`)

	catalog, err := NewLoader().Load(path, 0, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(catalog.Categories))
	}
	cat := catalog.Categories[0]
	if cat.Slug != "sisteme-de-sustinere" {
		t.Fatalf("slug fallback wrong: %q", cat.Slug)
	}
	if cat.ID != cat.Slug {
		t.Fatalf("id should fall back to slug: %q", cat.ID)
	}
}

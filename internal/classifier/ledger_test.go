package classifier

import (
	"testing"

	"probuild/catalog/internal/domain"
)

func TestDedupeRefsBySlugFirstWins(t *testing.T) {
	refs := []domain.ProductRef{
		{ID: "a", Name: "Panel A", Slug: "panel"},
		{ID: "b", Name: "Panel B", Slug: "panel"},
		{ID: "c", Name: "Panel C", Slug: "panel-c"},
	}

	out := DedupeRefsBySlug(refs, "category test")

	if len(out) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "c" {
		t.Fatalf("first occurrence must win: %+v", out)
	}
}

func TestDedupeRefsBySlugFallsBackToID(t *testing.T) {
	refs := []domain.ProductRef{
		{ID: "a", Name: "No Slug 1"},
		{ID: "a", Name: "No Slug 1 Copy"},
		{ID: "b", Name: "No Slug 2"},
	}

	out := DedupeRefsBySlug(refs, "subcategory test")

	if len(out) != 2 {
		t.Fatalf("expected id-keyed dedup when slugs are empty, got %d refs", len(out))
	}
}

func TestDedupeRefsBySlugKeepsOrder(t *testing.T) {
	refs := []domain.ProductRef{
		{ID: "1", Slug: "x"},
		{ID: "2", Slug: "y"},
		{ID: "3", Slug: "z"},
	}

	out := DedupeRefsBySlug(refs, "category test")

	for i, want := range []string{"1", "2", "3"} {
		if out[i].ID != want {
			t.Fatalf("order changed at %d: got %s, want %s", i, out[i].ID, want)
		}
	}
}

package tree

import (
	"testing"

	"probuild/catalog/internal/domain"
)

func TestBuildResolvesParentByName(t *testing.T) {
	cats := []domain.FlatCategory{
		{ID: "metal-ceiling-systems", Name: "Metal Ceiling Systems", Slug: "metal-ceiling-systems"},
		{ID: "baffle-linear-ceiling", Name: "Baffle Linear Ceiling", Slug: "baffle-linear-ceiling", ParentID: "Metal Ceiling Systems"},
	}

	tr := Build(cats)

	if len(tr.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tr.Roots))
	}
	root := tr.Roots[0]
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	if root.Children[0].ParentID != "metal-ceiling-systems" {
		t.Fatalf("child parent id not rewritten to the resolved id: %q", root.Children[0].ParentID)
	}
	if !tr.IsSubcategory("baffle-linear-ceiling") {
		t.Fatal("resolved child not recognized as subcategory")
	}
}

func TestBuildPromotesOrphanToRoot(t *testing.T) {
	cats := []domain.FlatCategory{
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems"},
		{ID: "lost-child", Name: "Lost Child", Slug: "lost-child", ParentID: "no-such-parent"},
	}

	tr := Build(cats)

	if len(tr.Roots) != 2 {
		t.Fatalf("expected orphan promoted to root, got %d roots", len(tr.Roots))
	}
	if !tr.IsRootID("lost-child") {
		t.Fatal("orphan not registered as root")
	}
	if tr.IsSubcategory("lost-child") {
		t.Fatal("promoted orphan must not register as subcategory")
	}
}

func TestBuildSelfParentPromotedToRoot(t *testing.T) {
	cats := []domain.FlatCategory{
		{ID: "loop", Name: "Loop", Slug: "loop", ParentID: "loop"},
	}

	tr := Build(cats)

	if len(tr.Roots) != 1 || tr.Roots[0].ID != "loop" {
		t.Fatalf("self-parented category should become a root, got %+v", tr.Roots)
	}
}

func TestBuildDropsDuplicateIDs(t *testing.T) {
	cats := []domain.FlatCategory{
		{ID: "metal-ceiling-systems", Name: "Metal Ceiling Systems", Slug: "metal-ceiling-systems"},
		{ID: "metal-ceiling-systems", Name: "Metal Ceiling Systems Again", Slug: "metal-ceiling-systems-again"},
	}

	tr := Build(cats)

	if len(tr.Roots) != 1 {
		t.Fatalf("expected duplicate id dropped, got %d roots", len(tr.Roots))
	}
	if tr.Roots[0].Name != "Metal Ceiling Systems" {
		t.Fatalf("first occurrence should win, got %q", tr.Roots[0].Name)
	}
}

func TestBuildTrimsIDs(t *testing.T) {
	cats := []domain.FlatCategory{
		{ID: " carrier-systems ", Name: "Carrier Systems", Slug: "carrier-systems"},
		{ID: "t24", Name: "T24", Slug: "t24", ParentID: " carrier-systems "},
	}

	tr := Build(cats)

	root, ok := tr.Root("carrier-systems")
	if !ok {
		t.Fatal("trimmed root id not found")
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected trimmed parent id to resolve, got %d children", len(root.Children))
	}
}

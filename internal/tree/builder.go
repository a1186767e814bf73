package tree

import (
	"strings"

	"probuild/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Root is a top-level category together with its resolved children. The
// hierarchy is strictly two levels deep; a child never has children of its
// own.
type Root struct {
	domain.FlatCategory
	Children []domain.FlatCategory
}

// Tree is the resolved two-level category hierarchy.
type Tree struct {
	Roots []Root

	rootIDs  map[string]struct{}
	subIDs   map[string]struct{}
	subSlugs map[string]struct{}
}

// Build resolves parent/child links from the flat source list. Parents are
// resolved by exact id first, then by display name: dirty sources sometimes
// reference a parent by its name instead of its id. Categories whose parent
// cannot be resolved are promoted to root with a warning; dropping them
// silently would lose products downstream.
func Build(categories []domain.FlatCategory) *Tree {
	byID := make(map[string]*domain.FlatCategory, len(categories))
	byName := make(map[string]*domain.FlatCategory, len(categories))
	dropped := make(map[int]struct{})
	for i := range categories {
		cat := &categories[i]
		cat.ID = strings.TrimSpace(cat.ID)
		cat.ParentID = strings.TrimSpace(cat.ParentID)
		if _, dup := byID[cat.ID]; dup {
			log.Warnf("⚠ Duplicate category id %q in source; keeping first occurrence", cat.ID)
			dropped[i] = struct{}{}
			continue
		}
		byID[cat.ID] = cat
		if cat.Name != "" {
			if _, dup := byName[cat.Name]; !dup {
				byName[cat.Name] = cat
			}
		}
	}

	t := &Tree{
		rootIDs:  make(map[string]struct{}),
		subIDs:   make(map[string]struct{}),
		subSlugs: make(map[string]struct{}),
	}

	children := make(map[string][]domain.FlatCategory)
	rootOrder := make([]domain.FlatCategory, 0, len(categories))
	seenRoot := make(map[string]struct{})

	addRoot := func(cat domain.FlatCategory) {
		if _, ok := seenRoot[cat.ID]; ok {
			return
		}
		seenRoot[cat.ID] = struct{}{}
		rootOrder = append(rootOrder, cat)
	}

	for i, cat := range categories {
		if _, skip := dropped[i]; skip {
			continue
		}
		if cat.ParentID == "" {
			addRoot(cat)
			continue
		}

		parent, ok := byID[cat.ParentID]
		if !ok {
			parent, ok = byName[cat.ParentID]
		}
		if !ok {
			log.Warnf("⚠ Parent %q of category %q not found; promoting to root", cat.ParentID, cat.ID)
			cat.ParentID = ""
			addRoot(cat)
			continue
		}
		if parent.ID == cat.ID {
			log.Warnf("⚠ Category %q declares itself as parent; promoting to root", cat.ID)
			cat.ParentID = ""
			addRoot(cat)
			continue
		}
		cat.ParentID = parent.ID
		children[parent.ID] = append(children[parent.ID], cat)
	}

	for _, root := range rootOrder {
		t.Roots = append(t.Roots, Root{
			FlatCategory: root,
			Children:     children[root.ID],
		})
		t.rootIDs[root.ID] = struct{}{}
		for _, child := range children[root.ID] {
			t.subIDs[child.ID] = struct{}{}
			if child.Slug != "" {
				t.subSlugs[child.Slug] = struct{}{}
			}
		}
	}

	return t
}

// Root returns the top-level category with the given id.
func (t *Tree) Root(id string) (Root, bool) {
	for _, root := range t.Roots {
		if root.ID == id {
			return root, true
		}
	}
	return Root{}, false
}

// IsRootID reports whether id names a top-level category.
func (t *Tree) IsRootID(id string) bool {
	_, ok := t.rootIDs[id]
	return ok
}

// IsSubcategory reports whether the value matches a subcategory id or slug.
func (t *Tree) IsSubcategory(value string) bool {
	if _, ok := t.subIDs[value]; ok {
		return true
	}
	_, ok := t.subSlugs[value]
	return ok
}

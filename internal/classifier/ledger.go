package classifier

import (
	"probuild/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Resolution is the ledger's verdict on a proposed placement.
type Resolution int

const (
	// ResolutionAccepted records a first placement for the product.
	ResolutionAccepted Resolution = iota
	// ResolutionSuperseded migrated the product from a lower-priority
	// category to the proposed higher-priority one.
	ResolutionSuperseded
	// ResolutionIgnored kept the existing equal-or-higher-priority placement.
	ResolutionIgnored
)

// PlacementLedger enforces the single-placement invariant: every product id
// ends up in at most one category or subcategory. It is an explicit value
// threaded through classification, not ambient state.
type PlacementLedger struct {
	placements map[string]domain.Placement
}

func NewPlacementLedger() *PlacementLedger {
	return &PlacementLedger{placements: make(map[string]domain.Placement)}
}

// Propose offers a placement for a product. An unplaced product is accepted;
// a product already placed under a strictly lower-priority category (higher
// priority index) is migrated; otherwise the proposal is ignored. Migration
// is the only mutation-after-placement the pipeline allows.
func (l *PlacementLedger) Propose(p domain.Placement) Resolution {
	existing, ok := l.placements[p.ProductID]
	if !ok {
		l.placements[p.ProductID] = p
		return ResolutionAccepted
	}
	if p.Priority < existing.Priority {
		log.Infof("🔄 Migrating product %s from %q to higher-priority %q",
			p.ProductID, existing.Category, p.Category)
		l.placements[p.ProductID] = p
		return ResolutionSuperseded
	}
	return ResolutionIgnored
}

// Lookup returns the recorded placement for a product id.
func (l *PlacementLedger) Lookup(productID string) (domain.Placement, bool) {
	p, ok := l.placements[productID]
	return p, ok
}

// Len reports how many products hold a placement.
func (l *PlacementLedger) Len() int {
	return len(l.placements)
}

// DedupeRefsBySlug drops refs whose slug (or, failing that, id) repeats
// within a single product list. Distinct source records that normalize to the
// same slug are genuine near-duplicates: the first occurrence wins and every
// drop is logged with the losing id.
func DedupeRefsBySlug(refs []domain.ProductRef, scope string) []domain.ProductRef {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		key := ref.Slug
		if key == "" {
			key = ref.ID
		}
		if _, dup := seen[key]; dup {
			log.Warnf("⚠ Duplicate slug %q in %s; dropping product %s", key, scope, ref.ID)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ref)
	}
	return out
}

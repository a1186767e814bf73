package classifier

import (
	"strings"

	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/tree"

	log "github.com/sirupsen/logrus"
)

// Report is what a classification run surfaces beyond the ledger itself:
// product ids that matched no rule at all, and product ids that positively
// matched more than one hard override (flagged for manual review rather than
// resolved by further guessing).
type Report struct {
	Placed       int
	Unclassified []string
	Ambiguous    []string
}

// Classifier assigns each product to a single (category, subcategory|nil)
// destination by walking the declared rule order. The rule list is the
// merged DefaultRules plus a raw-hint fallback rule for every tree root the
// defaults don't cover, so unknown source categories still receive their
// hinted products at the lowest priority.
type Classifier struct {
	rules []ClassificationRule
	tree  *tree.Tree
}

func New(t *tree.Tree) *Classifier {
	rules := make([]ClassificationRule, 0, len(DefaultRules))
	declared := make(map[string]struct{}, len(DefaultRules))
	for _, rule := range DefaultRules {
		declared[rule.Category] = struct{}{}
		if _, ok := t.Root(rule.Category); !ok {
			log.Warnf("⚠ Category %q has a classification rule but is missing from the source tree", rule.Category)
			continue
		}
		rules = append(rules, rule)
	}
	for _, root := range t.Roots {
		if _, ok := declared[root.ID]; ok {
			continue
		}
		rules = append(rules, ClassificationRule{Category: root.ID, UseHint: true})
	}
	return &Classifier{rules: rules, tree: t}
}

// Run classifies every product, proposing placements to the ledger, and
// returns the run report. The ledger is threaded through explicitly so the
// deduplication rules can be exercised in isolation.
func (c *Classifier) Run(products []domain.Product, ledger *PlacementLedger) *Report {
	report := &Report{}

	for _, product := range products {
		if c.isCatalogIdentity(product) {
			continue
		}

		name := strings.ToLower(product.Name)
		slug := strings.ToLower(product.Slug)
		hints := product.Categories

		var placement *domain.Placement
		overrideMatches := 0
		for priority, rule := range c.rules {
			matched, viaKeyword := ruleMatches(rule, name, slug, hints)
			if !matched {
				continue
			}
			if viaKeyword {
				overrideMatches++
			}
			if placement == nil {
				sub := c.matchSubcategory(rule, name, slug, hints)
				placement = &domain.Placement{
					ProductID:   product.ID,
					Category:    rule.Category,
					Subcategory: sub,
					Priority:    priority,
				}
			}
		}

		if placement == nil {
			report.Unclassified = append(report.Unclassified, product.ID)
			log.Warnf("⚠ Product %q (%s) matched no category; left unclassified", product.Name, product.ID)
			continue
		}
		if overrideMatches > 1 {
			report.Ambiguous = append(report.Ambiguous, product.ID)
			log.Warnf("⚠ Product %q (%s) matched %d override rules; placed under %q, flagged for review",
				product.Name, product.ID, overrideMatches, placement.Category)
		}

		if ledger.Propose(*placement) != ResolutionIgnored {
			report.Placed++
		}
	}

	return report
}

// isCatalogIdentity reports whether the record is a category or subcategory
// masquerading as a product in the source. Such records are never classified.
// For root categories only id equality (or the product slug naming the
// category id) counts: the source genuinely contains products whose slug
// equals their category's slug.
func (c *Classifier) isCatalogIdentity(product domain.Product) bool {
	if c.tree.IsRootID(product.ID) || c.tree.IsRootID(product.Slug) {
		return true
	}
	return c.tree.IsSubcategory(product.ID) || c.tree.IsSubcategory(product.Slug)
}

// ruleMatches evaluates one rule against a product. The second return value
// distinguishes a positive keyword match (a hard override claim) from a
// raw-hint fallback match; only keyword matches count toward ambiguity.
func ruleMatches(rule ClassificationRule, name, slug string, hints []string) (matched, viaKeyword bool) {
	haystack := name + " " + slug

	for _, token := range rule.ExcludeTokens {
		if strings.Contains(haystack, token) {
			return false, false
		}
	}
	for _, set := range rule.ExcludeSets {
		if containsAll(haystack, set) {
			return false, false
		}
	}

	for _, exact := range rule.ExactSlugs {
		if slug == exact {
			return true, true
		}
	}
	for _, token := range rule.AnyTokens {
		if strings.Contains(haystack, token) {
			return true, true
		}
	}
	for _, set := range rule.AllTokenSets {
		if containsAll(haystack, set) {
			return true, true
		}
	}

	if rule.UseHint {
		for _, hint := range hints {
			if strings.TrimSpace(hint) == rule.Category {
				return true, false
			}
		}
		for _, subID := range rule.HintSubIDs {
			if slug == subID || strings.Contains(slug, subID) {
				return true, false
			}
			for _, hint := range hints {
				if strings.TrimSpace(hint) == subID {
					return true, false
				}
			}
		}
	}

	return false, false
}

// matchSubcategory picks the destination subcategory within a matched
// category: first subcategory rule, in declared order, whose predicate
// matches. Exact slug keywords are checked before name keywords, and the raw
// hint list is the last resort. Returns "" for a direct category placement.
func (c *Classifier) matchSubcategory(rule ClassificationRule, name, slug string, hints []string) string {
	root, ok := c.tree.Root(rule.Category)
	if !ok {
		return ""
	}

	haystack := name + " " + slug
	for _, subRule := range rule.Subcategories {
		if !rootHasChild(root, subRule.Subcategory) {
			continue
		}
		if tokensPresent(haystack, subRule.ExcludeTokens) {
			continue
		}
		for _, keyword := range subRule.SlugKeywords {
			if slug == keyword {
				return subRule.Subcategory
			}
		}
		for _, keyword := range subRule.NameKeywords {
			if strings.Contains(name, keyword) {
				return subRule.Subcategory
			}
		}
	}

	for _, child := range root.Children {
		for _, hint := range hints {
			if strings.TrimSpace(hint) == child.ID {
				return child.ID
			}
		}
	}

	return ""
}

func rootHasChild(root tree.Root, id string) bool {
	for _, child := range root.Children {
		if child.ID == id {
			return true
		}
	}
	return false
}

func containsAll(haystack string, tokens TokenSet) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return len(tokens) > 0
}

func tokensPresent(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

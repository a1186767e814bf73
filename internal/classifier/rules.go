package classifier

// Category ids of the canonical 8-category hierarchy.
const (
	CategoryCarrierSystems = "carrier-systems"
	CategoryWoodenSystems  = "wooden-ceiling-and-wall-systems"
	CategoryFabricAcoustic = "fabric-covered-acoustic-panels"
	CategoryVinylGypsum    = "vinyl-coated-gypsum-panel"
	CategoryGypsumProfiles = "gypsum-panel-profiles"
	CategoryMetalCeiling   = "metal-ceiling-systems"
	CategoryMineralWool    = "mineral-wool-panels"
	CategoryWoodWool       = "wood-wool-panels"
)

// TokenSet matches when every token in the set appears somewhere in the
// product's name or slug.
type TokenSet []string

// SubcategoryRule places a product inside one subcategory of an already
// matched category. Slug keywords require exact slug equality and are
// checked before name keywords (substring match over the name only);
// exclusion tokens veto both checks.
type SubcategoryRule struct {
	Subcategory   string
	SlugKeywords  []string
	NameKeywords  []string
	ExcludeTokens []string
}

// ClassificationRule decides membership of one category. Rules are data, not
// branching code: they are evaluated in the order of DefaultRules and the
// first category whose rule matches claims the product.
type ClassificationRule struct {
	Category string

	// Positive predicates: any single token, any fully-present token set,
	// or exact slug equality.
	AnyTokens    []string
	AllTokenSets []TokenSet
	ExactSlugs   []string

	// Exclusions veto the whole rule even when a positive predicate matches.
	ExcludeTokens []string
	ExcludeSets   []TokenSet

	// UseHint accepts membership when the product's raw category hint list
	// contains this category's id. HintSubIDs extend that to the category's
	// subcategory ids, matched against both the hint list and the slug.
	UseHint    bool
	HintSubIDs []string

	Subcategories []SubcategoryRule
}

var vinylExcludeSets = []TokenSet{
	{"vinyl", "gypsum"},
	{"vinil", "gips"},
	{"vinyl", "acoustic"},
	{"vinil", "acustic"},
}

// DefaultRules is the authoritative priority order: earlier rules win
// conflicts, and the deduplicator migrates products claimed by an earlier
// rule out of any later category. Categories present in the source but not
// listed here fall back to raw-hint matching at the lowest priority.
var DefaultRules = []ClassificationRule{
	{
		Category:  CategoryCarrierSystems,
		AnyTokens: []string{"carrier", "sustinere", "support"},
		AllTokenSets: []TokenSet{
			{"t24", "sistem"},
			{"t24", "sustinere"},
			{"t15", "sistem"},
			{"t15", "sustinere"},
		},
	},
	{
		Category:      CategoryWoodenSystems,
		AnyTokens:     []string{"lemn", "wood"},
		ExcludeTokens: []string{"wool", "vata"},
	},
	{
		Category: CategoryFabricAcoustic,
		AllTokenSets: []TokenSet{
			{"acustic", "vata"},
			{"acustic", "wool"},
			{"acoustic", "wool"},
			{"acoustic", "glass-wool"},
			{"glass-wool", "wall-panels"},
			{"glass-wool", "ceiling-panels"},
			{"glass-wool", "panou"},
			{"glass-wool", "panel"},
		},
		ExcludeTokens: []string{"lemn", "wood", "vinil", "vinyl"},
	},
	{
		Category:   CategoryVinylGypsum,
		ExactSlugs: []string{"vinyl-coated-gypsum-panel", "vinyl-acoustic-panel"},
		AllTokenSets: []TokenSet{
			{"vinyl", "gypsum"},
			{"vinil", "gips"},
			{"vinyl", "acoustic"},
			{"vinil", "acustic"},
		},
		ExcludeTokens: []string{"lemn", "wood"},
	},
	{
		Category:   CategoryGypsumProfiles,
		ExactSlugs: []string{"gypsum-board-profiles", "gypsum-panel-profiles"},
		AllTokenSets: []TokenSet{
			{"profile", "gips"},
			{"profile", "gypsum"},
			{"profil", "gips"},
			{"profil", "gypsum"},
			{"profile", "heradesign"},
		},
		ExcludeSets: vinylExcludeSets,
	},
	{
		Category: CategoryMetalCeiling,
		UseHint:  true,
		HintSubIDs: []string{
			"baffle-linear-ceiling",
			"open-cell-ceiling",
			"expanded-mesh-ceiling",
			"cassette-type-ceiling",
			"linear-plank-ceiling",
		},
		ExcludeSets: append([]TokenSet{
			{"profile", "gips"},
			{"profile", "gypsum"},
		}, vinylExcludeSets...),
		Subcategories: []SubcategoryRule{
			{
				Subcategory: "baffle-linear-ceiling",
				SlugKeywords: []string{
					"baffle-ceiling", "extruded-baffle-ceiling", "vectoral-baffle-ceiling",
					"wall-baffle", "multipanel-ceiling", "f-linear-ceiling",
				},
				ExcludeTokens: []string{
					"heradesign", "hygiene", "suspended", "suspendat", "open-cell",
					"mesh", "glass-wool", "vinyl", "acoustic", "vata", "gips", "gypsum",
				},
			},
			{
				Subcategory: "open-cell-ceiling",
				SlugKeywords: []string{
					"open-cell", "self-carrying-open-cell", "t15-open-cell",
					"pyramid-open-cell", "lamina-open-cell",
				},
				NameKeywords: []string{"open cell", "autoportant", "piramida", "lamina", "t15"},
			},
			{
				Subcategory:  "expanded-mesh-ceiling",
				SlugKeywords: []string{"mesh-ceiling", "lay-in-mesh", "lay-on-mesh", "hook-on-mesh"},
				NameKeywords: []string{"plasa", "mesh"},
			},
			{
				Subcategory: "cassette-type-ceiling",
				SlugKeywords: []string{
					"suspended-ceiling", "clip-in-suspended-ceiling",
					"lay-on-suspended-ceiling", "lay-in-suspended-ceiling",
				},
				NameKeywords:  []string{"suspendat", "caseta", "cassette"},
				ExcludeTokens: []string{"hook-on-corridor", "hook-on-suspended"},
			},
			{
				Subcategory: "linear-plank-ceiling",
				SlugKeywords: []string{
					"linear-plank", "plank-ceiling", "hook-on-suspended-ceiling",
					"hook-on-corridor-ceiling",
				},
				NameKeywords: []string{"lama", "plank", "hook-on", "coridor"},
			},
		},
	},
	{
		Category:   CategoryMineralWool,
		UseHint:    true,
		HintSubIDs: []string{"knauf-amf", "ecophon", "eurocoustic"},
		Subcategories: []SubcategoryRule{
			{
				Subcategory:  "knauf-amf",
				NameKeywords: []string{"amf", "ecomin", "thermatex", "adagio", "hygena", "topiq"},
			},
			{
				Subcategory:  "ecophon",
				NameKeywords: []string{"opta", "focus", "hygiene", "advantage", "sombra"},
			},
			{
				Subcategory:  "eurocoustic",
				NameKeywords: []string{"minerval", "tonga"},
			},
		},
	},
	{
		Category:   CategoryWoodWool,
		UseHint:    true,
		HintSubIDs: []string{"knauf-heradesign", "ecophon-saga"},
		Subcategories: []SubcategoryRule{
			{
				Subcategory:  "knauf-heradesign",
				NameKeywords: []string{"heradesign"},
			},
			{
				Subcategory:  "ecophon-saga",
				NameKeywords: []string{"saga"},
			},
		},
	},
}

// PriorityOrder lists the declared categories in rule order. The assembler
// uses it to emit the canonical categories in a stable, contract-fixed order.
func PriorityOrder() []string {
	order := make([]string, 0, len(DefaultRules))
	for _, rule := range DefaultRules {
		order = append(order, rule.Category)
	}
	return order
}

package domain

// Dataset is the canonical consumer-facing document read by the site
// generator at build time and served by the catalog API.
type Dataset struct {
	Categories []Category `json:"categories"`
}

// Snapshot is the intermediate artifact written between classification and
// page materialization, so a failed page run never forces reclassification.
type Snapshot struct {
	Categories []FlatCategory `json:"categories"`
	Products   []Product      `json:"products"`
	Structure  Dataset        `json:"structure"`
	Metadata   SnapshotMeta   `json:"metadata"`
}

type SnapshotMeta struct {
	TotalCategories int `json:"total_categories"`
	TotalProducts   int `json:"total_products"`
}

type NavigationEntry struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Navigation lists top-level categories only; subcategories are excluded.
type Navigation struct {
	Products []NavigationEntry `json:"products"`
}

// Placement is the single (category, optional subcategory) destination
// assigned to a product. Priority is the index of the matched rule in the
// declared rule order; lower values are stronger claims.
type Placement struct {
	ProductID   string
	Category    string
	Subcategory string
	Priority    int
}

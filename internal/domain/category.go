package domain

// ProductRef is a lightweight pointer into the full product list. The dataset
// owns the placement: which category or subcategory holds the ref.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Subcategory is a strict child of exactly one Category. It cannot itself
// have children.
type Subcategory struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Slug     string       `json:"slug"`
	ParentID string       `json:"parent_id"`
	Products []ProductRef `json:"products"`
}

type Category struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Slug            string        `json:"slug"`
	Description     string        `json:"description"`
	Image           string        `json:"image"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	Subcategories   []Subcategory `json:"subcategories"`
	Products        []ProductRef  `json:"products"`
}

// FlatCategory is a source category record after loading, before the
// two-level hierarchy is assembled. ParentID may hold the parent's id or,
// in dirty source data, the parent's display name.
type FlatCategory struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	ParentID        string `json:"parent_id,omitempty"`
	Description     string `json:"description,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

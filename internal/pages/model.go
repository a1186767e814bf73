package pages

// Card is one tile on a category or subcategory listing grid.
type Card struct {
	Name        string
	Description string
	Image       string
	Href        string
}

// NavItem is a sidebar entry pointing at a sibling category, subcategory or
// product.
type NavItem struct {
	ID   string
	Name string
	Slug string
}

// SpecRow is one label/value line of the product specifications grid.
type SpecRow struct {
	Label string
	Value string
}

// CategoryPage is the view rendered into <pages>/categories/<slug>.astro.
type CategoryPage struct {
	ID              string
	Name            string
	Slug            string
	Image           string
	MetaTitle       string
	MetaDescription string
	Cards           []Card
	Siblings        []NavItem
}

// SubcategoryPage is the view rendered into
// <pages>/products/<category>/<subcategory>/index.astro.
type SubcategoryPage struct {
	ID           string
	Name         string
	Slug         string
	CategoryName string
	CategorySlug string
	CategoryHref string
	Image        string
	Cards        []Card
	Siblings     []NavItem
}

// ProductPage is the view rendered into
// <pages>/products/<category>[/<subcategory>]/<product>.astro.
type ProductPage struct {
	Name            string
	Slug            string
	CategoryName    string
	CategorySlug    string
	CategoryHref    string
	SubcategoryName string
	SubcategorySlug string
	SubcategoryHref string
	MetaTitle       string
	MetaDescription string
	BackgroundImage string
	Gallery         []string
	Specs           []SpecRow
	Paragraphs      []string
	DrawingPDF      string
	DataSheetPDF    string
	Siblings        []NavItem
}

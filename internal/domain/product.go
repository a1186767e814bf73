package domain

// SpecEntry is a single label/value row of a product's technical
// specifications block.
type SpecEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product is the full record held by the assembler's product list. The
// Categories field is the raw classification hint harvested from the source;
// it is advisory input to the classifier, not authoritative.
type Product struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description"`
	DescriptionHTML string      `json:"description_html"`
	Images          []string    `json:"images"`
	MainImage       string      `json:"main_image"`
	PDFs            []string    `json:"pdfs"`
	HasDrawing      bool        `json:"has_drawing"`
	HasDataSheet    bool        `json:"has_data_sheet"`
	Specs           []SpecEntry `json:"specs,omitempty"`
	Categories      []string    `json:"categories"`
	MetaTitle       string      `json:"meta_title"`
	MetaDescription string      `json:"meta_description"`
}

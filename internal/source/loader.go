package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/slug"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// nsCatalog namespaces minted product ids. Source records carry no stable
// external id, so ids are derived from name+slug to stay identical across
// pipeline reruns.
var nsCatalog = uuid.MustParse("7b0dca5a-31cf-4fca-9cbd-6bbc0f14a0d3")

var excludedPDFToken = "katalog.pdf"

var drawingTokens = []string{"teknik-cizim", "drawing"}
var dataSheetTokens = []string{"teknik-foy", "data-sheet", "tds"}

type rawCategory struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	ParentID        string `json:"parent_id"`
	Description     string `json:"description"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

type rawProduct struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Slug            string             `json:"slug"`
	Description     string             `json:"description"`
	Images          []string           `json:"images"`
	MainImage       string             `json:"main_image"`
	PDFs            []string           `json:"pdfs"`
	Specs           []domain.SpecEntry `json:"specs"`
	Categories      []string           `json:"categories"`
	MetaTitle       string             `json:"meta_title"`
	MetaDescription string             `json:"meta_description"`
}

type rawSnapshot struct {
	Categories []rawCategory `json:"categories"`
	Products   []rawProduct  `json:"products"`
}

// Catalog is the loader's output: source records normalized into domain
// records, ready for tree building and classification.
type Catalog struct {
	Categories []domain.FlatCategory
	Products   []domain.Product
}

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the raw catalog snapshot. A missing snapshot is fatal for the
// run: the error names the file and the command expected to produce it.
// batchSize/offset window the product list; zero batchSize means no limit.
func (l *Loader) Load(path string, batchSize, offset int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source snapshot %s does not exist: export the scraped catalog before running import-catalog", path)
		}
		return nil, fmt.Errorf("failed to read source snapshot %s: %w", path, err)
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode source snapshot %s: %w", path, err)
	}

	catalog := &Catalog{
		Categories: make([]domain.FlatCategory, 0, len(raw.Categories)),
	}

	for _, cat := range raw.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" && strings.TrimSpace(cat.ID) == "" {
			log.Warn("⚠ Skipping category record with no id and no name")
			continue
		}
		catSlug := strings.TrimSpace(cat.Slug)
		if catSlug == "" {
			catSlug = slug.Slugify(name)
		}
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			id = catSlug
		}
		catalog.Categories = append(catalog.Categories, domain.FlatCategory{
			ID:              id,
			Name:            name,
			Slug:            catSlug,
			ParentID:        strings.TrimSpace(cat.ParentID),
			Description:     strings.TrimSpace(cat.Description),
			MetaTitle:       strings.TrimSpace(cat.MetaTitle),
			MetaDescription: strings.TrimSpace(cat.MetaDescription),
		})
	}

	products := raw.Products
	if offset > 0 {
		if offset >= len(products) {
			products = nil
		} else {
			products = products[offset:]
		}
	}
	if batchSize > 0 && batchSize < len(products) {
		products = products[:batchSize]
	}

	catalog.Products = make([]domain.Product, 0, len(products))
	for _, prod := range products {
		p, ok := l.loadProduct(prod)
		if !ok {
			continue
		}
		catalog.Products = append(catalog.Products, p)
	}

	log.Infof("✅ Loaded %d categories and %d products from %s",
		len(catalog.Categories), len(catalog.Products), path)

	return catalog, nil
}

func (l *Loader) loadProduct(raw rawProduct) (domain.Product, bool) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		log.Warnf("⚠ Skipping product record with no name (id=%q)", raw.ID)
		return domain.Product{}, false
	}

	prodSlug := strings.TrimSpace(raw.Slug)
	if prodSlug == "" {
		prodSlug = slug.Slugify(name)
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = MintID(name, prodSlug)
	}

	plain, html := normalizeDescription(raw.Description, name)

	pdfs := make([]string, 0, len(raw.PDFs))
	for _, pdf := range raw.PDFs {
		pdf = strings.TrimSpace(pdf)
		if pdf == "" || strings.Contains(pdf, excludedPDFToken) {
			continue
		}
		pdfs = append(pdfs, pdf)
	}

	categories := make([]string, 0, len(raw.Categories))
	for _, cat := range raw.Categories {
		cat = strings.TrimSpace(cat)
		if cat != "" {
			categories = append(categories, cat)
		}
	}

	return domain.Product{
		ID:              id,
		Name:            name,
		Slug:            prodSlug,
		Description:     plain,
		DescriptionHTML: html,
		Images:          raw.Images,
		MainImage:       strings.TrimSpace(raw.MainImage),
		PDFs:            pdfs,
		HasDrawing:      containsAny(pdfs, drawingTokens),
		HasDataSheet:    containsAny(pdfs, dataSheetTokens),
		Specs:           raw.Specs,
		Categories:      categories,
		MetaTitle:       strings.TrimSpace(raw.MetaTitle),
		MetaDescription: strings.TrimSpace(raw.MetaDescription),
	}, true
}

// MintID derives a rerun-stable product id from the name+slug pair.
func MintID(name, productSlug string) string {
	return uuid.NewSHA1(nsCatalog, []byte(name+"\x00"+productSlug)).String()
}

// FindDrawingPDF returns the first PDF that looks like a technical drawing.
func FindDrawingPDF(pdfs []string) string {
	for _, pdf := range pdfs {
		for _, token := range drawingTokens {
			if strings.Contains(pdf, token) {
				return pdf
			}
		}
	}
	return ""
}

// FindDataSheetPDF returns the first PDF that looks like a data sheet,
// falling back to any remaining PDF.
func FindDataSheetPDF(pdfs []string) string {
	for _, pdf := range pdfs {
		for _, token := range dataSheetTokens {
			if strings.Contains(pdf, token) {
				return pdf
			}
		}
	}
	if len(pdfs) > 0 {
		return pdfs[0]
	}
	return ""
}

// normalizeDescription produces the plain-text and HTML variants of a source
// description. A description that is only the product's name repeated (or too
// short to be a real description) is dropped entirely; no default filler text
// is synthesized for products.
func normalizeDescription(description, name string) (plain, html string) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ""
	}

	onlyName := description == name ||
		description == "<p>"+name+"</p>" ||
		len(description) < 50
	if onlyName {
		return "", ""
	}

	if strings.Contains(description, "<") && strings.Contains(description, ">") {
		return htmlToText(description), description
	}

	paragraphs := splitParagraphs(description)
	wrapped := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		wrapped = append(wrapped, "<p>"+p+"</p>")
	}
	return strings.Join(paragraphs, "\n\n"), strings.Join(wrapped, "\n")
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script,style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(values, tokens []string) bool {
	for _, v := range values {
		for _, token := range tokens {
			if strings.Contains(v, token) {
				return true
			}
		}
	}
	return false
}

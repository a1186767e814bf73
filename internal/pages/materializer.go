package pages

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"probuild/catalog/internal/config"
	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/source"
	"probuild/catalog/internal/storage"

	log "github.com/sirupsen/logrus"
)

var (
	imageExtPattern     = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)(\?|$)`)
	paragraphTagPattern = regexp.MustCompile(`<p([^>]*)>`)
)

// Summary counts what a materialization run did to the page tree.
type Summary struct {
	Created int
	Updated int
	Skipped int
	Failed  int
}

// Materializer renders the canonical dataset into the static page tree and
// the navigation index. Regeneration is an idempotent overwrite: identical
// input produces byte-identical pages, and files outside the managed set are
// never touched.
type Materializer struct {
	site  config.SiteConfig
	paths config.PathsConfig
	store storage.CatalogStore
}

func NewMaterializer(site config.SiteConfig, paths config.PathsConfig, store storage.CatalogStore) *Materializer {
	return &Materializer{site: site, paths: paths, store: store}
}

type page struct {
	path    string
	content []byte
}

// Materialize writes one page per category, subcategory and placed product,
// plus the navigation index. All pages are rendered before anything is
// touched on disk, so stale cleanup can spare the paths about to be
// rewritten. Page-write failures are fatal; everything else is recovered per
// page.
func (m *Materializer) Materialize(dataset *domain.Dataset, products []domain.Product) (*Summary, error) {
	summary := &Summary{}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	categoriesDir := filepath.Join(m.paths.PagesDir, routeDir(m.site.CategoryPathPrefix))
	productsDir := filepath.Join(m.paths.PagesDir, routeDir(m.site.ProductPathPrefix))

	siblings := make([]NavItem, 0, len(dataset.Categories))
	for _, cat := range dataset.Categories {
		siblings = append(siblings, NavItem{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}

	var planned []page
	for _, cat := range dataset.Categories {
		view := m.categoryView(cat, byID, siblings)
		content, err := render("category", view)
		if err != nil {
			return summary, err
		}
		planned = append(planned, page{filepath.Join(categoriesDir, cat.Slug+".astro"), content})

		subSiblings := make([]NavItem, 0, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			subSiblings = append(subSiblings, NavItem{ID: sub.ID, Name: sub.Name, Slug: sub.Slug})
		}

		for i, sub := range cat.Subcategories {
			view := m.subcategoryView(cat, sub, i, byID, subSiblings)
			content, err := render("subcategory", view)
			if err != nil {
				return summary, err
			}
			planned = append(planned, page{filepath.Join(productsDir, cat.Slug, sub.Slug, "index.astro"), content})

			for _, ref := range sub.Products {
				p, err := m.productPage(productsDir, cat, &sub, ref, byID, summary)
				if err != nil {
					return summary, err
				}
				if p != nil {
					planned = append(planned, *p)
				}
			}
		}

		for _, ref := range cat.Products {
			p, err := m.productPage(productsDir, cat, nil, ref, byID, summary)
			if err != nil {
				return summary, err
			}
			if p != nil {
				planned = append(planned, *p)
			}
		}
	}

	targets := make(map[string]struct{}, len(planned))
	for _, p := range planned {
		targets[p.path] = struct{}{}
	}
	slugs := managedSlugs(dataset)
	cleanDir(categoriesDir, slugs, targets)
	cleanDir(productsDir, slugs, targets)

	for _, p := range planned {
		if err := m.writePage(p.path, p.content, summary); err != nil {
			return summary, err
		}
	}

	nav := &domain.Navigation{Products: make([]domain.NavigationEntry, 0, len(dataset.Categories))}
	for _, cat := range dataset.Categories {
		nav.Products = append(nav.Products, domain.NavigationEntry{
			Name: cat.Name,
			Href: m.site.CategoryPathPrefix + "/" + cat.Slug,
		})
	}
	if err := m.store.SaveNavigation(m.paths.Navigation, nav); err != nil {
		return summary, fmt.Errorf("failed to write navigation index: %w", err)
	}

	return summary, nil
}

func (m *Materializer) categoryView(cat domain.Category, byID map[string]domain.Product, siblings []NavItem) *CategoryPage {
	view := &CategoryPage{
		ID:              cat.ID,
		Name:            cat.Name,
		Slug:            cat.Slug,
		Image:           cat.Image,
		MetaTitle:       cat.MetaTitle,
		MetaDescription: cat.MetaDescription,
		Siblings:        siblings,
	}

	if len(cat.Subcategories) > 0 {
		for i, sub := range cat.Subcategories {
			view.Cards = append(view.Cards, Card{
				Name:        sub.Name,
				Description: "Details about " + sub.Name,
				Image:       m.subcategoryCardImage(cat, sub, i, byID),
				Href:        m.productHref(cat.Slug, sub.Slug),
			})
		}
		return view
	}

	for _, ref := range cat.Products {
		view.Cards = append(view.Cards, Card{
			Name:        ref.Name,
			Description: "Details about " + ref.Name,
			Image:       m.cardImage(cat, ref, byID),
			Href:        m.productHref(cat.Slug, ref.Slug),
		})
	}
	return view
}

func (m *Materializer) subcategoryView(cat domain.Category, sub domain.Subcategory, index int, byID map[string]domain.Product, siblings []NavItem) *SubcategoryPage {
	view := &SubcategoryPage{
		ID:           sub.ID,
		Name:         sub.Name,
		Slug:         sub.Slug,
		CategoryName: cat.Name,
		CategorySlug: cat.Slug,
		CategoryHref: m.site.CategoryPathPrefix + "/" + cat.Slug,
		Image:        m.subcategoryCardImage(cat, sub, index, byID),
		Siblings:     siblings,
	}
	for _, ref := range sub.Products {
		view.Cards = append(view.Cards, Card{
			Name:        ref.Name,
			Description: "Details about " + ref.Name,
			Image:       m.cardImage(cat, ref, byID),
			Href:        m.productHref(cat.Slug, sub.Slug, ref.Slug),
		})
	}
	return view
}

func (m *Materializer) productPage(productsDir string, cat domain.Category, sub *domain.Subcategory, ref domain.ProductRef, byID map[string]domain.Product, summary *Summary) (*page, error) {
	product, ok := byID[ref.ID]
	if !ok {
		log.Warnf("⚠ Product %s placed in dataset but missing from product list; skipping page", ref.ID)
		summary.Failed++
		return nil, nil
	}

	view := &ProductPage{
		Name:            product.Name,
		Slug:            product.Slug,
		CategoryName:    cat.Name,
		CategorySlug:    cat.Slug,
		CategoryHref:    m.site.CategoryPathPrefix + "/" + cat.Slug,
		MetaTitle:       product.MetaTitle,
		MetaDescription: product.MetaDescription,
		Gallery:         m.buildGallery(product, cat.Slug),
		Specs:           specRows(product.Specs),
		Paragraphs:      descriptionParagraphs(product),
		DrawingPDF:      source.FindDrawingPDF(product.PDFs),
		DataSheetPDF:    source.FindDataSheetPDF(product.PDFs),
	}
	if view.MetaTitle == "" {
		view.MetaTitle = product.Name
	}
	if view.MetaDescription == "" {
		view.MetaDescription = product.Name + " - professional quality product."
	}

	refs := cat.Products
	dir := filepath.Join(productsDir, cat.Slug)
	if sub != nil {
		view.SubcategoryName = sub.Name
		view.SubcategorySlug = sub.Slug
		view.SubcategoryHref = m.productHref(cat.Slug, sub.Slug)
		refs = sub.Products
		dir = filepath.Join(productsDir, cat.Slug, sub.Slug)
	}
	for _, sibling := range refs {
		if sibling.Slug == product.Slug {
			continue
		}
		view.Siblings = append(view.Siblings, NavItem{ID: sibling.ID, Name: sibling.Name, Slug: sibling.Slug})
	}

	if len(view.Gallery) > 0 {
		view.BackgroundImage = view.Gallery[0]
	} else {
		view.BackgroundImage = cat.Image
	}

	content, err := render("product", view)
	if err != nil {
		return nil, err
	}
	return &page{filepath.Join(dir, product.Slug+".astro"), content}, nil
}

// buildGallery resolves the ordered local gallery paths for a product. The
// main image is moved to position 0; each entry's extension comes from its
// source URL, falling back to the first image's extension, then to .jpg.
func (m *Materializer) buildGallery(product domain.Product, categorySlug string) []string {
	images := append([]string(nil), product.Images...)
	if product.MainImage != "" {
		for i, img := range images {
			if img == product.MainImage && i > 0 {
				images = append(images[:i], images[i+1:]...)
				break
			}
		}
		if len(images) == 0 || images[0] != product.MainImage {
			images = append([]string{product.MainImage}, images...)
		}
	}
	if len(images) == 0 {
		return nil
	}

	firstExt := imageExt(images[0], ".jpg")
	gallery := make([]string, 0, len(images))
	for i, img := range images {
		ext := imageExt(img, firstExt)
		gallery = append(gallery, fmt.Sprintf("%s/%s/%s-%d%s", m.site.ProductImagePrefix, categorySlug, product.Slug, i+1, ext))
	}
	return gallery
}

// subcategoryCardImage picks a representative image for a subcategory card:
// the subcategory's first product, else one of the parent's direct products
// rotated by card position so sibling cards differ, else the category image.
func (m *Materializer) subcategoryCardImage(cat domain.Category, sub domain.Subcategory, index int, byID map[string]domain.Product) string {
	if len(sub.Products) > 0 {
		if img := m.detailImage(cat.Slug, sub.Products[0], byID); img != "" {
			return img
		}
	} else if len(cat.Products) > 0 {
		ref := cat.Products[index%len(cat.Products)]
		if img := m.detailImage(cat.Slug, ref, byID); img != "" {
			return img
		}
	}
	return cat.Image
}

func (m *Materializer) cardImage(cat domain.Category, ref domain.ProductRef, byID map[string]domain.Product) string {
	if img := m.detailImage(cat.Slug, ref, byID); img != "" {
		return img
	}
	return cat.Image
}

func (m *Materializer) detailImage(categorySlug string, ref domain.ProductRef, byID map[string]domain.Product) string {
	product, ok := byID[ref.ID]
	if !ok || product.MainImage == "" {
		return ""
	}
	ext := imageExt(product.MainImage, ".jpg")
	return fmt.Sprintf("%s/%s/%s-1%s", m.site.ProductImagePrefix, categorySlug, ref.Slug, ext)
}

func (m *Materializer) productHref(parts ...string) string {
	return m.site.ProductPathPrefix + "/" + strings.Join(parts, "/")
}

// writePage overwrites path with content, counting the outcome. A page whose
// content is already identical is left alone so regeneration never churns
// mtimes on an unchanged tree.
func (m *Materializer) writePage(path string, content []byte, summary *Summary) error {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if exists && bytes.Equal(existing, content) {
		summary.Skipped++
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create page directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write page %s: %w", path, err)
	}
	if exists {
		summary.Updated++
	} else {
		summary.Created++
	}
	return nil
}

// cleanDir removes stale managed pages under dir and reports whether dir is
// empty afterwards. Only .astro files whose base name is one of the generated
// slugs are eligible, a literal index.astro never is, paths about to be
// rewritten are spared, and emptied directories are pruned. Hand-added files
// survive untouched.
func cleanDir(dir string, slugs map[string]struct{}, targets map[string]struct{}) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	remaining := 0
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if cleanDir(full, slugs, targets) {
				if err := os.Remove(full); err == nil {
					continue
				}
			}
			remaining++
			continue
		}

		name := entry.Name()
		base := strings.TrimSuffix(name, ".astro")
		if !strings.HasSuffix(name, ".astro") || name == "index.astro" {
			remaining++
			continue
		}
		if _, keep := targets[full]; keep {
			remaining++
			continue
		}
		if _, managed := slugs[base]; !managed {
			remaining++
			continue
		}
		if err := os.Remove(full); err != nil {
			log.Warnf("⚠ Could not remove stale page %s: %v", full, err)
			remaining++
		}
	}
	return remaining == 0
}

func managedSlugs(dataset *domain.Dataset) map[string]struct{} {
	slugs := make(map[string]struct{})
	for _, cat := range dataset.Categories {
		slugs[cat.Slug] = struct{}{}
		for _, ref := range cat.Products {
			slugs[ref.Slug] = struct{}{}
		}
		for _, sub := range cat.Subcategories {
			slugs[sub.Slug] = struct{}{}
			for _, ref := range sub.Products {
				slugs[ref.Slug] = struct{}{}
			}
		}
	}
	return slugs
}

func specRows(specs []domain.SpecEntry) []SpecRow {
	rows := make([]SpecRow, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, SpecRow{Label: s.Label, Value: s.Value})
	}
	return rows
}

// descriptionParagraphs returns the rendered description paragraphs, or
// nothing when the product has no real description. No filler text is ever
// synthesized.
func descriptionParagraphs(product domain.Product) []string {
	if html := strings.TrimSpace(product.DescriptionHTML); html != "" {
		html = paragraphTagPattern.ReplaceAllString(html, `<p class="mb-4"$1>`)
		parts := strings.Split(html, "\n")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	text := strings.TrimSpace(product.Description)
	if text == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, "<p class=\"mb-4\">"+p+"</p>")
		}
	}
	return out
}

func imageExt(url, fallback string) string {
	if m := imageExtPattern.FindStringSubmatch(url); m != nil {
		return "." + strings.ToLower(m[1])
	}
	return fallback
}

func routeDir(prefix string) string {
	return strings.Trim(prefix, "/")
}

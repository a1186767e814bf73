package pages

import (
	"bytes"
	"fmt"
	"text/template"
)

// The page bodies are Astro components, which use single braces for
// expressions, so the Go templates use [[ ]] delimiters to stay out of the
// way. Strings substituted into JS positions go through the builtin js
// escaper.

const categoryTemplate = `---
import Layout from '@/layouts/Layout.astro';
import Container from '@/components/ui/Container.astro';
import Section from '@/components/ui/Section.astro';
import CategoryHero from '@/components/product/CategoryHero.astro';
import CategorySidebar from '@/components/product/CategorySidebar.astro';
import ProductListCard from '@/components/product/ProductListCard.astro';

const allCategories = [
[[range .Siblings]]  { id: "[[js .ID]]", name: "[[js .Name]]", slug: "[[js .Slug]]" },
[[end]]];
---

<Layout
  title="[[js .MetaTitle]]"
  description="[[js .MetaDescription]]"
>
  <CategoryHero
    title="[[js .Name]]"
    breadcrumbs={[
      { name: 'Home', href: '/' },
      { name: '[[js .Name]]' }
    ]}
    backgroundImage="[[js .Image]]"
  />

  <Section padding="lg" class="py-12">
    <div class="w-full lg:w-[1320px] mx-auto px-5 lg:px-0">
      <div class="flex flex-col lg:flex-row" style="gap: 24px;">
        <CategorySidebar
          currentCategoryId="[[js .ID]]"
          allCategories={allCategories}
        />

        <div class="w-full lg:w-[896px] flex-shrink-0">
[[- if .Cards]]
          <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8 md:gap-10">
[[- range .Cards]]
            <ProductListCard
              name="[[js .Name]]"
              description="[[js .Description]]"
              image="[[js .Image]]"
              href="[[js .Href]]"
              categorySlug="[[js $.Slug]]"
            />
[[- end]]
          </div>
[[- else]]
          <div class="text-center py-12">
            <p class="text-secondary-600">There are no products in this category yet.</p>
          </div>
[[- end]]
        </div>
      </div>
    </div>
  </Section>
</Layout>
`

const subcategoryTemplate = `---
import Layout from '@/layouts/Layout.astro';
import Container from '@/components/ui/Container.astro';
import Section from '@/components/ui/Section.astro';
import CategoryHero from '@/components/product/CategoryHero.astro';
import SubcategorySidebar from '@/components/product/SubcategorySidebar.astro';
import ProductListCard from '@/components/product/ProductListCard.astro';

const subcategories = [
[[range .Siblings]]  { id: "[[js .ID]]", name: "[[js .Name]]", slug: "[[js .Slug]]" },
[[end]]];
---

<Layout
  title="[[js .Name]]"
  description="[[js .Name]] - [[js .CategoryName]]"
>
  <CategoryHero
    title="[[js .Name]]"
    breadcrumbs={[
      { name: 'Home', href: '/' },
      { name: '[[js .CategoryName]]', href: '[[js .CategoryHref]]' },
      { name: '[[js .Name]]' }
    ]}
    backgroundImage="[[js .Image]]"
    categorySlug="[[js .CategorySlug]]"
  />

  <Section padding="lg" class="py-12">
    <div class="w-full lg:w-[1320px] mx-auto px-5 lg:px-0">
      <div class="flex flex-col lg:flex-row" style="gap: 24px;">
        <SubcategorySidebar
          currentSubcategoryId="[[js .ID]]"
          subcategories={subcategories}
          categorySlug="[[js .CategorySlug]]"
        />

        <div class="w-full lg:w-[896px] flex-shrink-0">
[[- if .Cards]]
          <div class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-8 md:gap-10">
[[- range .Cards]]
            <ProductListCard
              name="[[js .Name]]"
              description="[[js .Description]]"
              image="[[js .Image]]"
              href="[[js .Href]]"
              categorySlug="[[js $.CategorySlug]]"
            />
[[- end]]
          </div>
[[- else]]
          <div class="text-center py-12">
            <p class="text-secondary-600">There are no products in this subcategory yet.</p>
          </div>
[[- end]]
        </div>
      </div>
    </div>
  </Section>
</Layout>
`

const productTemplate = `---
import Layout from '@/layouts/Layout.astro';
import Container from '@/components/ui/Container.astro';
import Section from '@/components/ui/Section.astro';
import CategoryHero from '@/components/product/CategoryHero.astro';
import ProductSidebar from '@/components/product/ProductSidebar.astro';
import ProductGallery from '@/components/product/ProductGallery.astro';
import QuoteModal from '@/components/product/QuoteModal.astro';

const productImages = [
[[range .Gallery]]  "[[js .]]",
[[end]]];
const relatedProducts = [
[[range .Siblings]]  { id: "[[js .ID]]", name: "[[js .Name]]", slug: "[[js .Slug]]" },
[[end]]];
---

<Layout
  title="[[js .MetaTitle]]"
  description="[[js .MetaDescription]]"
>
  <CategoryHero
    title="[[js .Name]]"
    breadcrumbs={[
      { name: 'Home', href: '/' },
      { name: '[[js .CategoryName]]', href: '[[js .CategoryHref]]' }[[if .SubcategorySlug]],
      { name: '[[js .SubcategoryName]]', href: '[[js .SubcategoryHref]]' }[[end]]
    ]}
    backgroundImage="[[js .BackgroundImage]]"
    categorySlug="[[js .CategorySlug]]"
  />

  <Section padding="lg" class="py-12">
    <Container>
      <div class="flex flex-col lg:flex-row gap-8 lg:gap-12">
        <ProductSidebar
          currentProductSlug="[[js .Slug]]"
          categorySlug="[[js .CategorySlug]][[if .SubcategorySlug]]/[[js .SubcategorySlug]][[end]]"
          categoryProducts={relatedProducts}
        />

        <div class="flex-1">
          <div class="bg-white border border-gray-200 p-6">
            <div class="mb-8">
              <ProductGallery images={productImages} categorySlug="[[js .CategorySlug]]" />
            </div>

            <div class="mb-6">
              <div class="flex flex-wrap justify-between items-center gap-4">
                <h1 class="text-2xl font-bold" style="font-family: Arial, sans-serif; font-weight: 700; color: rgb(6, 59, 139);">
                  [[.Name]]
                </h1>
                <div class="flex flex-wrap items-center gap-4">
[[- if .DrawingPDF]]
                  <a
                    href="[[js .DrawingPDF]]"
                    target="_blank"
                    rel="noopener noreferrer"
                    class="inline-flex items-center gap-2 text-primary-600 hover:text-primary-700 transition-colors font-semibold text-sm"
                    style="font-family: Arial, sans-serif;"
                  >
                    <svg class="w-4 h-4" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                      <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M12 10v6m0 0l-3-3m3 3l3-3m2 8H7a2 2 0 01-2-2V5a2 2 0 012-2h5.586a1 1 0 01.707.293l5.414 5.414a1 1 0 01.293.707V19a2 2 0 01-2 2z"/>
                    </svg>
                    Technical Drawing
                  </a>
[[- end]]
[[- if .DataSheetPDF]]
                  <a
                    href="[[js .DataSheetPDF]]"
                    target="_blank"
                    rel="noopener noreferrer"
                    class="inline-flex items-center gap-2 text-primary-600 hover:text-primary-700 transition-colors font-semibold text-sm"
                    style="font-family: Arial, sans-serif;"
                  >
                    <svg class="w-4 h-4" fill="none" stroke="currentColor" viewBox="0 0 24 24">
                      <path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M12 10v6m0 0l-3-3m3 3l3-3m2 8H7a2 2 0 01-2-2V5a2 2 0 012-2h5.586a1 1 0 01.707.293l5.414 5.414a1 1 0 01.293.707V19a2 2 0 01-2 2z"/>
                    </svg>
                    Data Sheet
                  </a>
[[- end]]
                </div>
              </div>
            </div>

            <div class="mb-6 flex justify-end">
              <button
                id="open-quote-modal"
                class="bg-primary-600 text-white px-6 py-3 font-semibold transition-all duration-200 hover:bg-primary-700 relative overflow-hidden"
                style="font-family: Arial, sans-serif;"
              >
                <span class="button-overlay-quote-btn absolute inset-0 bg-accent-600"></span>
                <span class="relative z-10">REQUEST A QUOTE</span>
              </button>
            </div>
[[- if .Specs]]

            <div class="mb-8">
              <div class="grid grid-cols-1 md:grid-cols-2 gap-4">
[[- range .Specs]]
                <div class="border-b border-secondary-200 pb-3">
                  <dt class="text-sm font-medium text-secondary-500" style="font-family: Arial, sans-serif;">[[.Label]]</dt>
                  <dd class="mt-1 text-sm text-secondary-900" style="font-family: Arial, sans-serif;">[[.Value]]</dd>
                </div>
[[- end]]
              </div>
            </div>
[[- end]]
[[- if .Paragraphs]]

            <div class="prose prose-lg max-w-none">
              <div class="text-secondary-700" style="font-family: Arial, sans-serif; font-size: 14px; line-height: 24px;">
[[- range .Paragraphs]]
                [[.]]
[[- end]]
              </div>
            </div>
[[- end]]
          </div>
        </div>
      </div>
    </Container>
  </Section>

  <QuoteModal />
</Layout>

<style>
  .button-overlay-quote-btn {
    clip-path: inset(100% 0 0 0);
    transition: clip-path 0.4s ease-out;
  }

  button:hover .button-overlay-quote-btn {
    clip-path: inset(0% 0 0 0%);
  }
</style>
`

var templates = func() *template.Template {
	t := template.New("pages").Delims("[[", "]]")
	template.Must(t.New("category").Parse(categoryTemplate))
	template.Must(t.New("subcategory").Parse(subcategoryTemplate))
	template.Must(t.New("product").Parse(productTemplate))
	return t
}()

func render(name string, view any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		return nil, fmt.Errorf("failed to render %s page: %w", name, err)
	}
	return buf.Bytes(), nil
}

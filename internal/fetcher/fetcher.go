package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"probuild/catalog/internal/config"
	"probuild/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)(\?|$)`)

// Asset is one download job: a remote URL and the local path it must land at.
// After a fetch the destination either holds the complete asset or does not
// exist; partial files are never left behind.
type Asset struct {
	URL             string
	DestinationPath string
}

// Summary counts the outcome of a fetch run.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Fetcher downloads catalog assets with paced, bounded-retry requests. A
// single failed asset never aborts the run; the page that references it will
// simply 404 until the next run succeeds.
type Fetcher struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	site       config.SiteConfig
	imagesDir  string
	maxRetries int
	retryDelay time.Duration
}

func New(cfg config.FetcherConfig, site config.SiteConfig, imagesDir string) *Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")

	return &Fetcher{
		rl:         ratelimit.New(max(cfg.MaxRequestsPerSecond, 1)),
		httpClient: client,
		site:       site,
		imagesDir:  imagesDir,
		maxRetries: cfg.MaxRetries,
		retryDelay: time.Duration(cfg.RetryDelay) * time.Second,
	}
}

// Plan builds the asset list for the whole dataset: every gallery image of
// every placed product, at the local path the generated pages reference.
func (f *Fetcher) Plan(dataset *domain.Dataset, products []domain.Product) []Asset {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var assets []Asset
	for _, cat := range dataset.Categories {
		for _, ref := range cat.Products {
			assets = append(assets, f.productAssets(cat.Slug, ref, byID)...)
		}
		for _, sub := range cat.Subcategories {
			for _, ref := range sub.Products {
				assets = append(assets, f.productAssets(cat.Slug, ref, byID)...)
			}
		}
	}
	return assets
}

func (f *Fetcher) productAssets(categorySlug string, ref domain.ProductRef, byID map[string]domain.Product) []Asset {
	product, ok := byID[ref.ID]
	if !ok {
		return nil
	}

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

	firstExt := extensionOf(images[0], ".jpg")
	assets := make([]Asset, 0, len(images))
	for i, img := range images {
		ext := extensionOf(img, firstExt)
		local := filepath.Join(f.imagesDir, f.site.ProductImagePrefix,
			categorySlug, fmt.Sprintf("%s-%d%s", product.Slug, i+1, ext))
		assets = append(assets, Asset{URL: img, DestinationPath: local})
	}
	return assets
}

// FetchAll downloads every asset, skipping destinations that already exist.
func (f *Fetcher) FetchAll(ctx context.Context, assets []Asset) *Summary {
	summary := &Summary{}
	for _, asset := range assets {
		if _, err := os.Stat(asset.DestinationPath); err == nil {
			summary.Skipped++
			continue
		}

		if err := f.fetch(ctx, asset); err != nil {
			log.Warnf("⚠ Failed to fetch %s: %v", asset.URL, err)
			summary.Failed++
			continue
		}
		summary.Downloaded++
	}

	log.Infof("✅ Asset fetch complete: %d downloaded, %d skipped, %d failed",
		summary.Downloaded, summary.Skipped, summary.Failed)
	return summary
}

func (f *Fetcher) fetch(ctx context.Context, asset Asset) error {
	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		f.rl.Take()

		if err := f.download(ctx, asset); err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return fmt.Errorf("fetch cancelled: %w", ctx.Err())
			}
			log.Debugf("🔄 Attempt %d/%d for %s failed: %v", attempt, f.maxRetries, asset.URL, err)
			if attempt < f.maxRetries {
				time.Sleep(f.retryDelay)
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("exhausted %d attempts: %w", f.maxRetries, lastErr)
}

// download writes to a temp file in the destination directory and renames it
// into place only when the body arrived whole.
func (f *Fetcher) download(ctx context.Context, asset Asset) error {
	resp, err := f.httpClient.R().
		SetContext(ctx).
		Get(asset.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	dir := filepath.Dir(asset.DestinationPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(resp.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write asset body: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), asset.DestinationPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move asset into place: %w", err)
	}
	return nil
}

func extensionOf(url, fallback string) string {
	if m := imageExtPattern.FindStringSubmatch(url); m != nil {
		return "." + strings.ToLower(m[1])
	}
	return fallback
}

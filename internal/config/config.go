package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the catalog pipeline
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Site    SiteConfig    `mapstructure:"site"`
	Fetcher FetcherConfig `mapstructure:"fetcher"`
	Server  ServerConfig  `mapstructure:"server"`
}

// PathsConfig holds every file and directory the pipeline reads or writes
type PathsConfig struct {
	SourceSnapshot    string `mapstructure:"source_snapshot"`
	ProcessedSnapshot string `mapstructure:"processed_snapshot"`
	Dataset           string `mapstructure:"dataset"`
	DatasetBackup     string `mapstructure:"dataset_backup"`
	Navigation        string `mapstructure:"navigation"`
	PagesDir          string `mapstructure:"pages_dir"`
	ImagesDir         string `mapstructure:"images_dir"`
}

// SiteConfig holds site-wide strings substituted into pages and meta tags
type SiteConfig struct {
	Name                string `mapstructure:"name"`
	CategoryPathPrefix  string `mapstructure:"category_path_prefix"`
	ProductPathPrefix   string `mapstructure:"product_path_prefix"`
	CategoryImagePrefix string `mapstructure:"category_image_prefix"`
	ProductImagePrefix  string `mapstructure:"product_image_prefix"`
}

// FetcherConfig holds asset download behavior
type FetcherConfig struct {
	Timeout              int `mapstructure:"timeout"`
	MaxRetries           int `mapstructure:"max_retries"`
	RetryDelay           int `mapstructure:"retry_delay"`
	MaxRequestsPerSecond int `mapstructure:"max_requests_per_second"`
}

// ServerConfig holds the catalog API server address
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Defaults are complete; a missing config.yaml is fine for local runs.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("paths.source_snapshot", "catalog_source.json")
	viper.SetDefault("paths.processed_snapshot", "catalog_processed.json")
	viper.SetDefault("paths.dataset", "src/data/products.json")
	viper.SetDefault("paths.dataset_backup", "src/data/products.json.backup")
	viper.SetDefault("paths.navigation", "src/data/navigation.json")
	viper.SetDefault("paths.pages_dir", "src/pages")
	viper.SetDefault("paths.images_dir", "public")

	viper.SetDefault("site.name", "PROBUILD")
	viper.SetDefault("site.category_path_prefix", "/categories")
	viper.SetDefault("site.product_path_prefix", "/products")
	viper.SetDefault("site.category_image_prefix", "/images/products")
	viper.SetDefault("site.product_image_prefix", "/images/products-detail")

	viper.SetDefault("fetcher.timeout", 30)
	viper.SetDefault("fetcher.max_retries", 3)
	viper.SetDefault("fetcher.retry_delay", 2)
	viper.SetDefault("fetcher.max_requests_per_second", 2)

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "localhost")
}

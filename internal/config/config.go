// Package config loads and validates the application configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/lepinkainen/storefront-forge/configs"
	"github.com/lepinkainen/storefront-forge/internal/catalog"
	"github.com/lepinkainen/storefront-forge/pkg/filesystem"
)

// Config holds the central application configuration
type Config struct {
	// eBay API credentials and environment
	Ebay struct {
		AppID       string `mapstructure:"app_id"`      // Application (client) ID
		CertID      string `mapstructure:"cert_id"`     // Certificate (client secret)
		Environment string `mapstructure:"environment"` // "production" or "sandbox"
		Marketplace string `mapstructure:"marketplace"` // e.g. "EBAY_US"
	} `mapstructure:"ebay"`

	// Seller identity shown on the generated site
	Seller catalog.SellerInfo `mapstructure:"seller"`

	// Site presentation settings
	Site struct {
		Title               string `mapstructure:"title"`
		Description         string `mapstructure:"description"`
		BaseURL             string `mapstructure:"base_url"`
		AffiliateCampaignID string `mapstructure:"affiliate_campaign_id"`
		ItemsPerPage        int    `mapstructure:"items_per_page"`
		ShowPrice           bool   `mapstructure:"show_price"`
		ShowShipping        bool   `mapstructure:"show_shipping"`
		ShowCondition       bool   `mapstructure:"show_condition"`
		ShowTimeRemaining   bool   `mapstructure:"show_time_remaining"`
	} `mapstructure:"site"`

	// Build pipeline paths and cache policy
	Build struct {
		CacheDir        string `mapstructure:"cache_dir"`
		CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
		OutputDir       string `mapstructure:"output_dir"`
		StaticDir       string `mapstructure:"static_dir"`
	} `mapstructure:"build"`

	// Category ordering and visibility
	Categories struct {
		CustomOrder []string `mapstructure:"custom_order"` // Pinned to the front, in this order
		Hidden      []string `mapstructure:"hidden"`       // Dropped from the catalog entirely
	} `mapstructure:"categories"`

	// Deployment of the rendered output
	Deploy struct {
		Method                   string `mapstructure:"method"` // "none", "s3" or "rsync"
		S3Bucket                 string `mapstructure:"s3_bucket"`
		S3Region                 string `mapstructure:"s3_region"`
		CloudFrontDistributionID string `mapstructure:"cloudfront_distribution_id"`
		RsyncTarget              string `mapstructure:"rsync_target"`
		RsyncFlags               string `mapstructure:"rsync_flags"`
	} `mapstructure:"deploy"`
}

// LoadConfig loads the configuration from a file, layered over the embedded
// defaults. A missing file is fine; the defaults still apply, but validation
// will reject the result if credentials are absent.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	// If path is relative, try current directory first, then executable directory
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			if execPath, err := filesystem.GetDefaultPath(path); err == nil {
				if _, err := os.Stat(execPath); err == nil {
					path = execPath
				}
			}
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := configs.EmbeddedConfigs.ReadFile("default.yaml")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("error parsing embedded defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// Validate checks the settings a build cannot proceed without. Called before
// any network or filesystem work so misconfiguration fails fast.
func (c *Config) Validate() error {
	var missing []string
	if c.Ebay.AppID == "" {
		missing = append(missing, "ebay.app_id")
	}
	if c.Ebay.CertID == "" {
		missing = append(missing, "ebay.cert_id")
	}
	if c.Seller.Username == "" {
		missing = append(missing, "seller.username")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if c.Ebay.Environment != "production" && c.Ebay.Environment != "sandbox" {
		return fmt.Errorf("invalid ebay.environment %q, want production or sandbox", c.Ebay.Environment)
	}

	if !slices.Contains([]string{"none", "s3", "rsync"}, c.Deploy.Method) {
		return fmt.Errorf("invalid deploy.method %q, want none, s3 or rsync", c.Deploy.Method)
	}
	if c.Deploy.Method == "s3" && c.Deploy.S3Bucket == "" {
		return fmt.Errorf("deploy.method is s3 but deploy.s3_bucket is not set")
	}
	if c.Deploy.Method == "rsync" && c.Deploy.RsyncTarget == "" {
		return fmt.Errorf("deploy.method is rsync but deploy.rsync_target is not set")
	}

	return nil
}

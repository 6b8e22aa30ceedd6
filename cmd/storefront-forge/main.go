// Package main provides the CLI entry point for storefront-forge.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/storefront-forge/internal/catalog"
	"github.com/lepinkainen/storefront-forge/internal/config"
	"github.com/lepinkainen/storefront-forge/internal/demo"
	"github.com/lepinkainen/storefront-forge/internal/deploy"
	"github.com/lepinkainen/storefront-forge/internal/ebay"
	"github.com/lepinkainen/storefront-forge/internal/site"
	"github.com/lepinkainen/storefront-forge/pkg/preview"
)

// CLI structure
var CLI struct {
	Config string `help:"Configuration file path" default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging" default:"false"`

	Build struct {
		ForceRefresh bool `help:"Bypass the response cache and refetch all pages" default:"false"`
		DryRun       bool `help:"Fetch and organize but skip site generation" default:"false"`
		NoDeploy     bool `help:"Skip deployment even when configured" default:"false"`
	} `cmd:"build" help:"Fetch listings and generate the catalog site."`

	Preview struct {
		ForceRefresh bool `help:"Bypass the response cache and refetch all pages" default:"false"`
		Index        int  `help:"Output JSON for specific item index (0-based) to stdout" default:"-1"`
	} `cmd:"preview" help:"Browse fetched listings interactively."`

	Demo struct {
		Count int `help:"Number of sample items to generate" default:"40"`
	} `cmd:"demo" help:"Generate the site from sample data, no API access needed."`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Configure logging level based on debug flag
	if CLI.Debug {
		setLogLoggerLevel(slog.LevelDebug)
	} else {
		setLogLoggerLevel(slog.LevelWarn)
	}

	switch ctx.Command() {
	case "build":
		runBuild(CLI.Build.ForceRefresh, CLI.Build.DryRun, CLI.Build.NoDeploy)

	case "preview":
		runPreview(CLI.Preview.ForceRefresh, CLI.Preview.Index)

	case "demo":
		runDemo(CLI.Demo.Count)

	default:
		panic(ctx.Command())
	}
}

// loadConfig loads and validates the configuration, exiting on failure.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// fetchListings fetches and normalizes every listing for the configured seller.
func fetchListings(cfg *config.Config, forceRefresh bool) (*ebay.Client, []ebay.Item) {
	client := ebay.NewClient(ebay.ClientOptions{
		AppID:               cfg.Ebay.AppID,
		CertID:              cfg.Ebay.CertID,
		Environment:         strings.ToUpper(cfg.Ebay.Environment),
		Marketplace:         cfg.Ebay.Marketplace,
		CacheDir:            cfg.Build.CacheDir,
		CacheTTL:            time.Duration(cfg.Build.CacheTTLMinutes) * time.Minute,
		AffiliateCampaignID: cfg.Site.AffiliateCampaignID,
	})

	items, err := client.FetchAll(context.Background(), cfg.Seller.Username, forceRefresh)
	if err != nil {
		slog.Error("Failed to fetch listings", "seller", cfg.Seller.Username, "error", err)
		os.Exit(1)
	}
	return client, items
}

// siteConfig maps the loaded configuration onto renderer settings.
func siteConfig(cfg *config.Config) site.Config {
	return site.Config{
		Title:             cfg.Site.Title,
		Description:       cfg.Site.Description,
		BaseURL:           cfg.Site.BaseURL,
		ItemsPerPage:      cfg.Site.ItemsPerPage,
		ShowPrice:         cfg.Site.ShowPrice,
		ShowShipping:      cfg.Site.ShowShipping,
		ShowCondition:     cfg.Site.ShowCondition,
		ShowTimeRemaining: cfg.Site.ShowTimeRemaining,
	}
}

// generateSite organizes items into a catalog and renders it.
func generateSite(cfg *config.Config, seller catalog.SellerInfo, items []ebay.Item) catalog.Catalog {
	builder := catalog.NewBuilder(cfg.Categories.CustomOrder, cfg.Categories.Hidden)
	cat := builder.Build(items, seller)

	renderer, err := site.NewRenderer(cfg.Build.OutputDir, cfg.Build.StaticDir, siteConfig(cfg))
	if err != nil {
		slog.Error("Failed to initialize renderer", "error", err)
		os.Exit(1)
	}
	if err := renderer.Render(cat); err != nil {
		slog.Error("Failed to generate site", "error", err)
		os.Exit(1)
	}
	return cat
}

func runBuild(forceRefresh, dryRun, noDeploy bool) {
	start := time.Now()
	cfg := loadConfig()

	client, items := fetchListings(cfg, forceRefresh)

	if dryRun {
		builder := catalog.NewBuilder(cfg.Categories.CustomOrder, cfg.Categories.Hidden)
		cat := builder.Build(items, cfg.Seller)
		fmt.Printf("Dry run: %d items in %d categories, %d API calls, nothing written\n",
			cat.TotalItems, len(cat.Categories), client.APICalls)
		return
	}

	cat := generateSite(cfg, cfg.Seller, items)

	if !noDeploy {
		err := deploy.Deploy(context.Background(), cfg.Build.OutputDir, deploy.Options{
			Method:                   cfg.Deploy.Method,
			S3Bucket:                 cfg.Deploy.S3Bucket,
			S3Region:                 cfg.Deploy.S3Region,
			CloudFrontDistributionID: cfg.Deploy.CloudFrontDistributionID,
			RsyncTarget:              cfg.Deploy.RsyncTarget,
			RsyncFlags:               cfg.Deploy.RsyncFlags,
		})
		if err != nil {
			slog.Error("Deployment failed", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Built %d items in %d categories to %s (%d API calls, %.1fs)\n",
		cat.TotalItems, len(cat.Categories), cfg.Build.OutputDir,
		client.APICalls, time.Since(start).Seconds())
}

func runPreview(forceRefresh bool, index int) {
	cfg := loadConfig()
	_, items := fetchListings(cfg, forceRefresh)

	// If index is specified, output JSON directly to stdout
	if index >= 0 {
		if index >= len(items) {
			slog.Error("Index out of range", "index", index, "total", len(items))
			os.Exit(1)
		}
		fmt.Println(preview.FormatJSONItem(items[index]))
		return
	}

	if err := preview.Run(items, cfg.Seller.Username); err != nil {
		slog.Error("Preview failed", "error", err)
		os.Exit(1)
	}
}

// runDemo builds the site from generated sample data. Credentials are not
// required, so validation is skipped and only the build settings are used.
func runDemo(count int) {
	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cat := generateSite(cfg, demo.Seller(), demo.Items(count))

	fmt.Printf("Demo site: %d items in %d categories written to %s\n",
		cat.TotalItems, len(cat.Categories), cfg.Build.OutputDir)
}

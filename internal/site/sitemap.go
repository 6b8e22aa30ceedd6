package site

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lepinkainen/storefront-forge/internal/catalog"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// writeSitemap emits sitemap.xml listing the landing page and each
// category's first page. Skipped without error when no base URL is
// configured; the sitemap is a soft dependency of the site.
func (r *Renderer) writeSitemap(dir string, c catalog.Catalog) error {
	baseURL := strings.TrimRight(r.site.BaseURL, "/")
	if baseURL == "" {
		slog.Warn("Base URL not configured, skipping sitemap")
		return nil
	}

	slog.Debug("Generating sitemap.xml")

	set := urlSet{Xmlns: sitemapNamespace}
	set.URLs = append(set.URLs, sitemapURL{
		Loc:        baseURL + "/index.html",
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, category := range c.Categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/category/%s.html", baseURL, category.Slug),
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	content := append([]byte(xml.Header), out...)
	content = append(content, '\n')

	return os.WriteFile(filepath.Join(dir, "sitemap.xml"), content, 0o644)
}

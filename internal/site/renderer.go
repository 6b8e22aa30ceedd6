// Package site renders an organized catalog into a static multi-page HTML
// site. Pages are written into a staging directory next to the final output
// path and published with a single atomic rename, so the output is never
// observable in a half-written state.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/storefront-forge/internal/catalog"
	"github.com/lepinkainen/storefront-forge/internal/ebay"
	"github.com/lepinkainen/storefront-forge/pkg/filesystem"
)

// ErrRender indicates a template or filesystem error during staging. The
// previously published output, if any, is left untouched.
var ErrRender = errors.New("site: render failed")

// recentSampleSize is how many items the landing page showcases.
const recentSampleSize = 8

// Template file names looked up in the override/embedded filesystems.
const (
	indexTemplate    = "index.html.tmpl"
	categoryTemplate = "category.html.tmpl"
)

// Config holds the site presentation settings.
type Config struct {
	Title             string
	Description       string
	BaseURL           string
	ItemsPerPage      int
	ShowPrice         bool
	ShowShipping      bool
	ShowCondition     bool
	ShowTimeRemaining bool
}

// Renderer generates the static site for one catalog.
type Renderer struct {
	outputDir string
	staticDir string
	site      Config
	templates map[string]*template.Template
}

// NewRenderer creates a renderer writing to outputDir, copying static assets
// from staticDir. Templates are parsed up front so a broken template fails
// the build before any filesystem work.
func NewRenderer(outputDir, staticDir string, site Config) (*Renderer, error) {
	if site.ItemsPerPage <= 0 {
		site.ItemsPerPage = 24
	}

	parsed := make(map[string]*template.Template)
	for _, name := range []string{indexTemplate, categoryTemplate} {
		content, err := readTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}

	return &Renderer{
		outputDir: outputDir,
		staticDir: staticDir,
		site:      site,
		templates: parsed,
	}, nil
}

// templateFuncs returns the helper functions available to page templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// money formats an amount; optional amounts arrive as pointers.
		"money": func(v any) string {
			switch m := v.(type) {
			case ebay.Money:
				return fmt.Sprintf("%.2f %s", m.Value, m.Currency)
			case *ebay.Money:
				if m == nil {
					return ""
				}
				return fmt.Sprintf("%.2f %s", m.Value, m.Currency)
			}
			return ""
		},
	}
}

// Render generates the full site: stage, populate, then either atomically
// swap the staging directory into place or discard it.
func (r *Renderer) Render(c catalog.Catalog) error {
	slog.Info("Starting site generation", "output", r.outputDir)

	// Staging lives adjacent to the output so the final rename stays on one
	// filesystem.
	staging := r.outputDir + ".staging"

	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := r.populate(staging, c); err != nil {
		slog.Error("Site generation failed", "error", err)
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			slog.Warn("Failed to remove staging directory", "error", rmErr)
		}
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := os.RemoveAll(r.outputDir); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.Rename(staging, r.outputDir); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	slog.Info("Site generated", "output", r.outputDir)
	return nil
}

// populate renders every page plus the sitemap and static assets into dir.
func (r *Renderer) populate(dir string, c catalog.Catalog) error {
	if err := r.renderIndex(dir, c); err != nil {
		return err
	}
	if err := r.renderCategoryPages(dir, c); err != nil {
		return err
	}
	if err := r.writeSitemap(dir, c); err != nil {
		return err
	}
	return r.copyStaticAssets(dir)
}

// pageContext is the data shared by every rendered page.
type pageContext struct {
	Site        Config
	Seller      catalog.SellerInfo
	Categories  []catalog.Category
	TotalItems  int
	GeneratedAt string
	BasePath    string
	CurrentPage string
}

// indexContext is the landing page data.
type indexContext struct {
	pageContext
	RecentItems []ebay.Item
}

// categoryContext is the data for one category page.
type categoryContext struct {
	pageContext
	Category      catalog.Category
	Items         []ebay.Item
	Page          int
	TotalPages    int
	HasPagination bool
	PrevHref      string
	NextHref      string
}

func (r *Renderer) pageContext(c catalog.Catalog, basePath string) pageContext {
	return pageContext{
		Site:        r.site,
		Seller:      c.Seller,
		Categories:  c.Categories,
		TotalItems:  c.TotalItems,
		GeneratedAt: formatGeneratedAt(c.GeneratedAt),
		BasePath:    basePath,
	}
}

// formatGeneratedAt turns the catalog's RFC3339 timestamp into display form.
// An unparseable stamp is shown as-is.
func formatGeneratedAt(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return t.Format("January 2, 2006 at 3:04 PM UTC")
}

// renderIndex writes the landing page with the category overview and a
// sample of items ordered by title.
func (r *Renderer) renderIndex(dir string, c catalog.Catalog) error {
	slog.Debug("Rendering index.html")

	ctx := indexContext{
		pageContext: r.pageContext(c, ""),
		RecentItems: catalog.RecentSample(c, recentSampleSize),
	}
	ctx.CurrentPage = "home"

	return r.renderToFile(indexTemplate, filepath.Join(dir, "index.html"), ctx)
}

// renderCategoryPages writes each category sliced into fixed-size pages.
// Page 1 is addressed by the bare slug, later pages get a -pageN suffix.
func (r *Renderer) renderCategoryPages(dir string, c catalog.Catalog) error {
	categoryDir := filepath.Join(dir, "category")
	perPage := r.site.ItemsPerPage

	for _, category := range c.Categories {
		slog.Debug("Rendering category", "name", category.Name, "items", category.ItemCount)

		totalPages := (category.ItemCount + perPage - 1) / perPage

		for page := 1; page <= totalPages; page++ {
			start := (page - 1) * perPage
			end := min(start+perPage, category.ItemCount)

			ctx := categoryContext{
				pageContext:   r.pageContext(c, "../"),
				Category:      category,
				Items:         category.Items[start:end],
				Page:          page,
				TotalPages:    totalPages,
				HasPagination: totalPages > 1,
			}
			ctx.CurrentPage = category.Slug
			if page > 1 {
				ctx.PrevHref = categoryPageFile(category.Slug, page-1)
			}
			if page < totalPages {
				ctx.NextHref = categoryPageFile(category.Slug, page+1)
			}

			outFile := filepath.Join(categoryDir, categoryPageFile(category.Slug, page))
			if err := r.renderToFile(categoryTemplate, outFile, ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// categoryPageFile names the HTML file for one category page.
func categoryPageFile(slug string, page int) string {
	if page == 1 {
		return slug + ".html"
	}
	return fmt.Sprintf("%s-page%d.html", slug, page)
}

// renderToFile executes a template into a buffer first so a template error
// never leaves a truncated file behind.
func (r *Renderer) renderToFile(templateName, path string, data any) error {
	tmpl, ok := r.templates[templateName]
	if !ok {
		return fmt.Errorf("template %s not loaded", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	if err := filesystem.EnsureDirectoryExists(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Debug("Rendered page", "path", path)
	return nil
}

// copyStaticAssets copies the static tree into the staged output. A missing
// source directory is logged and skipped.
func (r *Renderer) copyStaticAssets(dir string) error {
	if _, err := os.Stat(r.staticDir); err != nil {
		slog.Warn("Static directory not found, skipping", "dir", r.staticDir)
		return nil
	}

	target := filepath.Join(dir, "static")
	if err := copyFS(target, os.DirFS(r.staticDir)); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}

	slog.Debug("Copied static assets", "from", r.staticDir, "to", target)
	return nil
}

// copyFS backports os.CopyFS (added in Go 1.23) for older toolchains,
// preserving its documented semantics: directories are created with 0o777
// (before umask), regular files are copied with 0o666 or'd with the source
// permissions, existing files are not overwritten, and non-regular files
// cause an error.
func copyFS(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		newPath := filepath.Join(dir, filepath.FromSlash(path))
		switch d.Type() {
		case os.ModeDir:
			return os.MkdirAll(newPath, 0o777)
		case 0:
			r, err := fsys.Open(path)
			if err != nil {
				return err
			}
			defer r.Close()
			info, err := r.Stat()
			if err != nil {
				return err
			}
			w, err := os.OpenFile(newPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666|info.Mode()&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(w, r); err != nil {
				w.Close()
				return &os.PathError{Op: "Copy", Path: newPath, Err: err}
			}
			return w.Close()
		default:
			return &os.PathError{Op: "CopyFS", Path: path, Err: os.ErrInvalid}
		}
	})
}

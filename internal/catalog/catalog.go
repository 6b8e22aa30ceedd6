// Package catalog organizes canonical items into a stable categorized
// catalog: grouping, hidden-category filtering, deterministic ordering and
// slug assignment. Every step is a total function of its input, so the same
// items always produce the same catalog apart from the generation timestamp.
package catalog

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/lepinkainen/storefront-forge/internal/ebay"
)

// SellerInfo is the seller metadata carried into the rendered site.
type SellerInfo struct {
	Username    string `mapstructure:"username" yaml:"username"`
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`
	Tagline     string `mapstructure:"tagline" yaml:"tagline"`
}

// Category is a named, slugged grouping of items. Categories are never
// empty: a category only exists because at least one item grouped into it.
type Category struct {
	Name      string
	Slug      string
	ItemCount int
	Items     []ebay.Item
}

// Catalog is the organized output consumed by the site renderer.
type Catalog struct {
	Seller      SellerInfo
	Categories  []Category
	TotalItems  int
	GeneratedAt string
}

// Builder organizes items into a catalog.
type Builder struct {
	customOrder []string
	hidden      map[string]bool

	// now is swappable for tests.
	now func() time.Time
}

// NewBuilder creates a builder with an optional custom category order and a
// set of category names to exclude.
func NewBuilder(customOrder, hiddenCategories []string) *Builder {
	hidden := make(map[string]bool, len(hiddenCategories))
	for _, name := range hiddenCategories {
		hidden[name] = true
	}
	return &Builder{
		customOrder: customOrder,
		hidden:      hidden,
		now:         time.Now,
	}
}

// Build assembles the catalog: group by category, drop hidden categories,
// sort items within each category, order categories, assign slugs.
func (b *Builder) Build(items []ebay.Item, seller SellerInfo) Catalog {
	slog.Info("Building catalog", "items", len(items))

	groups := groupByCategory(items)

	for name := range groups {
		if b.hidden[name] {
			delete(groups, name)
		}
	}

	for _, categoryItems := range groups {
		sortItems(categoryItems)
	}

	var categories []Category
	total := 0
	slugs := make(map[string]int)

	for _, name := range b.categoryOrder(groups) {
		categoryItems := groups[name]

		// Distinct names can normalize to the same slug; later ones get a
		// numeric suffix so no rendered page overwrites another.
		slug := Slugify(name)
		slugs[slug]++
		if n := slugs[slug]; n > 1 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}

		categories = append(categories, Category{
			Name:      name,
			Slug:      slug,
			ItemCount: len(categoryItems),
			Items:     categoryItems,
		})
		total += len(categoryItems)
	}

	catalog := Catalog{
		Seller:      seller,
		Categories:  categories,
		TotalItems:  total,
		GeneratedAt: b.now().UTC().Format(time.RFC3339),
	}

	slog.Info("Catalog built", "categories", len(categories), "items", total)
	return catalog
}

// groupByCategory partitions items by category label. A missing label groups
// under "Uncategorized".
func groupByCategory(items []ebay.Item) map[string][]ebay.Item {
	groups := make(map[string][]ebay.Item)
	for _, item := range items {
		name := item.Category
		if name == "" {
			name = "Uncategorized"
		}
		groups[name] = append(groups[name], item)
	}
	return groups
}

// categoryOrder returns category names with custom-ordered names first, in
// their configured order, followed by the rest alphabetically. Configured
// names absent from the data are skipped.
func (b *Builder) categoryOrder(groups map[string][]ebay.Item) []string {
	remaining := make(map[string]bool, len(groups))
	for name := range groups {
		remaining[name] = true
	}

	var ordered []string
	for _, name := range b.customOrder {
		if remaining[name] {
			ordered = append(ordered, name)
			delete(remaining, name)
		}
	}

	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		rest = append(rest, name)
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}

// sortItems orders items within a category: live auctions soonest-ending
// first, then everything else alphabetically by title. The title tie-break
// applies in both groups, so unique titles yield a strict total order.
func sortItems(items []ebay.Item) {
	slices.SortFunc(items, func(a, b ebay.Item) int {
		rankA, endA := sortRank(a)
		rankB, endB := sortRank(b)
		if c := cmp.Compare(rankA, rankB); c != 0 {
			return c
		}
		if c := cmp.Compare(endA, endB); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})
}

// sortRank is 0 for auctions with a known end instant, 1 for everything
// else. Auctions without an end date sort with the fixed-price group.
func sortRank(item ebay.Item) (int, string) {
	if item.IsAuction && item.EndDate != "" {
		return 0, item.EndDate
	}
	return 1, ""
}

// RecentSample returns up to n items across all categories ordered
// alphabetically by title. Title order stands in for recency because the
// upstream payload carries no listing-creation timestamp.
func RecentSample(c Catalog, n int) []ebay.Item {
	var all []ebay.Item
	for _, category := range c.Categories {
		all = append(all, category.Items...)
	}
	slices.SortFunc(all, func(a, b ebay.Item) int {
		return cmp.Compare(a.Title, b.Title)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

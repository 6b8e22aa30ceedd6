package catalog

import (
	"os"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/storefront-forge/internal/ebay"
)

// loadFixtureItems reads the shared listing fixtures.
func loadFixtureItems(t *testing.T) []ebay.Item {
	t.Helper()

	data, err := os.ReadFile("testdata/items.yaml")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	var items []ebay.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return items
}

func TestBuildGroupsAndCountsItems(t *testing.T) {
	items := loadFixtureItems(t)
	builder := NewBuilder(nil, nil)

	c := builder.Build(items, SellerInfo{Username: "some-seller"})

	if c.TotalItems != len(items) {
		t.Fatalf("TotalItems = %d, want %d", c.TotalItems, len(items))
	}

	// No item duplicated or dropped: flattening yields the input set.
	seen := make(map[string]bool)
	counted := 0
	for _, category := range c.Categories {
		if category.ItemCount != len(category.Items) {
			t.Errorf("category %q ItemCount = %d, len(Items) = %d", category.Name, category.ItemCount, len(category.Items))
		}
		if category.ItemCount == 0 {
			t.Errorf("category %q is empty", category.Name)
		}
		for _, item := range category.Items {
			if seen[item.ID] {
				t.Errorf("item %s appears twice", item.ID)
			}
			seen[item.ID] = true
			counted++
		}
	}
	if counted != len(items) {
		t.Fatalf("flattened item count = %d, want %d", counted, len(items))
	}
}

func TestBuildGroupsEmptyCategoryAsUncategorized(t *testing.T) {
	items := loadFixtureItems(t)
	builder := NewBuilder(nil, nil)

	c := builder.Build(items, SellerInfo{})

	var found bool
	for _, category := range c.Categories {
		if category.Name == "Uncategorized" {
			found = true
			if category.ItemCount != 1 {
				t.Errorf("Uncategorized ItemCount = %d, want 1", category.ItemCount)
			}
		}
	}
	if !found {
		t.Fatal("no Uncategorized category for item with empty label")
	}
}

func TestBuildHidesConfiguredCategoriesInFull(t *testing.T) {
	items := loadFixtureItems(t)
	builder := NewBuilder(nil, []string{"Electronics"})

	c := builder.Build(items, SellerInfo{})

	for _, category := range c.Categories {
		if category.Name == "Electronics" {
			t.Fatal("hidden category still present")
		}
	}
	if c.TotalItems != len(items)-2 {
		t.Fatalf("TotalItems = %d, want %d", c.TotalItems, len(items)-2)
	}
}

func TestBuildOrdersCategoriesCustomFirstThenAlphabetical(t *testing.T) {
	items := []ebay.Item{
		{ID: "1", Title: "a", Category: "Books"},
		{ID: "2", Title: "b", Category: "Electronics"},
		{ID: "3", Title: "c", Category: "Toys"},
	}
	builder := NewBuilder([]string{"Toys", "Books", "Absent Category"}, nil)

	c := builder.Build(items, SellerInfo{})

	got := make([]string, len(c.Categories))
	for i, category := range c.Categories {
		got[i] = category.Name
	}
	want := []string{"Toys", "Books", "Electronics"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order = %v, want %v", got, want)
		}
	}
}

func TestBuildSortsAuctionsBeforeFixedPrice(t *testing.T) {
	items := []ebay.Item{
		{ID: "1", Title: "Zulu Fixed", Category: "Stuff", IsAuction: false},
		{ID: "2", Title: "Late Auction", Category: "Stuff", IsAuction: true, EndDate: "2026-09-05T00:00:00Z"},
		{ID: "3", Title: "Alpha Fixed", Category: "Stuff", IsAuction: false},
		{ID: "4", Title: "Early Auction", Category: "Stuff", IsAuction: true, EndDate: "2026-09-01T00:00:00Z"},
		{ID: "5", Title: "Dateless Auction", Category: "Stuff", IsAuction: true},
	}
	builder := NewBuilder(nil, nil)

	c := builder.Build(items, SellerInfo{})

	got := make([]string, len(c.Categories[0].Items))
	for i, item := range c.Categories[0].Items {
		got[i] = item.Title
	}
	// Live auctions by soonest end, then everything else (including the
	// auction without an end date) by title.
	want := []string{"Early Auction", "Late Auction", "Alpha Fixed", "Dateless Auction", "Zulu Fixed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item order = %v, want %v", got, want)
		}
	}
}

func TestBuildBreaksEndDateTiesByTitle(t *testing.T) {
	end := "2026-09-01T00:00:00Z"
	items := []ebay.Item{
		{ID: "1", Title: "Beta", Category: "Stuff", IsAuction: true, EndDate: end},
		{ID: "2", Title: "Alpha", Category: "Stuff", IsAuction: true, EndDate: end},
	}
	builder := NewBuilder(nil, nil)

	c := builder.Build(items, SellerInfo{})

	if c.Categories[0].Items[0].Title != "Alpha" {
		t.Fatalf("tie not broken by title: %+v", c.Categories[0].Items)
	}
}

func TestBuildDisambiguatesSlugCollisions(t *testing.T) {
	items := []ebay.Item{
		{ID: "1", Title: "a", Category: "A/B"},
		{ID: "2", Title: "b", Category: "A B"},
	}
	builder := NewBuilder(nil, nil)

	c := builder.Build(items, SellerInfo{})

	slugs := make(map[string]bool)
	for _, category := range c.Categories {
		if slugs[category.Slug] {
			t.Fatalf("duplicate slug %q", category.Slug)
		}
		slugs[category.Slug] = true
	}
	if !slugs["a-b"] || !slugs["a-b-2"] {
		t.Fatalf("slugs = %v, want a-b and a-b-2", slugs)
	}
}

func TestBuildStampsUTCGenerationTime(t *testing.T) {
	builder := NewBuilder(nil, nil)
	builder.now = func() time.Time {
		return time.Date(2026, 8, 29, 15, 4, 5, 0, time.FixedZone("EEST", 3*3600))
	}

	c := builder.Build(nil, SellerInfo{})

	if c.GeneratedAt != "2026-08-29T12:04:05Z" {
		t.Fatalf("GeneratedAt = %q, want UTC RFC3339 with Z suffix", c.GeneratedAt)
	}
}

func TestRecentSampleIsAlphabeticalAcrossCategories(t *testing.T) {
	items := loadFixtureItems(t)
	builder := NewBuilder(nil, nil)
	c := builder.Build(items, SellerInfo{})

	sample := RecentSample(c, 3)

	if len(sample) != 3 {
		t.Fatalf("len(sample) = %d, want 3", len(sample))
	}
	want := []string{"Antique Clock", "Bluetooth Speaker", "Brass Candlesticks Pair"}
	for i := range want {
		if sample[i].Title != want[i] {
			t.Fatalf("sample order = %v, want %v", sample, want)
		}
	}
}

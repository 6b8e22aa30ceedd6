// Package demo generates sample listings so the site pipeline can be
// exercised without eBay API access. Output is deterministic for a given
// count so demo builds and tests are reproducible.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lepinkainen/storefront-forge/internal/catalog"
	"github.com/lepinkainen/storefront-forge/internal/ebay"
)

var productTitles = map[string][]string{
	"Electronics": {
		"Sony WH-1000XM4 Wireless Headphones",
		"Apple AirPods Pro 2nd Generation",
		"Samsung Galaxy Tab S8 Tablet",
		"Logitech MX Master 3S Mouse",
		"Blue Yeti USB Microphone",
		"Canon EOS Rebel T7 DSLR Camera",
		"Anker PowerCore 20100mAh Power Bank",
		"Kindle Paperwhite E-Reader",
		"Ring Video Doorbell Pro",
		"Bose SoundLink Mini Bluetooth Speaker",
	},
	"Collectibles": {
		"Vintage Star Wars Action Figures Set",
		"Pokemon Card Collection Lot",
		"Marvel Legends Iron Man Figure",
		"Funko Pop! Marvel Avengers Set",
		"Rare Vinyl Record The Beatles Abbey Road",
		"Limited Edition Hot Wheels Collection",
		"Vintage Coca-Cola Tin Sign",
		"Sports Trading Cards Bundle",
		"Disney VHS Tapes Collection",
		"Comic Book Lot Spider-Man Issues",
	},
	"Home & Garden": {
		"Instant Pot Duo 7-in-1 Pressure Cooker",
		"Dyson V11 Cordless Vacuum",
		"Ninja Air Fryer 6 Quart",
		"Keurig K-Elite Coffee Maker",
		"Indoor Plant Collection with Pots",
		"Garden Tool Set 10 Pieces",
		"LED String Lights Outdoor 50ft",
		"Memory Foam Pillow Set of 2",
		"Throw Blanket Soft Fleece",
		"Wall Art Canvas Prints Set",
	},
	"Toys & Hobbies": {
		"LEGO Star Wars Millennium Falcon",
		"Barbie Dreamhouse Playset",
		"Hot Wheels Track Set Mega Loop",
		"Nerf N-Strike Elite Blaster",
		"RC Car Off-Road Monster Truck",
		"Puzzle 1000 Pieces Landscape",
		"Board Game Collection Bundle",
		"Art Supply Set Drawing Kit",
		"Rubik's Cube Speed Cube",
		"Model Train Set Complete",
	},
}

// categoryOrder keeps generation order stable; map iteration is not.
var categoryOrder = []string{"Electronics", "Collectibles", "Home & Garden", "Toys & Hobbies"}

var conditions = []string{"New", "Like New", "Used - Excellent", "Used - Good"}

var sampleImages = []string{
	"https://i.ebayimg.com/images/g/placeholder1.jpg",
	"https://i.ebayimg.com/images/g/placeholder2.jpg",
	"https://i.ebayimg.com/images/g/placeholder3.jpg",
}

var locations = []string{"Los Angeles, CA", "New York, NY", "Chicago, IL", "Miami, FL"}

// Seller returns the demo seller identity.
func Seller() catalog.SellerInfo {
	return catalog.SellerInfo{
		Username:    "demo_seller",
		DisplayName: "Demo's Deals & Finds",
		Tagline:     "Quality products at great prices - Demo Mode",
	}
}

// Items generates count sample items spread evenly across the demo
// categories. The same count always yields the same items, apart from
// auction end dates which are placed a few days into the future.
func Items(count int) []ebay.Item {
	rng := rand.New(rand.NewSource(42))
	perCategory := count / len(categoryOrder)

	var items []ebay.Item
	for _, category := range categoryOrder {
		titles := productTitles[category]
		n := min(perCategory, len(titles))

		for i := 0; i < n; i++ {
			price := 10 + rng.Float64()*490
			isAuction := rng.Float64() < 0.2

			item := ebay.Item{
				ID:           fmt.Sprintf("v1|%d|0", 100000000000+rng.Int63n(900000000000)),
				Title:        titles[i],
				Price:        ebay.Money{Value: round2(price), Currency: "USD"},
				PrimaryImage: sampleImages[rng.Intn(len(sampleImages))],
				Condition:    conditions[rng.Intn(len(conditions))],
				Category:     category,
				Location:     locations[rng.Intn(len(locations))],
			}
			item.URL = "https://www.ebay.com/itm/" + item.ID

			if rng.Float64() < 0.4 {
				item.ShippingCost = &ebay.Money{Value: 0, Currency: "USD"}
				item.ShippingType = "FREE"
			} else {
				item.ShippingCost = &ebay.Money{Value: round2(4.99 + rng.Float64()*15), Currency: "USD"}
				item.ShippingType = "CALCULATED"
			}

			if isAuction {
				item.IsAuction = true
				item.BuyingOptions = []string{"AUCTION"}
				item.CurrentBid = &ebay.Money{Value: round2(price * (0.5 + rng.Float64()*0.4)), Currency: "USD"}
				days := 1 + rng.Intn(7)
				item.EndDate = time.Now().UTC().AddDate(0, 0, days).Format(time.RFC3339)
			} else {
				item.IsBuyItNow = true
				item.BuyingOptions = []string{"FIXED_PRICE"}
				if rng.Float64() < 0.3 {
					item.IsBestOffer = true
					item.BuyingOptions = append(item.BuyingOptions, "BEST_OFFER")
				}
			}

			items = append(items, item)
		}
	}

	return items
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

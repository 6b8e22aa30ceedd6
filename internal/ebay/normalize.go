package ebay

import (
	"slices"
	"strconv"
)

// Buying options reported by the Browse API.
const (
	buyingOptionAuction    = "AUCTION"
	buyingOptionFixedPrice = "FIXED_PRICE"
	buyingOptionBestOffer  = "BEST_OFFER"
)

// defaultCategory groups listings whose category path is missing or empty.
const defaultCategory = "Uncategorized"

// NormalizeItem maps a raw item summary to the canonical item shape. It is a
// pure function and never fails: missing fields fall back to zero amounts,
// empty strings, USD and the default category.
func NormalizeItem(raw ItemSummary) Item {
	item := Item{
		ID:            raw.ItemID,
		Title:         raw.Title,
		Price:         moneyFromAmount(raw.Price),
		Condition:     raw.Condition,
		Category:      defaultCategory,
		BuyingOptions: raw.BuyingOptions,
		EndDate:       raw.ItemEndDate,
		IsAuction:     slices.Contains(raw.BuyingOptions, buyingOptionAuction),
		IsBuyItNow:    slices.Contains(raw.BuyingOptions, buyingOptionFixedPrice),
		IsBestOffer:   slices.Contains(raw.BuyingOptions, buyingOptionBestOffer),
	}

	if raw.CurrentBidPrice != nil {
		bid := moneyFromAmount(raw.CurrentBidPrice)
		item.CurrentBid = &bid
	}

	if raw.Image != nil {
		item.PrimaryImage = raw.Image.ImageURL
	}
	for _, img := range raw.AdditionalImages {
		item.AdditionalImages = append(item.AdditionalImages, img.ImageURL)
	}

	// First entry of the category path wins.
	if len(raw.Categories) > 0 && raw.Categories[0].CategoryName != "" {
		item.Category = raw.Categories[0].CategoryName
	}

	if len(raw.ShippingOptions) > 0 {
		shipping := raw.ShippingOptions[0]
		if shipping.ShippingCost != nil {
			cost := moneyFromAmount(shipping.ShippingCost)
			item.ShippingCost = &cost
		}
		item.ShippingType = shipping.ShippingCostType
	}

	// Prefer the affiliate-tagged URL when the payload provides one.
	item.URL = raw.ItemAffiliateWebURL
	if item.URL == "" {
		item.URL = raw.ItemWebURL
	}

	if raw.ItemLocation != nil {
		item.Location = raw.ItemLocation.City
	}

	return item
}

// moneyFromAmount parses an API amount, defaulting to a zero USD value.
func moneyFromAmount(a *Amount) Money {
	m := Money{Currency: "USD"}
	if a == nil {
		return m
	}
	if a.Currency != "" {
		m.Currency = a.Currency
	}
	if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
		m.Value = v
	}
	return m
}

// Package preview provides an interactive listing preview using a Bubble Tea TUI.
package preview

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/storefront-forge/internal/ebay"
)

// formatMoney renders an amount for terminal display.
func formatMoney(m ebay.Money) string {
	return fmt.Sprintf("%.2f %s", m.Value, m.Currency)
}

// FormatCompactListItem formats a single listing in compact list format.
// Example: " 1. [  35.00 USD] Electronics     Bluetooth Speaker"
func FormatCompactListItem(index int, item ebay.Item) string {
	price := item.Price
	marker := " "
	if item.IsAuction {
		if item.CurrentBid != nil {
			price = *item.CurrentBid
		}
		marker = "A"
	}

	title := item.Title
	const maxTitleLength = 60
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength-3] + "..."
	}

	return fmt.Sprintf("%3d. %s [%11s] %-16s %s", index+1, marker, formatMoney(price), truncate(item.Category, 16), title)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// FormatDetailedItem formats a single listing with all metadata.
func FormatDetailedItem(item ebay.Item) string {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", item.Title))
	b.WriteString(fmt.Sprintf("Category: %s\n", item.Category))

	if item.IsAuction && item.CurrentBid != nil {
		b.WriteString(fmt.Sprintf("Current bid: %s\n", formatMoney(*item.CurrentBid)))
	}
	b.WriteString(fmt.Sprintf("Price: %s\n", formatMoney(item.Price)))

	if item.Condition != "" {
		b.WriteString(fmt.Sprintf("Condition: %s\n", item.Condition))
	}
	if item.ShippingCost != nil {
		b.WriteString(fmt.Sprintf("Shipping: %s (%s)\n", formatMoney(*item.ShippingCost), item.ShippingType))
	}
	if item.Location != "" {
		b.WriteString(fmt.Sprintf("Ships from: %s\n", item.Location))
	}
	if len(item.BuyingOptions) > 0 {
		b.WriteString(fmt.Sprintf("Buying options: %s\n", strings.Join(item.BuyingOptions, ", ")))
	}
	if item.EndDate != "" {
		b.WriteString(fmt.Sprintf("Ends: %s\n", formatTimeRemaining(item.EndDate)))
	}
	b.WriteString(fmt.Sprintf("Link: %s\n", item.URL))
	if item.PrimaryImage != "" {
		b.WriteString(fmt.Sprintf("Image: %s\n", item.PrimaryImage))
	}

	b.WriteString("═══════════════════════════════════════════════════════════════════════\n")

	return b.String()
}

// FormatJSONItem formats a single listing as the JSON it would carry in the
// rendered catalog data.
func FormatJSONItem(item ebay.Item) string {
	out, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error encoding item: %s", err)
	}
	return string(out)
}

// formatTimeRemaining turns an RFC 3339 end instant into a countdown string.
func formatTimeRemaining(endDate string) string {
	t, err := time.Parse(time.RFC3339, endDate)
	if err != nil {
		return endDate
	}

	remaining := time.Until(t)
	switch {
	case remaining <= 0:
		return "ended"
	case remaining < time.Hour:
		return fmt.Sprintf("in %d minutes", int(remaining.Minutes()))
	case remaining < 24*time.Hour:
		return fmt.Sprintf("in %dh %dm", int(remaining.Hours()), int(remaining.Minutes())%60)
	default:
		days := int(remaining.Hours() / 24)
		return fmt.Sprintf("in %dd %dh", days, int(remaining.Hours())%24)
	}
}

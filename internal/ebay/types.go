package ebay

// Browse API wire types. Only the fields the pipeline consumes are mapped;
// everything else in the payload is ignored by encoding/json.

// SearchResponse is one page of the item_summary/search endpoint.
type SearchResponse struct {
	Href          string        `json:"href"`
	Total         int           `json:"total"`
	Next          string        `json:"next,omitempty"`
	Limit         int           `json:"limit"`
	Offset        int           `json:"offset"`
	ItemSummaries []ItemSummary `json:"itemSummaries"`
}

// Amount is a monetary value as the API reports it. Value arrives as a
// decimal string.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Image references a hosted listing image.
type Image struct {
	ImageURL string `json:"imageUrl"`
}

// CategoryRef is one entry of the listing's category path.
type CategoryRef struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// ShippingOption describes one way the listing can ship.
type ShippingOption struct {
	ShippingCostType string  `json:"shippingCostType"`
	ShippingCost     *Amount `json:"shippingCost"`
}

// Location is the listing's origin.
type Location struct {
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ItemSummary is one raw listing as returned by the search endpoint.
type ItemSummary struct {
	ItemID              string           `json:"itemId"`
	Title               string           `json:"title"`
	Price               *Amount          `json:"price"`
	CurrentBidPrice     *Amount          `json:"currentBidPrice"`
	Image               *Image           `json:"image"`
	AdditionalImages    []Image          `json:"additionalImages"`
	Condition           string           `json:"condition"`
	Categories          []CategoryRef    `json:"categories"`
	ItemWebURL          string           `json:"itemWebUrl"`
	ItemAffiliateWebURL string           `json:"itemAffiliateWebUrl"`
	ShippingOptions     []ShippingOption `json:"shippingOptions"`
	ItemLocation        *Location        `json:"itemLocation"`
	BuyingOptions       []string         `json:"buyingOptions"`
	ItemEndDate         string           `json:"itemEndDate"`
}

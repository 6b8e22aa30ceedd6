package ebay

// Money is an amount in a specific currency.
type Money struct {
	Value    float64 `json:"value" yaml:"value"`
	Currency string  `json:"currency" yaml:"currency"`
}

// Item is the canonical in-memory representation of one listing. Items are
// created once during normalization and never mutated afterwards.
type Item struct {
	ID               string   `json:"item_id" yaml:"item_id"`
	Title            string   `json:"title" yaml:"title"`
	Price            Money    `json:"price" yaml:"price"`
	CurrentBid       *Money   `json:"current_bid,omitempty" yaml:"current_bid,omitempty"`
	PrimaryImage     string   `json:"primary_image" yaml:"primary_image"`
	AdditionalImages []string `json:"additional_images,omitempty" yaml:"additional_images,omitempty"`
	Condition        string   `json:"condition" yaml:"condition"`
	Category         string   `json:"category" yaml:"category"`
	URL              string   `json:"item_url" yaml:"item_url"`
	ShippingCost     *Money   `json:"shipping_cost,omitempty" yaml:"shipping_cost,omitempty"`
	ShippingType     string   `json:"shipping_type" yaml:"shipping_type"`
	Location         string   `json:"location" yaml:"location"`
	BuyingOptions    []string `json:"buying_options,omitempty" yaml:"buying_options,omitempty"`

	// EndDate is the ISO-8601 end instant for time-boxed listings, empty
	// otherwise.
	EndDate string `json:"item_end_date" yaml:"item_end_date"`

	// IsAuction drives item ordering and countdown rendering. The three
	// flags are independent; a listing can be an auction that also accepts
	// best offers.
	IsAuction   bool `json:"is_auction" yaml:"is_auction"`
	IsBuyItNow  bool `json:"is_buy_it_now" yaml:"is_buy_it_now"`
	IsBestOffer bool `json:"is_best_offer" yaml:"is_best_offer"`
}

// Package ebay implements the authenticated, cached, paginated fetch of a
// seller's live Browse API listings and their normalization into canonical
// items.
package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/lepinkainen/storefront-forge/pkg/cache"
	"github.com/lepinkainen/storefront-forge/pkg/httpx"
)

// ErrFetch indicates the first results page could not be retrieved. Failures
// on later pages degrade to a partial result instead.
var ErrFetch = errors.New("ebay: fetch failed")

// API endpoints per environment.
const (
	tokenURLProduction = "https://api.ebay.com/identity/v1/oauth2/token"
	tokenURLSandbox    = "https://api.sandbox.ebay.com/identity/v1/oauth2/token"

	browseAPIProduction = "https://api.ebay.com/buy/browse/v1"
	browseAPISandbox    = "https://api.sandbox.ebay.com/buy/browse/v1"
)

// maxPageSize is the documented maximum page size of item_summary/search.
const maxPageSize = 200

// ClientOptions configures a Client.
type ClientOptions struct {
	AppID               string
	CertID              string
	Environment         string // "PRODUCTION" or "SANDBOX"
	Marketplace         string // e.g. "EBAY_US"
	CacheDir            string
	CacheTTL            time.Duration
	AffiliateCampaignID string

	// TokenURL and APIBaseURL override the environment-derived endpoints.
	TokenURL   string
	APIBaseURL string
}

// Client drives the Browse API for one marketplace. It is not safe for
// concurrent use; the pipeline runs one sequential fetch per build.
type Client struct {
	httpc               *httpx.Client
	tokens              *TokenManager
	cache               *cache.Cache
	baseURL             string
	marketplace         string
	affiliateCampaignID string
	pageSize            int

	// APICalls counts network calls to the search endpoint made by this
	// client instance, for the build summary.
	APICalls int
}

// NewClient creates a Browse API client.
func NewClient(opts ClientOptions) *Client {
	tokenURL := opts.TokenURL
	baseURL := opts.APIBaseURL
	if opts.Environment == "SANDBOX" {
		if tokenURL == "" {
			tokenURL = tokenURLSandbox
		}
		if baseURL == "" {
			baseURL = browseAPISandbox
		}
	} else {
		if tokenURL == "" {
			tokenURL = tokenURLProduction
		}
		if baseURL == "" {
			baseURL = browseAPIProduction
		}
	}

	httpc := httpx.NewClient(&httpx.ClientConfig{
		Timeout:     30 * time.Second,
		RateLimiter: httpx.NewSimpleRateLimiter(200 * time.Millisecond),
		RetryPolicy: httpx.DefaultRetryPolicy(),
		UserAgent:   "storefront-forge/1.0",
		Headers: map[string]string{
			"Accept": "application/json",
		},
	})

	slog.Info("Initialized eBay client", "marketplace", opts.Marketplace, "environment", opts.Environment)

	return &Client{
		httpc:               httpc,
		tokens:              NewTokenManager(opts.AppID, opts.CertID, tokenURL),
		cache:               cache.New(opts.CacheDir, opts.CacheTTL),
		baseURL:             baseURL,
		marketplace:         opts.Marketplace,
		affiliateCampaignID: opts.AffiliateCampaignID,
		pageSize:            maxPageSize,
	}
}

// cacheKey identifies one (marketplace, seller, offset) page.
func (c *Client) cacheKey(seller string, offset int) string {
	return fmt.Sprintf("%s_%s_offset%d.json", c.marketplace, seller, offset)
}

// searchPage retrieves one results page, consulting the response cache
// unless forceRefresh is set. Successful network responses are written back
// to the cache verbatim.
func (c *Client) searchPage(ctx context.Context, seller string, offset int, forceRefresh bool) (*SearchResponse, error) {
	key := c.cacheKey(seller, offset)

	if !forceRefresh {
		if data, ok := c.cache.Get(key); ok {
			var page SearchResponse
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
			slog.Warn("Ignoring unparseable cache entry", "key", key)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("filter", fmt.Sprintf("sellers:{%s}", seller))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(c.pageSize))

	headers := map[string]string{
		"Authorization":           "Bearer " + token,
		"X-EBAY-C-MARKETPLACE-ID": c.marketplace,
	}
	if c.affiliateCampaignID != "" {
		headers["X-EBAY-C-ENDUSERCTX"] = "affiliateCampaignId=" + c.affiliateCampaignID
	}

	slog.Info("Fetching items", "seller", seller, "offset", offset, "limit", c.pageSize)

	body, err := c.httpc.GetBytes(ctx, c.baseURL+"/item_summary/search", params, headers)
	if err != nil {
		return nil, err
	}
	c.APICalls++

	c.cache.Put(key, body)

	var page SearchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &page, nil
}

// FetchAll retrieves every active listing of a seller through pagination and
// normalizes them.
//
// The server-reported total is recorded from the first page only and assumed
// stable for the duration of the fetch; the offset advances by the number of
// items each page actually returned. An empty page is an authoritative
// end-of-results signal. If a page fails after at least one page succeeded,
// the items accumulated so far are returned as a deliberate partial result;
// a first-page failure is fatal because it is indistinguishable from a
// seller with no listings.
func (c *Client) FetchAll(ctx context.Context, seller string, forceRefresh bool) ([]Item, error) {
	var items []Item
	offset := 0
	total := -1

	slog.Info("Fetching all items for seller", "seller", seller)

	for {
		page, err := c.searchPage(ctx, seller, offset, forceRefresh)
		if err != nil {
			if errors.Is(err, ErrAuth) {
				return nil, err
			}
			if len(items) > 0 {
				slog.Warn("Returning partial results due to API error",
					"offset", offset,
					"fetched", len(items),
					"total", total,
					"error", err)
				break
			}
			return nil, fmt.Errorf("%w at offset %d: %v", ErrFetch, offset, err)
		}

		if total < 0 {
			total = page.Total
			slog.Info("Seller total reported", "seller", seller, "total", total)
		}

		if len(page.ItemSummaries) == 0 {
			break
		}

		for _, raw := range page.ItemSummaries {
			items = append(items, NormalizeItem(raw))
		}

		offset += len(page.ItemSummaries)
		if offset >= total {
			break
		}
	}

	slog.Info("Fetched items", "seller", seller, "count", len(items))
	return items, nil
}

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// ListFilters narrows a product listing. Zero values are omitted from the
// query.
type ListFilters struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Featured bool
}

type catalogClient struct {
	client *Client
	logger *zap.Logger
}

// NewCatalogClient creates a client for the remote product catalog
func NewCatalogClient(client *Client, logger *zap.Logger) *catalogClient {
	return &catalogClient{
		client: client,
		logger: logger,
	}
}

// List fetches products matching the filters. The body is forwarded opaquely;
// it carries the items plus the service's pagination envelope.
func (c *catalogClient) List(ctx context.Context, token string, filters ListFilters) (json.RawMessage, error) {
	q := url.Values{}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 12
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	if filters.Category != "" && filters.Category != "all" {
		q.Set("category", filters.Category)
	}
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Featured {
		q.Set("featured", "true")
	}

	return c.client.doJSON(ctx, http.MethodGet, "/api/products?"+q.Encode(), token, nil)
}

// Get fetches a single product by id
func (c *catalogClient) Get(ctx context.Context, token, productID string) (json.RawMessage, error) {
	return c.client.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(productID), token, nil)
}

// Featured fetches the featured product selection
func (c *catalogClient) Featured(ctx context.Context, token string) (json.RawMessage, error) {
	return c.client.doJSON(ctx, http.MethodGet, "/api/products/featured/products", token, nil)
}

// Search fetches products matching a free-text query
func (c *catalogClient) Search(ctx context.Context, token, query string) (json.RawMessage, error) {
	return c.List(ctx, token, ListFilters{Search: query})
}

// ByCategory fetches products in one category
func (c *catalogClient) ByCategory(ctx context.Context, token, category string) (json.RawMessage, error) {
	return c.List(ctx, token, ListFilters{Category: category})
}

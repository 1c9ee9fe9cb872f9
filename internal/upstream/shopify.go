package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brightertomorrows/website-backend/internal/config"
)

// ShopifyClient fetches the shop product catalog. Responses pass through to
// the browser untouched; the wire format is Shopify's, not ours.
type ShopifyClient struct {
	cfg        config.ShopifyConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewShopifyClient creates a Shopify client from config.
func NewShopifyClient(cfg config.ShopifyConfig, logger *slog.Logger) *ShopifyClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShopifyClient{cfg: cfg, httpClient: newHTTPClient(), logger: logger}
}

// Products lists the store's products.
func (c *ShopifyClient) Products(ctx context.Context) (json.RawMessage, error) {
	productsURL := fmt.Sprintf("https://%s/admin/api/2024-01/products.json", c.cfg.StoreDomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, productsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.StorefrontToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: shopify products: %v", ErrUpstream, err)
	}
	return readBody(resp)
}

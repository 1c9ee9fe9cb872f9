package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/brightertomorrows/website-backend/internal/config"
)

// AirtableClient lists catalog records from an Airtable base.
type AirtableClient struct {
	cfg        config.AirtableConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAirtableClient creates an Airtable client from config.
func NewAirtableClient(cfg config.AirtableConfig, logger *slog.Logger) *AirtableClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &AirtableClient{cfg: cfg, httpClient: newHTTPClient(), logger: logger}
}

// Records lists the configured table's records.
func (c *AirtableClient) Records(ctx context.Context) (json.RawMessage, error) {
	recordsURL := fmt.Sprintf("https://api.airtable.com/v0/%s/%s",
		url.PathEscape(c.cfg.BaseID), url.PathEscape(c.cfg.Table))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: airtable records: %v", ErrUpstream, err)
	}
	return readBody(resp)
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/brightertomorrows/website-backend/internal/config"
)

// PayPalClient proxies order creation and capture to PayPal's Orders API
// using server-held credentials. The browser never sees the client secret.
type PayPalClient struct {
	cfg        config.PayPalConfig
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient creates a PayPal client from config.
func NewPayPalClient(cfg config.PayPalConfig, logger *slog.Logger) *PayPalClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayPalClient{cfg: cfg, httpClient: newHTTPClient(), logger: logger}
}

// CaptureResult summarizes a completed capture for the order log.
type CaptureResult struct {
	OrderID  string
	Status   string
	Amount   float64
	Currency string
	Raw      json.RawMessage
}

// CreateOrder creates a PayPal order for the given amount and returns
// PayPal's response verbatim for the checkout widget.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount float64, currency string) (json.RawMessage, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]string{
				"currency_code": currency,
				"value":         fmt.Sprintf("%.2f", amount),
			},
		}},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBase+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrUpstream, err)
	}
	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// CaptureOrder captures a previously created order and parses the capture
// summary out of PayPal's response.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.cfg.APIBase, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: capture order: %v", ErrUpstream, err)
	}
	raw, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse capture response: %v", ErrUpstream, err)
	}

	result := &CaptureResult{OrderID: parsed.ID, Status: parsed.Status, Raw: raw}
	if len(parsed.PurchaseUnits) > 0 && len(parsed.PurchaseUnits[0].Payments.Captures) > 0 {
		capture := parsed.PurchaseUnits[0].Payments.Captures[0]
		result.Currency = capture.Amount.CurrencyCode
		fmt.Sscanf(capture.Amount.Value, "%f", &result.Amount)
	}
	return result, nil
}

// token returns a cached OAuth access token, fetching a fresh one when the
// cache is empty or near expiry.
func (c *PayPalClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBase+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrUpstream, err)
	}
	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: parse token response", ErrUpstream)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

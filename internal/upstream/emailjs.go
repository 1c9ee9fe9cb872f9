package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brightertomorrows/website-backend/internal/config"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSClient relays form submissions through the EmailJS send API.
type EmailJSClient struct {
	cfg        config.EmailJSConfig
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewEmailJSClient creates an EmailJS client from config.
func NewEmailJSClient(cfg config.EmailJSConfig, logger *slog.Logger) *EmailJSClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailJSClient{cfg: cfg, endpoint: emailJSEndpoint, httpClient: newHTTPClient(), logger: logger}
}

// Send submits one email with the given template parameters.
func (c *EmailJSClient) Send(ctx context.Context, templateParams map[string]string) error {
	payload := map[string]any{
		"service_id":      c.cfg.ServiceID,
		"template_id":     c.cfg.TemplateID,
		"user_id":         c.cfg.PublicKey,
		"template_params": templateParams,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: emailjs send: %v", ErrUpstream, err)
	}
	_, err = readBody(resp)
	return err
}

package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

const defaultBaseURL = "https://api.mercadopago.com"

// Client reads payments from the Mercado Pago REST API with a pre-configured access token.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg config.MercadoPago) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrUpstreamUnavailable, err)
	}

	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: payment %s", domain.ErrPaymentNotFound, paymentID)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, response.StatusCode, errorMessage(body))
	}

	var payment paymentResponse
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("%w: decode payment: %w", domain.ErrUpstreamUnavailable, err)
	}

	return toPaymentRecord(&payment), nil
}

func toPaymentRecord(p *paymentResponse) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:                p.ID.String(),
		ExternalReference: strings.TrimSpace(p.ExternalReference),
		Status:            domain.ParsePaymentStatus(p.Status),
		RawStatus:         p.Status,
		PaymentMethodType: strings.ToUpper(p.PaymentTypeID),
		DateApproved:      p.DateApproved,
	}
}

func errorMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return errResp.Message
}

var _ domain.PaymentProcessor = (*Client)(nil)

// ErrNotConfigured is returned by NewClientFromConfig when no access token is set.
var ErrNotConfigured = errors.New("mercado pago access token is not configured")

func NewClientFromConfig(cfg config.MercadoPago) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, ErrNotConfigured
	}
	return NewClient(cfg), nil
}

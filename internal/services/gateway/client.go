// Package gateway is the HTTP client for the external payment gateway's
// verify-by-reference endpoint.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Config holds gateway connection settings.
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

type httpClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewClient creates a gateway client with a bounded request timeout.
func NewClient(cfg Config) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &httpClient{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

// verifyResponse mirrors the gateway's wire format.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

func (c *httpClient) Verify(ctx context.Context, reference string) (*VerifiedPayment, error) {
	endpoint := c.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Timeout or transport failure: the payment may still have gone
		// through on the gateway side, so report retryable, not failed.
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: unknown reference %q", ErrPaymentNotSuccessful, reference)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrPaymentNotSuccessful, resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: undecodable response: %v", ErrGatewayUnavailable, err)
	}
	if !body.Status {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotSuccessful, body.Message)
	}
	if body.Data.Reference != reference {
		return nil, fmt.Errorf("%w: asked %q, got %q", ErrReferenceMismatch, reference, body.Data.Reference)
	}
	if body.Data.Status != "success" {
		return nil, fmt.Errorf("%w: gateway status %q", ErrPaymentNotSuccessful, body.Data.Status)
	}

	return &VerifiedPayment{
		Reference:     body.Data.Reference,
		Status:        body.Data.Status,
		Amount:        body.Data.Amount,
		CustomerEmail: body.Data.Customer.Email,
	}, nil
}

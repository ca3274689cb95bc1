package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"event_manager/config"
	"event_manager/model"
)

// PaymentGateway is the external payment processor. The booking flow only
// needs a single charge call; refunds are handled by support tooling.
type PaymentGateway interface {
	Charge(ctx context.Context, req model.GatewayChargeRequest) (*model.GatewayChargeResponse, error)
}

// HTTPPaymentGateway talks to the processor over HTTP with a bounded
// timeout. A timeout here fails the booking session; there is nothing to
// reconcile because no charge response was received before the deadline.
type HTTPPaymentGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewPaymentGateway() *HTTPPaymentGateway {
	timeout, err := time.ParseDuration(config.ConfigOr("PAYMENT_GATEWAY_TIMEOUT", "15s"))
	if err != nil {
		timeout = 15 * time.Second
	}
	return &HTTPPaymentGateway{
		BaseURL: config.ConfigOr("PAYMENT_GATEWAY_URL", "http://localhost:9102"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPPaymentGateway) Charge(ctx context.Context, req model.GatewayChargeRequest) (*model.GatewayChargeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: build charge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway: charge call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, ErrPaymentDeclined
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway: unexpected status %d", resp.StatusCode)
	}

	var charge model.GatewayChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("gateway: malformed charge response: %w", err)
	}
	if charge.Status != model.GatewayChargeSucceeded {
		return nil, ErrPaymentDeclined
	}

	return &charge, nil
}

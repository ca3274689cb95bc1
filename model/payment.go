package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GatewayChargeRequest is the shape sent to the external payment processor.
type GatewayChargeRequest struct {
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency"`
	Method    string            `json:"method"`
	Details   map[string]string `json:"details,omitempty"`
	Reference string            `json:"reference"`
}

// GatewayChargeResponse is what the processor answers with. Status is the
// processor's own vocabulary; anything but "succeeded" is a decline.
type GatewayChargeResponse struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	ChargedAt     time.Time `json:"chargedAt"`
}

const GatewayChargeSucceeded = "succeeded"

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionState names the stages of a single checkout flow.
type SessionState string

const (
	SessionInitiated      SessionState = "INITIATED"
	SessionPaymentPending SessionState = "PAYMENT_PENDING"
	SessionConfirmed      SessionState = "CONFIRMED"
	SessionFailed         SessionState = "FAILED"
)

var ErrInvalidTransition = errors.New("booking session: invalid state transition")

// sessionTransitions is the full transition table. Confirmed and Failed are
// terminal; a failed session is restarted from scratch, never resumed.
var sessionTransitions = map[SessionState][]SessionState{
	SessionInitiated:      {SessionPaymentPending, SessionFailed},
	SessionPaymentPending: {SessionConfirmed, SessionFailed},
	SessionConfirmed:      {},
	SessionFailed:         {},
}

func (s SessionState) CanTransition(to SessionState) bool {
	for _, next := range sessionTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s SessionState) IsTerminal() bool {
	return len(sessionTransitions[s]) == 0
}

// BookingSession is ephemeral: it lives in Redis for the duration of the
// checkout flow and is discarded after confirmation or abandonment.
type BookingSession struct {
	ID          string          `json:"_id"`
	EventID     uint            `json:"eventId"`
	UserID      uint            `json:"userId"`
	SeatNumber  string          `json:"seatNumber"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Fees        decimal.Decimal `json:"fees"`
	Currency    string          `json:"currency"`
	State       SessionState    `json:"state"`
	PaymentID   string          `json:"paymentId,omitempty"`
	TxnID       string          `json:"transactionId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Transition moves the session to the requested state, rejecting anything
// the table does not allow.
func (b *BookingSession) Transition(to SessionState) error {
	if !b.State.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.State, to)
	}
	b.State = to
	return nil
}

type InitiateBookingInput struct {
	EventID uint `json:"eventId" validate:"required,gt=0"`
}

type ProcessPaymentInput struct {
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	PaymentMethod  string            `json:"paymentMethod" validate:"required"`
	PaymentDetails map[string]string `json:"paymentDetails"`
	BookingID      string            `json:"bookingId" validate:"required"`
	EventID        uint              `json:"eventId" validate:"required,gt=0"`
}

type ConfirmBookingInput struct {
	EventID       uint   `json:"eventId" validate:"required,gt=0"`
	PaymentID     string `json:"paymentId" validate:"required"`
	BookingID     string `json:"bookingId" validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

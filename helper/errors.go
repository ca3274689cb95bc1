package helper

import "errors"

// Domain errors surfaced to handlers. Each maps to a distinct keyError in
// the HTTP response so the dashboard can branch on them.
var (
	// ErrSeatUnavailable means the atomic seat decrement lost the race: the
	// last available seat went to a concurrent booking.
	ErrSeatUnavailable = errors.New("booking: seat no longer available")

	// ErrPaymentChargedNotConfirmed marks the paid-but-unconfirmed state: the
	// gateway charge succeeded but the booking confirmation did not. A real
	// charge exists, so this is never reported as a plain failure.
	ErrPaymentChargedNotConfirmed = errors.New("booking: payment charged but booking not confirmed")

	// ErrPaymentDeclined is a gateway rejection before any charge happened.
	ErrPaymentDeclined = errors.New("payment: declined by gateway")

	// ErrAssignmentTargetMissing rejects an orphan assignment whose chosen
	// event cannot be resolved.
	ErrAssignmentTargetMissing = errors.New("ticket: assignment target event does not exist")

	ErrSessionNotFound  = errors.New("booking: session not found or expired")
	ErrEventNotFound    = errors.New("event: not found")
	ErrEventNotBookable = errors.New("event: not open for booking")
	ErrTicketNotFound   = errors.New("ticket: not found")
	ErrTicketNotUsable  = errors.New("ticket: already used, cancelled or expired")
)

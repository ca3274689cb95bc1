package helper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"event_manager/logger"
	"event_manager/model"
	"event_manager/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingService drives a booking session through
// Initiated -> PaymentPending -> Confirmed | Failed. Terminal sessions are
// never resumed; a failed checkout restarts from Initiate.
type BookingService struct {
	DB       *gorm.DB
	Sessions SessionStore
	Seats    SeatHolder
	Gateway  PaymentGateway

	// ServiceFeeRate is applied to paid events only; free events carry no fee.
	ServiceFeeRate decimal.Decimal
}

func NewBookingService(db *gorm.DB, sessions SessionStore, seats SeatHolder, gateway PaymentGateway) *BookingService {
	return &BookingService{
		DB:             db,
		Sessions:       sessions,
		Seats:          seats,
		Gateway:        gateway,
		ServiceFeeRate: decimal.NewFromFloat(0.05),
	}
}

// Initiate reserves a seat tentatively and opens a session in Initiated.
// The hold is time-bounded; if the customer walks away the TTL releases it.
func (s *BookingService) Initiate(ctx context.Context, eventID, userID uint) (*model.BookingSession, error) {
	var event model.Event
	if err := s.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.Status != model.EventPublished {
		return nil, ErrEventNotBookable
	}
	if event.Seating.AvailableSeats < 1 {
		return nil, ErrSeatUnavailable
	}

	session := &model.BookingSession{
		ID:        utils.NewBookingCode(),
		EventID:   event.ID,
		UserID:    userID,
		State:     model.SessionInitiated,
		Currency:  event.Pricing.Currency,
		CreatedAt: time.Now(),
	}

	// Walk the unsold seat numbers until a hold sticks. Collisions only mean
	// another in-flight session beat us to that seat, not that the event is
	// full, so keep going until the numbering runs out.
	sold := event.Seating.TotalSeats - event.Seating.AvailableSeats
	for idx := sold + 1; idx <= event.Seating.TotalSeats; idx++ {
		seat := fmt.Sprintf("S%d", idx)
		if err := s.Seats.HoldSeat(ctx, event.ID, seat, session.ID); err == nil {
			session.SeatNumber = seat
			break
		} else if !errors.Is(err, ErrSeatUnavailable) {
			return nil, err
		}
	}
	if session.SeatNumber == "" {
		return nil, ErrSeatUnavailable
	}

	amount := decimal.Zero
	if event.Pricing.Type == model.PricingPaid {
		amount = event.Pricing.Amount
	}
	session.Fees = amount.Mul(s.ServiceFeeRate).Round(2)
	session.TotalAmount = amount.Add(session.Fees)

	if err := s.Sessions.Save(ctx, session); err != nil {
		s.Seats.ReleaseSeat(ctx, event.ID, session.SeatNumber)
		return nil, err
	}

	return session, nil
}

// ProcessPayment charges the gateway for the session total. The first call
// moves the session past order review into PaymentPending; a decline or a
// timed-out call fails the session and frees the seat.
func (s *BookingService) ProcessPayment(ctx context.Context, input model.ProcessPaymentInput) (*model.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if session.EventID != input.EventID {
		return nil, fmt.Errorf("booking: session %s does not belong to event %d", session.ID, input.EventID)
	}

	if session.State == model.SessionInitiated {
		// Order review passed; no network call for this transition.
		if err := session.Transition(model.SessionPaymentPending); err != nil {
			return nil, err
		}
		if err := s.Sessions.Save(ctx, session); err != nil {
			return nil, err
		}
	} else if session.State != model.SessionPaymentPending {
		return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, session.State, model.SessionPaymentPending)
	}

	if !input.Amount.IsZero() && !input.Amount.Equal(session.TotalAmount) {
		return nil, fmt.Errorf("booking: payment amount %s does not match session total %s", input.Amount, session.TotalAmount)
	}

	charge, err := s.Gateway.Charge(ctx, model.GatewayChargeRequest{
		Amount:    session.TotalAmount,
		Currency:  session.Currency,
		Method:    input.PaymentMethod,
		Details:   input.PaymentDetails,
		Reference: session.ID,
	})
	if err != nil {
		if errors.Is(err, ErrPaymentDeclined) || isTimeout(err) {
			s.failSession(ctx, session)
			return nil, err
		}
		// Transient transport failure before the deadline: the session is
		// untouched and the customer may retry the payment call.
		return nil, err
	}

	session.PaymentID = utils.NewPaymentCode()
	session.TxnID = charge.TransactionID
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Confirm finalizes the booking: one transaction decrements the seat counter
// and creates the ticket, so two sessions can never both take the last seat.
// The loser of that race gets ErrSeatUnavailable. Any other failure after
// the charge is reported as ErrPaymentChargedNotConfirmed, never as a plain
// failure, because real money moved.
func (s *BookingService) Confirm(ctx context.Context, input model.ConfirmBookingInput) (*model.Ticket, *model.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, input.BookingID)
	if err != nil {
		return nil, nil, err
	}
	if session.EventID != input.EventID {
		return nil, nil, fmt.Errorf("booking: session %s does not belong to event %d", session.ID, input.EventID)
	}
	if session.State != model.SessionPaymentPending || session.PaymentID == "" {
		return nil, nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, session.State, model.SessionConfirmed)
	}
	if session.PaymentID != input.PaymentID {
		return nil, nil, fmt.Errorf("booking: payment id does not match session %s", session.ID)
	}

	ticket, err := s.confirmInTx(session, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, ErrSeatUnavailable) {
			s.failSession(ctx, session)
			return nil, session, ErrSeatUnavailable
		}
		// The charge already happened; flag the mismatch for manual
		// reconciliation and leave the session confirmable by support.
		logger.WithFields(map[string]interface{}{
			"bookingId":     session.ID,
			"paymentId":     session.PaymentID,
			"transactionId": session.TxnID,
			"eventId":       session.EventID,
		}).Errorf("payment charged but booking not confirmed: %v", err)
		return nil, session, fmt.Errorf("%w: %v", ErrPaymentChargedNotConfirmed, err)
	}

	if err := session.Transition(model.SessionConfirmed); err != nil {
		return nil, session, err
	}
	if err := s.Seats.MarkSeatSold(ctx, session.EventID, session.SeatNumber, session.ID); err != nil {
		logger.Warnf("seat %s could not be marked sold for %s: %v", session.SeatNumber, session.ID, err)
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		// A stale PAYMENT_PENDING copy must not outlive the minted ticket, or
		// a confirm retry would decrement a second seat for the same charge.
		if delErr := s.Sessions.Delete(ctx, session.ID); delErr != nil {
			logger.WithFields(map[string]interface{}{
				"bookingId":  session.ID,
				"paymentId":  session.PaymentID,
				"ticketCode": ticket.TicketCode,
			}).Errorf("confirmed session could not be saved or deleted: %v", err)
			return nil, session, fmt.Errorf("%w: %v", ErrPaymentChargedNotConfirmed, err)
		}
	}

	return ticket, session, nil
}

func (s *BookingService) confirmInTx(session *model.BookingSession, paymentMethod string) (*model.Ticket, error) {
	var ticket *model.Ticket

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Event{}).
			Where("id = ? AND seating_available_seats > 0", session.EventID).
			UpdateColumn("seating_available_seats", gorm.Expr("seating_available_seats - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSeatUnavailable
		}

		now := time.Now()
		code := utils.NewTicketCode()

		qr, err := utils.GenerateQRCode(code, 256)
		if err != nil {
			// A ticket without a rendered QR is still a valid ticket.
			logger.Warnf("qr generation failed for %s: %v", code, err)
		}

		var userID *uint
		if session.UserID != 0 {
			userID = utils.Ptr(session.UserID)
		}

		ticket = &model.Ticket{
			TicketCode: code,
			EventID:    utils.Ptr(session.EventID),
			UserID:     userID,
			SeatNumber: session.SeatNumber,
			Status:     model.TicketBooked,
			IssuedAt:   now,
			QRCode:     qr,
			Payment: model.PaymentRecord{
				Amount:        session.TotalAmount,
				Currency:      session.Currency,
				Status:        model.PaymentCompleted,
				Method:        paymentMethod,
				TransactionID: session.TxnID,
				PaymentDate:   &now,
			},
		}
		return tx.Create(ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Cancel releases an abandoned session: the seat hold is returned and the
// session discarded. Cancelling an unknown or expired session is not an
// error; the TTL may have beaten the caller to it.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	session, err := s.Sessions.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if !session.State.IsTerminal() {
		s.Seats.ReleaseSeat(ctx, session.EventID, session.SeatNumber)
	}
	return s.Sessions.Delete(ctx, bookingID)
}

func (s *BookingService) failSession(ctx context.Context, session *model.BookingSession) {
	if session.State.CanTransition(model.SessionFailed) {
		session.Transition(model.SessionFailed)
	}
	s.Seats.ReleaseSeat(ctx, session.EventID, session.SeatNumber)
	s.Sessions.Save(ctx, session)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

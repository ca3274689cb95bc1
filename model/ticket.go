package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TicketBooked    = "BOOKED"
	TicketUsed      = "USED"
	TicketCancelled = "CANCELLED"
	TicketExpired   = "EXPIRED"
)

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

// PaymentRecord is the payment sub-record carried by every ticket.
type PaymentRecord struct {
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	Method        string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
}

// Ticket weakly references Event and User: both are nullable and set to NULL
// when the referenced row disappears, which is what makes a ticket an orphan.
// Tickets are never hard-deleted; cancellation is a status transition.
type Ticket struct {
	DTO
	TicketCode  string        `gorm:"size:20;uniqueIndex" json:"ticketCode"`
	EventID     *uint         `gorm:"default:null" json:"eventId"`
	Event       *Event        `gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL" json:"-"`
	UserID      *uint         `gorm:"default:null" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	SeatNumber  string        `json:"seatNumber"`
	Status      string        `gorm:"not null;default:'BOOKED'" json:"status"`
	IssuedAt    time.Time     `json:"issuedAt"`
	UsedAt      *time.Time    `json:"usedAt,omitempty"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
	ExpiredAt   *time.Time    `json:"expiredAt,omitempty"`
	Payment     PaymentRecord `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	QRCode      []byte        `json:"-"`
}

// IsOrphan is computed from the reference fields, never stored. A ticket
// stays orphan regardless of its status until both axes resolve again.
func (t *Ticket) IsOrphan() bool {
	return t.EventID == nil || t.UserID == nil
}

// IsTerminal reports whether the ticket status admits no further transition.
func IsTerminalTicketStatus(status string) bool {
	return status == TicketCancelled || status == TicketExpired
}

type FilterTicketInput struct {
	Pagination
	Status  string `json:"status" validate:"omitempty,oneof=all booked used cancelled expired orphan"`
	EventID uint   `json:"eventId" validate:"omitempty,gt=0"`
}

// TicketStatistics feeds the admin dashboard cards.
type TicketStatistics struct {
	StatusCounts map[string]int64 `json:"statusCounts"`
	OrphanCount  int64            `json:"orphanCount"`
	Total        int64            `json:"total"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventDraft     = "DRAFT"
	EventPublished = "PUBLISHED"
	EventCancelled = "CANCELLED"
	EventCompleted = "COMPLETED"
)

const (
	PricingFree = "FREE"
	PricingPaid = "PAID"
)

type Venue struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Capacity int    `json:"capacity"`
}

type Seating struct {
	TotalSeats     int `json:"totalSeats"`
	AvailableSeats int `json:"availableSeats"`
}

type Pricing struct {
	Type     string          `json:"type"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Currency string          `json:"currency"`
}

// Event owns its seating counters exclusively. Tickets only reference it.
// Events are never hard-deleted; lifecycle is driven through Status.
type Event struct {
	DTO
	Title       string    `gorm:"not null" validate:"required" json:"title"`
	Slug        string    `gorm:"size:160;uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `gorm:"not null" json:"date"`
	Status      string    `gorm:"not null;default:'DRAFT'" json:"status"`
	Venue       Venue     `gorm:"embedded;embeddedPrefix:venue_" json:"venue"`
	Seating     Seating   `gorm:"embedded;embeddedPrefix:seating_" json:"seating"`
	Pricing     Pricing   `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
}

// EventInput is the candidate record submitted by the organizer form. It is
// what the capacity validator normalizes; the persisted Event is built from
// the normalized copy, never from the raw input.
type EventInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
	Venue       Venue     `json:"venue"`
	Seating     Seating   `json:"seating"`
	Pricing     Pricing   `json:"pricing"`
}

type FilterEventInput struct {
	Pagination
	Status   string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
	Category string `json:"category"`
}

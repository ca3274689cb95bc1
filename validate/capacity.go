package validate

import (
	"strings"

	"event_manager/model"

	"github.com/shopspring/decimal"
)

// Violation is a machine-readable capacity or pricing rule failure. The
// dashboard shows the first one inline; the full list is always computed so
// each rule stays independently testable.
type Violation string

const (
	MissingCategory       Violation = "MissingCategory"
	MissingCountry        Violation = "MissingCountry"
	InvalidCapacity       Violation = "InvalidCapacity"
	InvalidTotalSeats     Violation = "InvalidTotalSeats"
	SeatsExceedCapacity   Violation = "SeatsExceedCapacity"
	InvalidAvailableSeats Violation = "InvalidAvailableSeats"
	AvailableExceedsTotal Violation = "AvailableExceedsTotal"
	InvalidPrice          Violation = "InvalidPrice"
)

// ValidateEventSetup checks a candidate event record against the capacity
// and pricing rules and returns a normalized copy plus every violation found.
// The input is never mutated. Rules are ordered the way the form reports
// them, but each predicate is evaluated on its own, not short-circuited.
//
// Relational rules (5 and 7) are skipped while their operands are themselves
// invalid, so a record never collects a cross-field violation built on
// garbage values.
func ValidateEventSetup(in model.EventInput) (model.EventInput, []Violation) {
	out := in
	var violations []Violation

	if strings.TrimSpace(in.Category) == "" {
		violations = append(violations, MissingCategory)
	}
	if strings.TrimSpace(in.Venue.Country) == "" {
		violations = append(violations, MissingCountry)
	}

	capacityValid := in.Venue.Capacity >= 1
	if !capacityValid {
		violations = append(violations, InvalidCapacity)
	}

	totalValid := in.Seating.TotalSeats >= 1
	if !totalValid {
		violations = append(violations, InvalidTotalSeats)
	}

	if capacityValid && totalValid && in.Seating.TotalSeats > in.Venue.Capacity {
		violations = append(violations, SeatsExceedCapacity)
	}

	availableValid := in.Seating.AvailableSeats >= 0
	if !availableValid {
		violations = append(violations, InvalidAvailableSeats)
	}

	if availableValid && totalValid && in.Seating.AvailableSeats > in.Seating.TotalSeats {
		violations = append(violations, AvailableExceedsTotal)
	}

	switch strings.ToUpper(in.Pricing.Type) {
	case model.PricingPaid:
		out.Pricing.Type = model.PricingPaid
		if !in.Pricing.Amount.IsPositive() {
			violations = append(violations, InvalidPrice)
		}
	case model.PricingFree, "":
		// Free events always normalize to a zero amount.
		out.Pricing.Type = model.PricingFree
		out.Pricing.Amount = decimal.Zero
	default:
		violations = append(violations, InvalidPrice)
	}

	return out, violations
}

// NormalizeSeating applies the capacity cascade: totalSeats is clamped to
// capacity, then availableSeats to totalSeats. Pure and idempotent; the form
// calls it on every field change, and ValidateEventSetup remains the
// authoritative gate at submission time.
func NormalizeSeating(capacity, totalSeats, availableSeats int) (int, int) {
	if capacity >= 1 && totalSeats > capacity {
		totalSeats = capacity
	}
	if availableSeats > totalSeats {
		availableSeats = totalSeats
	}
	return totalSeats, availableSeats
}

// ApplyCapacityCascade runs the cascade over a whole candidate record.
func ApplyCapacityCascade(in model.EventInput) model.EventInput {
	out := in
	out.Seating.TotalSeats, out.Seating.AvailableSeats = NormalizeSeating(
		in.Venue.Capacity, in.Seating.TotalSeats, in.Seating.AvailableSeats)
	if strings.ToUpper(out.Pricing.Type) != model.PricingPaid {
		out.Pricing.Amount = decimal.Zero
	}
	return out
}

package validate

import (
	"testing"
	"time"

	"event_manager/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventInput() model.EventInput {
	return model.EventInput{
		Title:    "Summer Fest",
		Category: "music",
		Date:     time.Now().Add(48 * time.Hour),
		Status:   model.EventPublished,
		Venue: model.Venue{
			Name:     "Riverside Hall",
			Country:  "DE",
			Capacity: 100,
		},
		Seating: model.Seating{
			TotalSeats:     80,
			AvailableSeats: 80,
		},
		Pricing: model.Pricing{
			Type:     model.PricingPaid,
			Amount:   decimal.NewFromInt(25),
			Currency: "EUR",
		},
	}
}

func TestValidateEventSetup_ValidRecord(t *testing.T) {
	normalized, violations := ValidateEventSetup(validEventInput())

	assert.Empty(t, violations)
	assert.Equal(t, 80, normalized.Seating.TotalSeats)
	assert.True(t, normalized.Pricing.Amount.Equal(decimal.NewFromInt(25)))
}

func TestValidateEventSetup_RuleTable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.EventInput)
		want   Violation
	}{
		{"missing category", func(in *model.EventInput) { in.Category = "  " }, MissingCategory},
		{"missing country", func(in *model.EventInput) { in.Venue.Country = "" }, MissingCountry},
		{"zero capacity", func(in *model.EventInput) { in.Venue.Capacity = 0 }, InvalidCapacity},
		{"negative capacity", func(in *model.EventInput) { in.Venue.Capacity = -3 }, InvalidCapacity},
		{"zero total seats", func(in *model.EventInput) { in.Seating.TotalSeats = 0 }, InvalidTotalSeats},
		{"seats exceed capacity", func(in *model.EventInput) {
			in.Venue.Capacity = 100
			in.Seating.TotalSeats = 120
			in.Seating.AvailableSeats = 100
		}, SeatsExceedCapacity},
		{"negative available", func(in *model.EventInput) { in.Seating.AvailableSeats = -1 }, InvalidAvailableSeats},
		{"available exceeds total", func(in *model.EventInput) {
			in.Seating.TotalSeats = 50
			in.Seating.AvailableSeats = 60
		}, AvailableExceedsTotal},
		{"paid with zero amount", func(in *model.EventInput) {
			in.Pricing.Type = model.PricingPaid
			in.Pricing.Amount = decimal.Zero
		}, InvalidPrice},
		{"paid with negative amount", func(in *model.EventInput) {
			in.Pricing.Type = model.PricingPaid
			in.Pricing.Amount = decimal.NewFromInt(-5)
		}, InvalidPrice},
		{"unknown pricing type", func(in *model.EventInput) { in.Pricing.Type = "DONATION" }, InvalidPrice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validEventInput()
			tc.mutate(&in)

			_, violations := ValidateEventSetup(in)
			assert.Contains(t, violations, tc.want)
		})
	}
}

func TestValidateEventSetup_PredicatesAreIndependent(t *testing.T) {
	in := validEventInput()
	in.Category = ""
	in.Venue.Country = ""
	in.Pricing.Amount = decimal.Zero

	_, violations := ValidateEventSetup(in)

	// Every failing rule reports, not just the first one.
	assert.Contains(t, violations, MissingCategory)
	assert.Contains(t, violations, MissingCountry)
	assert.Contains(t, violations, InvalidPrice)
}

func TestValidateEventSetup_RelationalRulesSkipGarbageOperands(t *testing.T) {
	in := validEventInput()
	in.Venue.Capacity = 0
	in.Seating.TotalSeats = 0
	in.Seating.AvailableSeats = -2

	_, violations := ValidateEventSetup(in)

	assert.Contains(t, violations, InvalidCapacity)
	assert.Contains(t, violations, InvalidTotalSeats)
	assert.Contains(t, violations, InvalidAvailableSeats)
	assert.NotContains(t, violations, SeatsExceedCapacity)
	assert.NotContains(t, violations, AvailableExceedsTotal)
}

func TestValidateEventSetup_FreeCoercesAmountToZero(t *testing.T) {
	in := validEventInput()
	in.Pricing.Type = model.PricingFree
	in.Pricing.Amount = decimal.NewFromInt(10)

	normalized, violations := ValidateEventSetup(in)

	require.Empty(t, violations)
	assert.True(t, normalized.Pricing.Amount.IsZero())
	// input untouched
	assert.True(t, in.Pricing.Amount.Equal(decimal.NewFromInt(10)))
}

func TestValidateEventSetup_FreeWithZeroAmountAccepted(t *testing.T) {
	in := validEventInput()
	in.Pricing.Type = model.PricingFree
	in.Pricing.Amount = decimal.Zero

	_, violations := ValidateEventSetup(in)
	assert.Empty(t, violations)
}

func TestNormalizeSeating_Clamps(t *testing.T) {
	total, available := NormalizeSeating(100, 120, 110)
	assert.Equal(t, 100, total)
	assert.Equal(t, 100, available)

	total, available = NormalizeSeating(50, 40, 45)
	assert.Equal(t, 40, total)
	assert.Equal(t, 40, available)

	total, available = NormalizeSeating(200, 150, 80)
	assert.Equal(t, 150, total)
	assert.Equal(t, 80, available)
}

func TestNormalizeSeating_Idempotent(t *testing.T) {
	cases := [][3]int{
		{100, 120, 110},
		{50, 40, 45},
		{10, 10, 10},
		{1, 1, 0},
	}

	for _, c := range cases {
		t1, a1 := NormalizeSeating(c[0], c[1], c[2])
		t2, a2 := NormalizeSeating(c[0], t1, a1)
		assert.Equal(t, t1, t2)
		assert.Equal(t, a1, a2)
	}
}

func TestApplyCapacityCascade_Idempotent(t *testing.T) {
	in := validEventInput()
	in.Seating.TotalSeats = 150
	in.Seating.AvailableSeats = 140
	in.Pricing.Type = model.PricingFree
	in.Pricing.Amount = decimal.NewFromInt(3)

	once := ApplyCapacityCascade(in)
	twice := ApplyCapacityCascade(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, 100, once.Seating.TotalSeats)
	assert.Equal(t, 100, once.Seating.AvailableSeats)
	assert.True(t, once.Pricing.Amount.IsZero())
}

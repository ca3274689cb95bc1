package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event_manager/database"
	"event_manager/model"
	"event_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Event{}, &model.Ticket{}))

	database.DB = db
	return db
}

func postJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func eventPayload() map[string]any {
	return map[string]any{
		"title":    "Summer Fest",
		"category": "music",
		"date":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"status":   "PUBLISHED",
		"venue": map[string]any{
			"name":     "Riverside Hall",
			"country":  "DE",
			"capacity": 100,
		},
		"seating": map[string]any{
			"totalSeats":     80,
			"availableSeats": 80,
		},
		"pricing": map[string]any{
			"type":     "PAID",
			"amount":   25.5,
			"currency": "EUR",
		},
	}
}

func TestCreateEvent(t *testing.T) {
	db := setupHandlerDB(t)

	app := fiber.New()
	app.Post("/events", validate.CreateEvent(), CreateEvent)

	resp := postJSON(t, app, http.MethodPost, "/events", eventPayload())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var event model.Event
	require.NoError(t, db.First(&event).Error)

	assert.Equal(t, "Summer Fest", event.Title)
	assert.Equal(t, "summer-fest", event.Slug)
	assert.Equal(t, "music", event.Category)
	assert.Equal(t, model.EventPublished, event.Status)
	assert.Equal(t, "DE", event.Venue.Country)
	assert.Equal(t, 100, event.Venue.Capacity)
	assert.Equal(t, 80, event.Seating.TotalSeats)
	assert.Equal(t, 80, event.Seating.AvailableSeats)
	assert.Equal(t, model.PricingPaid, event.Pricing.Type)
	assert.True(t, event.Pricing.Amount.Equal(decimal.NewFromFloat(25.5)))
	assert.Equal(t, "EUR", event.Pricing.Currency)
}

func TestCreateEvent_ViolationsRejected(t *testing.T) {
	db := setupHandlerDB(t)

	app := fiber.New()
	app.Post("/events", validate.CreateEvent(), CreateEvent)

	payload := eventPayload()
	payload["seating"] = map[string]any{"totalSeats": 120, "availableSeats": 100}

	resp := postJSON(t, app, http.MethodPost, "/events", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.Event{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEditEvent(t *testing.T) {
	db := setupHandlerDB(t)

	existing := model.Event{
		Title:    "Old Title",
		Slug:     "old-title",
		Category: "theatre",
		Date:     time.Now().Add(24 * time.Hour),
		Status:   model.EventDraft,
		Venue:    model.Venue{Name: "Old Hall", Country: "AT", Capacity: 60},
		Seating:  model.Seating{TotalSeats: 50, AvailableSeats: 50},
		Pricing:  model.Pricing{Type: model.PricingFree, Amount: decimal.Zero, Currency: "EUR"},
	}
	require.NoError(t, db.Create(&existing).Error)

	app := fiber.New()
	app.Put("/events/:eventId", validate.EditEvent("eventId"), EditEvent)

	resp := postJSON(t, app, http.MethodPut, fmt.Sprintf("/events/%d", existing.ID), eventPayload())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated model.Event
	require.NoError(t, db.First(&updated, existing.ID).Error)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Summer Fest", updated.Title)
	assert.Equal(t, model.EventPublished, updated.Status)
	assert.Equal(t, 100, updated.Venue.Capacity)
	assert.Equal(t, model.PricingPaid, updated.Pricing.Type)
	assert.True(t, updated.Pricing.Amount.Equal(decimal.NewFromFloat(25.5)))
	// The slug is minted at creation and survives edits.
	assert.Equal(t, "old-title", updated.Slug)
}

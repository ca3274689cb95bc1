package validate

import (
	"errors"
	"strconv"
	"strings"

	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent parses and gates an organizer event submission. The capacity
// validator runs server-side no matter what the form already clamped; a
// violation list rejects the request before any handler code runs.
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, resp := gateEventInput(c)
		if !ok {
			return resp
		}
		return c.Next()
	}
}

// EditEvent validates an update the same way a create is validated; the
// client-side cascade is advisory only.
func EditEvent(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Path parameter must be a number", errors.New("params invalid"))
		}
		c.Locals("inputId", id)

		ok, resp := gateEventInput(c)
		if !ok {
			return resp
		}
		return c.Next()
	}
}

// gateEventInput parses the body, runs struct validation and the capacity
// rule engine, and stashes the normalized record in locals. When ok is false
// the response has already been written.
func gateEventInput(c *fiber.Ctx) (bool, error) {
	var input model.EventInput
	if err := c.BodyParser(&input); err != nil {
		return false, utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	normalizeEventInput(&input)

	if err := validate.Struct(input); err != nil {
		return false, utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	normalized, violations := ValidateEventSetup(input)
	if len(violations) > 0 {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":     "error",
			"message":    "Event setup is invalid",
			"violations": violations,
		})
	}

	c.Locals("input", normalized)
	return true, nil
}

func normalizeEventInput(input *model.EventInput) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.Status = strings.ToUpper(strings.TrimSpace(input.Status))
	input.Pricing.Type = strings.ToUpper(strings.TrimSpace(input.Pricing.Type))
	input.Pricing.Currency = strings.ToUpper(strings.TrimSpace(input.Pricing.Currency))
	if input.Status == "" {
		input.Status = model.EventDraft
	}
	if input.Pricing.Currency == "" {
		input.Pricing.Currency = "USD"
	}
}

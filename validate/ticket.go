package validate

import (
	"errors"
	"strconv"
	"strings"

	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

type AssignOrphanInput struct {
	EventID uint `json:"eventId" validate:"required,gt=0"`
}

// AssignOrphan gates the admin assignment form. A missing event choice is a
// local error that blocks submission, so it never reaches the workflow.
func AssignOrphan(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Path parameter must be a number", errors.New("params invalid"))
		}
		c.Locals("inputId", id)

		var input AssignOrphanInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponseWithKey(c, fiber.StatusBadRequest, "An event must be chosen", err, "AssignmentTargetMissing")
		}
		c.Locals("input", input)
		return c.Next()
	}
}

// FilterTickets reads the admin listing query params.
func FilterTickets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := model.FilterTicketInput{
			Status: strings.ToLower(c.Query("status", "all")),
		}
		if page := c.QueryInt("page", 1); page >= 1 {
			input.Page = utils.Ptr(page)
		}
		if limit := c.QueryInt("limit", 20); limit >= 1 {
			input.Limit = utils.Ptr(limit)
		}
		if eventID := c.QueryInt("eventId", 0); eventID > 0 {
			input.EventID = uint(eventID)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

package handler

import (
	"errors"

	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"event_manager/validate"

	"github.com/gofiber/fiber/v2"
)

// GetAdminTickets serves the reconciliation dashboard: filtered ticket rows
// plus the status/orphan counters in one response.
func GetAdminTickets(c *fiber.Ctx) error {
	input := c.Locals("input").(model.FilterTicketInput)

	tickets, total, err := helper.ListTickets(input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list tickets", err)
	}

	stats, err := helper.GetTicketStatistics()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not compute statistics", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"tickets":    tickets,
		"statistics": stats,
		"pagination": model.ResponseCustom{
			Rows:       nil,
			Limit:      input.Limit,
			Page:       input.Page,
			TotalCount: total,
		},
	})
}

// AssignOrphanTicket points an orphan at an existing event.
func AssignOrphanTicket(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	input := c.Locals("input").(validate.AssignOrphanInput)

	ticket, err := helper.AssignOrphanTicket(uint(id), input.EventID)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTicketNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, helper.ErrAssignmentTargetMissing):
			return utils.ErrorResponseWithKey(c, fiber.StatusBadRequest, "Chosen event does not exist", err, "AssignmentTargetMissing")
		case errors.Is(err, helper.ErrNotOrphan):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Ticket is not an orphan", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not assign ticket", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// CancelOrphanTicket cancels an orphan; repeating the call on an already
// cancelled ticket succeeds without touching it.
func CancelOrphanTicket(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	ticket, err := helper.CancelOrphanTicket(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTicketNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, helper.ErrNotOrphan):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Ticket is not an orphan", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not cancel ticket", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// CheckInTicket scans a ticket at the door.
func CheckInTicket(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing ticket code", errors.New("params invalid"))
	}

	ticket, err := helper.CheckInTicket(code)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTicketNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, helper.ErrTicketNotUsable):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Ticket already used, cancelled or expired", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not check in ticket", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// CancelTicket is the ordinary booked -> cancelled transition outside the
// orphan workflow.
func CancelTicket(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	ticket, err := helper.CancelTicket(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrTicketNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, helper.ErrTicketNotUsable):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Ticket is not cancellable", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not cancel ticket", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

package handler

import (
	"errors"

	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

var bookingService *helper.BookingService

func SetupBooking(s *helper.BookingService) {
	bookingService = s
}

// InitiateBooking opens a checkout session and places the tentative seat
// hold.
func InitiateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.InitiateBookingInput)
	claim := helper.GetClaimsFromToken(c)

	session, err := bookingService.Initiate(c.Context(), input.EventID, claim.UserId)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrEventNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", err)
		case errors.Is(err, helper.ErrEventNotBookable):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Event is not open for booking", err)
		case errors.Is(err, helper.ErrSeatUnavailable):
			return utils.ErrorResponseWithKey(c, fiber.StatusConflict, "No seats available", err, "SeatUnavailable")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not initiate booking", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bookingSession": session,
	})
}

// ConfirmBooking finalizes a paid session into a ticket.
func ConfirmBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ConfirmBookingInput)

	ticket, session, err := bookingService.Confirm(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrSessionNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Booking session not found or expired", err)
		case errors.Is(err, helper.ErrSeatUnavailable):
			return utils.ErrorResponseWithKey(c, fiber.StatusConflict, "Seat was taken by another booking", err, "SeatUnavailable")
		case errors.Is(err, helper.ErrPaymentChargedNotConfirmed):
			// A real charge occurred. This must never look like a plain
			// failure to the caller.
			return utils.ErrorResponseWithKey(c, fiber.StatusConflict,
				"Payment was charged but the booking could not be confirmed; support will reconcile it",
				err, "PaymentChargedButNotConfirmed")
		case errors.Is(err, model.ErrInvalidTransition):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Booking session is not awaiting confirmation", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not confirm booking", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"booking": session,
		"ticket":  ticket,
	})
}

// CancelBooking releases an abandoned session's seat hold.
func CancelBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")
	if bookingID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing booking id", errors.New("params invalid"))
	}

	if err := bookingService.Cancel(c.Context(), bookingID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not cancel booking", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"cancelled": true})
}

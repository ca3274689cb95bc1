package handler

import (
	"errors"

	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// ProcessPayment charges the gateway for a pending session. A transient
// transport error leaves the session untouched so the customer can retry;
// a decline or timeout fails it.
func ProcessPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ProcessPaymentInput)

	session, err := bookingService.ProcessPayment(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrSessionNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Booking session not found or expired", err)
		case errors.Is(err, helper.ErrPaymentDeclined):
			return utils.ErrorResponseWithKey(c, fiber.StatusPaymentRequired, "Payment was declined", err, "PaymentDeclined")
		case errors.Is(err, model.ErrInvalidTransition):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Booking session cannot take a payment", err)
		}
		return utils.ErrorResponseWithKey(c, fiber.StatusServiceUnavailable, "Payment could not be processed, try again", err, "TransientNetworkError")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"paymentId": session.PaymentID,
		"payment": fiber.Map{
			"amount":        session.TotalAmount,
			"currency":      session.Currency,
			"status":        model.PaymentCompleted,
			"transactionId": session.TxnID,
		},
	})
}

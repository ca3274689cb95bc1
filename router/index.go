package router

import (
	"event_manager/handler"
	"event_manager/middleware"
	"event_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)

	event := v1.Group("/events", logger.New())
	event.Get("/", handler.GetEvents)
	event.Get("/favorites", middleware.Protected(), handler.GetFavoriteEvents)
	event.Get("/:eventId", validate.GetById("eventId"), handler.GetEventById)
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.EditEvent("eventId"), handler.EditEvent)
	event.Post("/:eventId/favorite", middleware.Protected(), validate.GetById("eventId"), handler.FavoriteEvent)
	event.Delete("/:eventId/favorite", middleware.Protected(), validate.GetById("eventId"), handler.UnfavoriteEvent)

	booking := v1.Group("/booking", logger.New())
	booking.Post("/initiate", middleware.OptionalJWT(), validate.InitiateBooking(), handler.InitiateBooking)
	booking.Post("/confirm", middleware.OptionalJWT(), validate.ConfirmBooking(), handler.ConfirmBooking)
	booking.Post("/:bookingId/cancel", middleware.OptionalJWT(), handler.CancelBooking)

	payment := v1.Group("/payments", logger.New())
	payment.Post("/process", middleware.OptionalJWT(), validate.ProcessPayment(), handler.ProcessPayment)

	ticket := v1.Group("/tickets", logger.New())
	ticket.Post("/:code/checkin", middleware.Protected(), handler.CheckInTicket)

	admin := ticket.Group("/admin", middleware.Protected(), middleware.AdminOnly())
	admin.Get("/", validate.FilterTickets(), handler.GetAdminTickets)
	admin.Post("/orphans/:ticketId/assign", validate.AssignOrphan("ticketId"), handler.AssignOrphanTicket)
	admin.Post("/orphans/:ticketId/cancel", validate.GetById("ticketId"), handler.CancelOrphanTicket)
	admin.Post("/:ticketId/cancel", validate.GetById("ticketId"), handler.CancelTicket)
}

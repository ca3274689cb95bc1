package main

import (
	"context"
	"time"

	"event_manager/config"
	"event_manager/database"
	"event_manager/handler"
	"event_manager/helper"
	"event_manager/logger"
	"event_manager/router"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	redisClient := utils.NewRedisClient(config.ConfigOr("REDIS_URL", "localhost:6379"))
	defer redisClient.Close()

	holdTTL, err := time.ParseDuration(config.ConfigOr("SEAT_HOLD_TTL", "5m"))
	if err != nil {
		holdTTL = 5 * time.Minute
	}
	sessionTTL, err := time.ParseDuration(config.ConfigOr("BOOKING_SESSION_TTL", "15m"))
	if err != nil {
		sessionTTL = 15 * time.Minute
	}

	sessions := helper.NewRedisSessionStore(redisClient, sessionTTL)
	seats := helper.NewRedisSeatHolder(redisClient, holdTTL)
	gateway := helper.NewPaymentGateway()
	handler.SetupBooking(helper.NewBookingService(database.DB, sessions, seats, gateway))

	prefs := helper.NewPreferenceStore()
	if err := prefs.Init(context.Background(), redisClient); err != nil {
		logger.Fatalf("preference migration failed: %v", err)
	}
	handler.SetupPreferences(prefs)

	helper.StartTicketExpiryScheduler()
	defer helper.StopTicketExpiryScheduler()
	helper.StartEventStatusScheduler()
	defer helper.StopEventStatusScheduler()

	router.SetupRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	logger.Fatalf("%v", app.Listen(":"+config.ConfigOr("PORT", "8002")))
}

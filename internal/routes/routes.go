package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"medrating/internal/handlers"
)

func Setup(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	userHandler *handlers.UserHandler,
	reviewHandler *handlers.ReviewHandler,
	supportHandler *handlers.SupportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP (the bot is the only
	// expected client, but the surface is still public).
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Reference data
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/geopositions", catalogHandler.ListGeoPositions)
	api.Get("/clinics", catalogHandler.ListClinics)
	api.Get("/clinics/rating", catalogHandler.ListClinicsRanked)
	api.Get("/clinics/:id", catalogHandler.GetClinic)

	// Users and doctors. Static segments must be registered before the
	// parametric /users/:id route.
	api.Post("/users", userHandler.Create)
	api.Get("/users/telegram/:telegramID", userHandler.GetByTelegramID)
	api.Get("/users/doctors", userHandler.ListDoctors)
	api.Get("/users/doctors/rating", userHandler.ListDoctorsRanked)
	api.Get("/users/doctors/category/:id", userHandler.ListDoctorsByCategory)
	api.Get("/users/:id", userHandler.Get)
	api.Patch("/users/:id", userHandler.Update)

	// Reviews
	api.Post("/reviews", reviewHandler.Create)
	api.Get("/reviews", reviewHandler.List)
	api.Get("/reviews/doctor/:id", reviewHandler.ListByDoctor)
	api.Get("/reviews/user/:id", reviewHandler.ListByAuthor)

	// Support tickets
	api.Post("/support-requests", supportHandler.Create)
	api.Get("/support-requests", supportHandler.List)
}

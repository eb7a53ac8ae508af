package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	complaintHandler *handlers.ComplaintHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/", healthHandler.Root)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth: stricter 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Complaints: reads are public, writes need a bearer token
	complaints := api.Group("/complaints")
	complaints.Get("/", complaintHandler.List)
	complaints.Get("/:id", complaintHandler.Get)
	complaints.Post("/", middleware.JWTProtected(cfg), complaintHandler.Create)
	complaints.Delete("/:id", middleware.JWTProtected(cfg), complaintHandler.Delete)

	api.Post("/upload", uploadHandler.Upload)
}

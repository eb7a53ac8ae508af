package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP app is built from. Images may be nil,
// in which case uploads are validated but not stored.
type Deps struct {
	DB       *gorm.DB
	Notifier services.RegistrationNotifier
	Images   storage.ImageStore

	// Extra middleware installed before the routes (e.g. Sentry).
	Middleware []fiber.Handler
}

// New wires services, handlers and middleware into a Fiber app.
func New(cfg *config.Config, deps Deps) *fiber.App {
	tokens := services.NewTokenIssuer(cfg.JWTSecret, services.TokenTTL)

	authService := services.NewAuthService(deps.DB, tokens, deps.Notifier)
	complaintService := services.NewComplaintService(deps.DB)
	uploadService := services.NewUploadService(deps.Images)

	authHandler := handlers.NewAuthHandler(authService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	for _, mw := range deps.Middleware {
		app.Use(mw)
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, authHandler, complaintHandler, uploadHandler, healthHandler)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "request_id", c.GetRespHeader(fiber.HeaderXRequestID), "error", err.Error())
		message = "Server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

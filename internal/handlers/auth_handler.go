package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Register(&req); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return badRequest(c, "Email already exists")
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, verr)
		}
		slog.Error("registration failed", "action", "register", "error", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "Registration successful! Please login.",
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return badRequest(c, "Invalid email or password")
		}
		slog.Error("login failed", "action", "login", "error", err)
		return serverError(c)
	}

	return c.JSON(resp)
}

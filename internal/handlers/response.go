package handlers

import (
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func validationFailed(c *fiber.Ctx, verr *services.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: verr.Error(), Fields: verr.Fields,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func serverError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Server error",
	})
}

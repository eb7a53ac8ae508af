package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Create handles POST /api/complaints
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	complaint, err := h.complaintService.Create(userID, &req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return validationFailed(c, verr)
		}
		slog.Error("complaint creation failed", "action", "create_complaint", "user_id", userID.String(), "error", err)
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ComplaintResponse{
		Message:   "Complaint registered successfully",
		Complaint: complaint,
	})
}

// List handles GET /api/complaints
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	complaints, err := h.complaintService.List()
	if err != nil {
		slog.Error("complaint listing failed", "action", "list_complaints", "error", err)
		return serverError(c)
	}
	return c.JSON(complaints)
}

// Get handles GET /api/complaints/:id
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Complaint not found")
	}

	complaint, err := h.complaintService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return notFound(c, "Complaint not found")
		}
		slog.Error("complaint lookup failed", "action", "get_complaint", "error", err)
		return serverError(c)
	}
	return c.JSON(complaint)
}

// Delete handles DELETE /api/complaints/:id
func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Complaint not found")
	}

	if err := h.complaintService.Delete(id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrComplaintNotFound):
			return notFound(c, "Complaint not found")
		case errors.Is(err, services.ErrNotComplaintOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized to delete this complaint",
			})
		}
		slog.Error("complaint deletion failed", "action", "delete_complaint", "user_id", userID.String(), "error", err)
		return serverError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Complaint deleted successfully"})
}

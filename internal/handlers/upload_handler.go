package handlers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/upload (multipart field "image")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "No image provided")
	}

	f, err := fh.Open()
	if err != nil {
		slog.Error("failed to open upload", "action", "upload_image", "error", err)
		return serverError(c)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read upload", "action", "upload_image", "error", err)
		return serverError(c)
	}

	key, err := h.uploadService.Upload(c.UserContext(), data, fh.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) {
			return badRequest(c, "Unsupported image format. Please upload a JPEG or PNG image.")
		}
		slog.Error("image upload failed", "action", "upload_image", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error uploading image",
		})
	}

	return c.JSON(dto.UploadResponse{
		Message: "Image uploaded successfully",
		Key:     key,
	})
}

package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const banner = "Searching Lost Person API is running..."

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString(banner)
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

package handlers

import (
	"financeiro/internal/dto"
	"financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get godoc
// @Summary Get user settings
// @Description Per-user preferences; defaults are created on first access
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SettingsResponse
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.settingsService.Get(c.Context(), userID)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update user settings
// @Description Partial update: only supplied fields change
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.settingsService.Update(c.Context(), userID, &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

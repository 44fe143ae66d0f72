package handlers

import (
	"financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewDashboardHandler(txService *service.TransactionService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		txService: txService,
		logger:    logger,
	}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Month-to-date expense and income totals, balance and top expense categories
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.txService.MonthlyStats(c.Context(), userID)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

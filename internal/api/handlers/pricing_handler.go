package handlers

import (
	"financeiro/internal/dto"
	"financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PricingHandler struct {
	pricingService *service.PricingService
	logger         *zap.Logger
}

func NewPricingHandler(pricingService *service.PricingService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// Calculate godoc
// @Summary Calculate pricing metrics
// @Description Derive cost, price, markup and margin figures from the six pricing inputs
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body dto.PricingRequest true "Pricing inputs"
// @Security Bearer
// @Success 200 {object} dto.PricingResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/pricing/calculate [post]
func (h *PricingHandler) Calculate(c *fiber.Ctx) error {
	var req dto.PricingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.pricingService.Calculate(&req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(result)
}

// SaveCalculation godoc
// @Summary Save a pricing calculation
// @Description Run the calculator and store inputs and results as history
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body dto.SavePricingRequest true "Named pricing inputs"
// @Security Bearer
// @Success 201 {object} dto.PricingCalculationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/pricing/calculations [post]
func (h *PricingHandler) SaveCalculation(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SavePricingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.pricingService.SaveCalculation(c.Context(), userID, &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListCalculations godoc
// @Summary List saved pricing calculations
// @Tags pricing
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.PricingCalculationResponse
// @Router /api/v1/pricing/calculations [get]
func (h *PricingHandler) ListCalculations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.pricingService.ListCalculations(c.Context(), userID)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

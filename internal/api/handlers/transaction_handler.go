package handlers

import (
	"financeiro/internal/dto"
	"financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List transactions
// @Description List the requester's transactions with filters, pagination and aggregate stats
// @Tags transactions
// @Produce json
// @Param kind query string false "Transaction kind (expense or income, default expense)"
// @Param category query string false "Category filter (default all)"
// @Param status query string false "Status filter (default all)"
// @Param search query string false "Case-insensitive search over description and supplier"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20)"
// @Security Bearer
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	query := &dto.ListTransactionsQuery{
		Kind:     c.Query("kind"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     c.Query("page"),
		PageSize: c.Query("page_size"),
	}

	resp, err := h.txService.List(c.Context(), userID, query)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	resp, err := h.txService.Get(c.Context(), userID, id)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Create godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.Create(c.Context(), userID, c.IP(), &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update a transaction
// @Description Partial update: only supplied fields change
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.Update(c.Context(), userID, id, c.IP(), &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Security Bearer
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	if err := h.txService.Delete(c.Context(), userID, id, c.IP()); err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

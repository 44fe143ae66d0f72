package handlers

import (
	"financeiro/internal/dto"
	"financeiro/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	userService  *service.UserService
	auditService *service.AuditService
	logger       *zap.Logger
}

func NewAdminHandler(userService *service.UserService, auditService *service.AuditService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		auditService: auditService,
		logger:       logger,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} map[string]string
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.userService.List(c.Context())
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path string true "User id"
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}

	resp, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}
	return c.JSON(resp)
}

// CreateUser godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Security Bearer
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	actingUserID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.userService.Create(c.Context(), actingUserID, c.IP(), &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	actingUserID, err := getUserID(c)
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

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.userService.Update(c.Context(), actingUserID, id, c.IP(), &req)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Param id path string true "User id"
// @Security Bearer
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actingUserID, err := getUserID(c)
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

	if err := h.userService.Delete(c.Context(), actingUserID, id, c.IP()); err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListAuditLogs godoc
// @Summary List audit logs
// @Description Audit entries within a day window, optionally filtered by action and user
// @Tags admin
// @Produce json
// @Param days query int false "Window in days (default 7)"
// @Param action query string false "Action filter (default all)"
// @Param user_id query string false "User filter (default all)"
// @Security Bearer
// @Success 200 {array} dto.AuditLogResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/audit-logs [get]
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	query := &dto.AuditLogQuery{
		Days:   c.Query("days"),
		Action: c.Query("action"),
		UserID: c.Query("user_id"),
	}

	resp, err := h.auditService.List(c.Context(), query)
	if err != nil {
		return writeServiceError(c, h.logger, err)
	}

	return c.JSON(resp)
}

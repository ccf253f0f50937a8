package handlers

import (
	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Create account
// @Description Create a new account for the authenticated user
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account data"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security Bearer
// @Router /accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.accountService.Create(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List accounts
// @Description List the user's active accounts with derived balances
// @Tags accounts
// @Produce json
// @Success 200 {array} dto.AccountResponse
// @Security Bearer
// @Router /accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.accountService.ListByOwner(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list accounts")
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account id"})
	}

	resp, err := h.accountService.GetByID(c.Context(), id, userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get account")
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update account
// @Description Rename or recolor an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account id"
// @Param request body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security Bearer
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account id"})
	}

	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.accountService.Update(c.Context(), id, userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update account")
	}

	return c.JSON(resp)
}

// Archive godoc
// @Summary Archive account
// @Description Soft-delete an account; its transaction history is preserved
// @Tags accounts
// @Param id path string true "Account id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Archive(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account id"})
	}

	if err := h.accountService.Archive(c.Context(), id, userID); err != nil {
		return serviceError(c, h.logger, err, "Failed to archive account")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

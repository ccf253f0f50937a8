package handlers

import (
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// List godoc
// @Summary List categories by type
// @Description Built-in categories of the type first, then the user's custom ones
// @Tags categories
// @Produce json
// @Param type query string true "Category type (EXPENSE, INCOME, SELFTRANSFER)"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.categoryService.ListByType(c.Context(), userID, models.CategoryType(c.Query("type")))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list categories")
	}

	return c.JSON(resp)
}

// Create godoc
// @Summary Create custom category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category data"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security Bearer
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.categoryService.Create(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update custom category
// @Description Built-in categories cannot be modified
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param request body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.categoryService.Update(c.Context(), c.Params("id"), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update category")
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete custom category
// @Description Built-in categories cannot be deleted
// @Tags categories
// @Param id path string true "Category id"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.categoryService.Delete(c.Context(), c.Params("id"), userID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete category")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

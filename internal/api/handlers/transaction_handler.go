package handlers

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/service"

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

// Create godoc
// @Summary Create transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.Create(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List transactions by account
// @Description List an account's transactions newest first, optionally bounded by an inclusive date range
// @Tags transactions
// @Produce json
// @Param account_id query string true "Account id"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	from, err := parseQueryDate(c.Query("from"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date"})
	}
	to, err := parseQueryDate(c.Query("to"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date"})
	}

	resp, err := h.txService.ListByAccount(c.Context(), userID, c.Query("account_id"), from, to)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list transactions")
	}

	return c.JSON(resp)
}

// Get godoc
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction id"})
	}

	resp, err := h.txService.GetByID(c.Context(), id, userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get transaction")
	}

	return c.JSON(resp)
}

// Update godoc
// @Summary Update transaction
// @Description Apply a partial patch. For transfer legs the amount, type and category fields are ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction id"})
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.Update(c.Context(), id, userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update transaction")
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete transaction
// @Description Delete a transaction. Deleting a transfer leg removes the whole chain.
// @Tags transactions
// @Param id path string true "Transaction id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction id"})
	}

	if err := h.txService.Delete(c.Context(), id, userID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete transaction")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetChain godoc
// @Summary Get transfer chain
// @Description Get a chain record with its member transactions
// @Tags transfers
// @Produce json
// @Param chainId path string true "Chain id"
// @Success 200 {object} dto.ChainResponse
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /transactions/chain/{chainId} [get]
func (h *TransactionHandler) GetChain(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	chainID, err := uuid.Parse(c.Params("chainId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid chain id"})
	}

	resp, err := h.txService.ListByChain(c.Context(), chainID, userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to get chain")
	}

	return c.JSON(resp)
}

// CreateTransfer godoc
// @Summary Transfer between accounts
// @Description Atomically create the debit leg, credit leg and chain record of a transfer
// @Tags transfers
// @Accept json
// @Produce json
// @Param request body dto.CreateTransferRequest true "Transfer data"
// @Success 201 {object} dto.ChainResponse
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /transfers [post]
func (h *TransactionHandler) CreateTransfer(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req dto.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.CreateTransfer(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create transfer")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// parseQueryDate parses a YYYY-MM-DD query value. End dates cover the whole
// day so the range stays inclusive.
func parseQueryDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

package handlers

import (
	"time"

	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Spending godoc
// @Summary Spending by category
// @Description Sum of expense transactions per category over the date range; transfers excluded
// @Tags stats
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.SpendingResponse
// @Failure 400 {object} map[string]string
// @Security Bearer
// @Router /stats/spending [get]
func (h *StatsHandler) Spending(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date"})
	}
	// Cover the whole end day; the range is inclusive.
	to = to.Add(24*time.Hour - time.Nanosecond)

	resp, err := h.statsService.SpendingByCategory(c.Context(), userID, from, to)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to compute spending")
	}

	return c.JSON(resp)
}

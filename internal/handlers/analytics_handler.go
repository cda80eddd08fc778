package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loadrush/loadrush-backend/internal/services"
)

type AnalyticsHandler struct {
	dashboard *services.DashboardService
	summary   *services.SummaryService
}

func NewAnalyticsHandler(dashboard *services.DashboardService, summary *services.SummaryService) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboard: dashboard,
		summary:   summary,
	}
}

func (h *AnalyticsHandler) GetRevenue(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Revenue())
}

func (h *AnalyticsHandler) GetTrends(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Trends())
}

func (h *AnalyticsHandler) GetUsage(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Usage())
}

func (h *AnalyticsHandler) GetInsights(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"insights": h.dashboard.Insights(),
	})
}

// GetSummary returns an AI-generated narrative of the current dashboard.
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	if h.summary == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "AI summary is not configured",
		})
	}

	narrative, err := h.summary.Narrative(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"summary": narrative,
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/store"
)

type SubscriptionHandler struct {
	subs repositories.SubscriptionRepo
	hub  *store.Hub
}

func NewSubscriptionHandler(subs repositories.SubscriptionRepo, hub *store.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, hub: hub}
}

type createSubscriptionRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	var req createSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	role := models.SubscriptionRole(req.Role)
	if role != models.RoleDriver && role != models.RoleShipper {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be driver or shipper"})
	}

	sub := &models.Subscription{
		UserID: req.UserID,
		Role:   role,
		Status: models.SubscriptionActive,
	}
	if err := h.subs.Create(sub); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.hub.Notify()
	return c.Status(fiber.StatusCreated).JSON(sub)
}

package handlers

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/services"
	"github.com/loadrush/loadrush-backend/internal/store"
)

type LoadHandler struct {
	loads    repositories.LoadRepo
	uploads  *services.BulkUploadService
	backhaul *services.BackhaulService
	hub      *store.Hub
}

func NewLoadHandler(loads repositories.LoadRepo, uploads *services.BulkUploadService, backhaul *services.BackhaulService, hub *store.Hub) *LoadHandler {
	return &LoadHandler{
		loads:    loads,
		uploads:  uploads,
		backhaul: backhaul,
		hub:      hub,
	}
}

type createLoadRequest struct {
	ShipperID   string  `json:"shipper_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
	Rate        float64 `json:"rate"`
}

func (h *LoadHandler) CreateLoad(c *fiber.Ctx) error {
	var req createLoadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Origin == "" || req.Destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "origin and destination are required"})
	}
	if req.Price <= 0 && req.Rate <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a positive price or rate is required"})
	}

	load := &models.Load{
		ShipperID:   req.ShipperID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Weight:      req.Weight,
		Price:       req.Price,
		Rate:        req.Rate,
		Status:      models.StatusAvailable,
	}
	if err := h.loads.Create(load); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	h.hub.Notify()
	return c.Status(fiber.StatusCreated).JSON(load)
}

func (h *LoadHandler) ListLoads(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	loads, err := h.loads.List(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"loads": loads,
		"count": len(loads),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a load through its lifecycle. Raw labels are normalized
// at this boundary; unknown labels are rejected.
func (h *LoadHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	status, ok := models.NormalizeLoadStatus(req.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status: " + req.Status})
	}

	if err := h.loads.UpdateStatus(c.Params("id"), status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	h.hub.Notify()
	return c.JSON(fiber.Map{
		"id":     c.Params("id"),
		"status": status,
	})
}

// BulkUpload accepts a CSV either as a multipart "file" field or as the raw
// request body.
func (h *LoadHandler) BulkUpload(c *fiber.Ctx) error {
	shipperID := c.Query("shipper_id")

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open uploaded file"})
		}
		defer f.Close()

		job, err := h.uploads.Process(file.Filename, shipperID, f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(job)
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no CSV content provided"})
	}

	job, err := h.uploads.Process("inline.csv", shipperID, bytes.NewReader(body))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

func (h *LoadHandler) GetBackhauls(c *fiber.Ctx) error {
	if h.backhaul == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "backhaul finder is not configured",
		})
	}

	suggestions, err := h.backhaul.FindBackhauls(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"suggestions": suggestions,
	})
}

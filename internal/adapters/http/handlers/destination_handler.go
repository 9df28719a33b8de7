package handlers

import (
	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DestinationHandler handles destination CRUD endpoints
type DestinationHandler struct {
	repo repositories.DestinationRepository
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(repo repositories.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{repo: repo}
}

// List returns all destinations
// @Summary List destinations
// @Tags Destinations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Destination
// @Router /api/destinations [get]
func (h *DestinationHandler) List(c *fiber.Ctx) error {
	destinations, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list destinations")
	}
	return c.JSON(destinations)
}

// Get returns one destination
// @Summary Get destination
// @Tags Destinations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Destination ID"
// @Success 200 {object} models.Destination
// @Failure 404
// @Router /api/destinations/{id} [get]
func (h *DestinationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	destination, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}
	return c.JSON(destination)
}

// Create creates a destination
// @Summary Create destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Destination true "Destination"
// @Success 201 {object} models.Destination
// @Router /api/destinations [post]
func (h *DestinationHandler) Create(c *fiber.Ctx) error {
	var destination models.Destination
	if err := c.BodyParser(&destination); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if destination.Name == "" || destination.Country == "" || destination.City == "" {
		return response.BadRequest(c, "Name, country and city are required")
	}

	destination.ID = 0
	if err := h.repo.Create(c.Context(), &destination); err != nil {
		return response.InternalServerError(c, "Failed to create destination")
	}
	return c.Status(fiber.StatusCreated).JSON(destination)
}

// Update updates a destination
// @Summary Update destination
// @Tags Destinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Destination ID"
// @Param body body models.Destination true "Destination"
// @Success 200 {object} models.Destination
// @Failure 404
// @Router /api/destinations/{id} [put]
func (h *DestinationHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	existing, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}

	var destination models.Destination
	if err := c.BodyParser(&destination); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	destination.ID = existing.ID
	destination.CreatedAt = existing.CreatedAt
	if err := h.repo.Update(c.Context(), &destination); err != nil {
		return response.InternalServerError(c, "Failed to update destination")
	}
	return c.JSON(destination)
}

// Delete removes a destination
// @Summary Delete destination
// @Tags Destinations
// @Security BearerAuth
// @Param id path int true "Destination ID"
// @Success 200
// @Failure 404
// @Router /api/destinations/{id} [delete]
func (h *DestinationHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	deleted, err := h.repo.Delete(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete destination")
	}
	if !deleted {
		return response.NotFound(c)
	}
	return c.SendStatus(fiber.StatusOK)
}

package handlers

import (
	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TourHandler handles tour CRUD endpoints
type TourHandler struct {
	repo repositories.TourRepository
}

// NewTourHandler creates a new tour handler
func NewTourHandler(repo repositories.TourRepository) *TourHandler {
	return &TourHandler{repo: repo}
}

// List returns all tours
// @Summary List tours
// @Tags Tours
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Tour
// @Router /api/tours [get]
func (h *TourHandler) List(c *fiber.Ctx) error {
	tours, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list tours")
	}
	return c.JSON(tours)
}

// Get returns one tour
// @Summary Get tour
// @Tags Tours
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200 {object} models.Tour
// @Failure 404
// @Router /api/tours/{id} [get]
func (h *TourHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	tour, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}
	return c.JSON(tour)
}

// Create creates a tour
// @Summary Create tour
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Tour true "Tour"
// @Success 201 {object} models.Tour
// @Router /api/tours [post]
func (h *TourHandler) Create(c *fiber.Ctx) error {
	var tour models.Tour
	if err := c.BodyParser(&tour); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if tour.Name == "" || tour.DestinationID == 0 {
		return response.BadRequest(c, "Name and destination are required")
	}
	if tour.MaxParticipants < 1 {
		return response.BadRequest(c, "Max participants must be at least 1")
	}
	if tour.Status == "" {
		tour.Status = models.TourScheduled
	} else if _, err := models.ParseTourStatus(string(tour.Status)); err != nil {
		return response.BadRequest(c, "Invalid tour status")
	}

	tour.ID = 0
	tour.CurrentParticipants = 0
	if err := h.repo.Create(c.Context(), &tour); err != nil {
		return response.InternalServerError(c, "Failed to create tour")
	}
	return c.Status(fiber.StatusCreated).JSON(tour)
}

// Update updates a tour
// @Summary Update tour
// @Tags Tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Param body body models.Tour true "Tour"
// @Success 200 {object} models.Tour
// @Failure 404
// @Router /api/tours/{id} [put]
func (h *TourHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	existing, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}

	var tour models.Tour
	if err := c.BodyParser(&tour); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if tour.Status == "" {
		tour.Status = existing.Status
	} else if _, err := models.ParseTourStatus(string(tour.Status)); err != nil {
		return response.BadRequest(c, "Invalid tour status")
	}

	tour.ID = existing.ID
	tour.CreatedAt = existing.CreatedAt
	if err := h.repo.Update(c.Context(), &tour); err != nil {
		return response.InternalServerError(c, "Failed to update tour")
	}
	return c.JSON(tour)
}

// Delete removes a tour
// @Summary Delete tour
// @Tags Tours
// @Security BearerAuth
// @Param id path int true "Tour ID"
// @Success 200
// @Failure 404
// @Router /api/tours/{id} [delete]
func (h *TourHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	deleted, err := h.repo.Delete(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete tour")
	}
	if !deleted {
		return response.NotFound(c)
	}
	return c.SendStatus(fiber.StatusOK)
}

package handlers

import (
	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GuideHandler handles guide CRUD endpoints
type GuideHandler struct {
	repo repositories.GuideRepository
}

// NewGuideHandler creates a new guide handler
func NewGuideHandler(repo repositories.GuideRepository) *GuideHandler {
	return &GuideHandler{repo: repo}
}

// List returns all guides
// @Summary List guides
// @Tags Guides
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Guide
// @Router /api/guides [get]
func (h *GuideHandler) List(c *fiber.Ctx) error {
	guides, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list guides")
	}
	return c.JSON(guides)
}

// Get returns one guide
// @Summary Get guide
// @Tags Guides
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guide ID"
// @Success 200 {object} models.Guide
// @Failure 404
// @Router /api/guides/{id} [get]
func (h *GuideHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	guide, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}
	return c.JSON(guide)
}

// Create creates a guide
// @Summary Create guide
// @Tags Guides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Guide true "Guide"
// @Success 201 {object} models.Guide
// @Router /api/guides [post]
func (h *GuideHandler) Create(c *fiber.Ctx) error {
	var guide models.Guide
	if err := c.BodyParser(&guide); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if guide.FirstName == "" || guide.LastName == "" || guide.Email == "" {
		return response.BadRequest(c, "First name, last name and email are required")
	}

	guide.ID = 0
	if err := h.repo.Create(c.Context(), &guide); err != nil {
		return response.InternalServerError(c, "Failed to create guide")
	}
	return c.Status(fiber.StatusCreated).JSON(guide)
}

// Update updates a guide
// @Summary Update guide
// @Tags Guides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Guide ID"
// @Param body body models.Guide true "Guide"
// @Success 200 {object} models.Guide
// @Failure 404
// @Router /api/guides/{id} [put]
func (h *GuideHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	existing, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}

	var guide models.Guide
	if err := c.BodyParser(&guide); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	guide.ID = existing.ID
	guide.CreatedAt = existing.CreatedAt
	if err := h.repo.Update(c.Context(), &guide); err != nil {
		return response.InternalServerError(c, "Failed to update guide")
	}
	return c.JSON(guide)
}

// Delete removes a guide
// @Summary Delete guide
// @Tags Guides
// @Security BearerAuth
// @Param id path int true "Guide ID"
// @Success 200
// @Failure 404
// @Router /api/guides/{id} [delete]
func (h *GuideHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	deleted, err := h.repo.Delete(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete guide")
	}
	if !deleted {
		return response.NotFound(c)
	}
	return c.SendStatus(fiber.StatusOK)
}

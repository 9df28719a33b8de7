package handlers

import (
	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer CRUD endpoints
type CustomerHandler struct {
	repo repositories.CustomerRepository
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(repo repositories.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

// List returns all customers
// @Summary List customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Customer
// @Router /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}
	return c.JSON(customers)
}

// Get returns one customer
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404
// @Router /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	customer, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}
	return c.JSON(customer)
}

// Create creates a customer
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.Customer true "Customer"
// @Success 201 {object} models.Customer
// @Router /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if customer.FirstName == "" || customer.LastName == "" || customer.Email == "" {
		return response.BadRequest(c, "First name, last name and email are required")
	}

	customer.ID = 0
	if err := h.repo.Create(c.Context(), &customer); err != nil {
		return response.InternalServerError(c, "Failed to create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Update updates a customer
// @Summary Update customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body models.Customer true "Customer"
// @Success 200 {object} models.Customer
// @Failure 404
// @Router /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	existing, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}

	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt
	if err := h.repo.Update(c.Context(), &customer); err != nil {
		return response.InternalServerError(c, "Failed to update customer")
	}
	return c.JSON(customer)
}

// Delete removes a customer
// @Summary Delete customer
// @Tags Customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200
// @Failure 404
// @Router /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	deleted, err := h.repo.Delete(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete customer")
	}
	if !deleted {
		return response.NotFound(c)
	}
	return c.SendStatus(fiber.StatusOK)
}

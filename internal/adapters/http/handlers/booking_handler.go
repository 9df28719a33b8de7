package handlers

import (
	"errors"
	"time"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/core/services"
	"touragency/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	repo           repositories.BookingRepository
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(repo repositories.BookingRepository, bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{repo: repo, bookingService: bookingService}
}

// CreateBookingRequest represents booking creation request body
type CreateBookingRequest struct {
	CustomerID      uint      `json:"customerId"`
	TourID          uint      `json:"tourId"`
	TravelDate      time.Time `json:"travelDate"`
	NumberOfPeople  int       `json:"numberOfPeople"`
	SpecialRequests *string   `json:"specialRequests"`
}

// UpdateBookingRequest represents booking update request body
type UpdateBookingRequest struct {
	TravelDate      *time.Time `json:"travelDate"`
	SpecialRequests *string    `json:"specialRequests"`
	Status          *string    `json:"status"`
}

// List returns all bookings
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Booking
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *fiber.Ctx) error {
	bookings, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list bookings")
	}
	return c.JSON(bookings)
}

// Get returns one booking
// @Summary Get booking
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	booking, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}
	return c.JSON(booking)
}

// Create creates a booking
// @Summary Create booking
// @Description Book a tour for a customer, deriving the total from the tour price
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking"
// @Success 201 {object} models.Booking
// @Failure 400
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CustomerID == 0 || req.TourID == 0 {
		return response.BadRequest(c, "Customer and tour are required")
	}
	if req.NumberOfPeople < 1 {
		return response.BadRequest(c, "Number of people must be at least 1")
	}

	booking, err := h.bookingService.Create(c.Context(), &services.CreateBookingInput{
		CustomerID:      req.CustomerID,
		TourID:          req.TourID,
		TravelDate:      req.TravelDate,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			return response.BadRequest(c, "Customer not found")
		case errors.Is(err, services.ErrTourNotFound):
			return response.BadRequest(c, "Tour not found")
		case errors.Is(err, services.ErrTourFull):
			return response.BadRequest(c, "Tour has no remaining capacity")
		default:
			return response.InternalServerError(c, "Failed to create booking")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// Update updates a booking
// @Summary Update booking
// @Description Change travel details or move the booking through its lifecycle
// @Tags Bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param body body UpdateBookingRequest true "Booking changes"
// @Success 200 {object} models.Booking
// @Failure 400
// @Failure 404
// @Router /api/bookings/{id} [put]
func (h *BookingHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	booking, err := h.repo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c)
	}

	var req UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TravelDate != nil {
		booking.TravelDate = *req.TravelDate
	}
	if req.SpecialRequests != nil {
		booking.SpecialRequests = req.SpecialRequests
	}

	if req.Status != nil {
		next, parseErr := models.ParseBookingStatus(*req.Status)
		if parseErr != nil {
			return response.BadRequest(c, "Invalid booking status")
		}
		if err := h.bookingService.ChangeStatus(c.Context(), booking, next); err != nil {
			if errors.Is(err, services.ErrInvalidTransition) {
				return response.BadRequest(c, err.Error())
			}
			return response.InternalServerError(c, "Failed to update booking")
		}
	} else if err := h.repo.Update(c.Context(), booking); err != nil {
		return response.InternalServerError(c, "Failed to update booking")
	}

	return c.JSON(booking)
}

// Delete removes a booking
// @Summary Delete booking
// @Tags Bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200
// @Failure 404
// @Router /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid id")
	}

	deleted, err := h.repo.Delete(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete booking")
	}
	if !deleted {
		return response.NotFound(c)
	}
	return c.SendStatus(fiber.StatusOK)
}

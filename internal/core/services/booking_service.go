package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
)

// Booking errors
var (
	ErrTourNotFound      = errors.New("tour not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrTourFull          = errors.New("tour has no remaining capacity")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingService handles booking business logic
type BookingService struct {
	bookings  repositories.BookingRepository
	tours     repositories.TourRepository
	customers repositories.CustomerRepository
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings repositories.BookingRepository,
	tours repositories.TourRepository,
	customers repositories.CustomerRepository,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		tours:     tours,
		customers: customers,
	}
}

// CreateBookingInput represents booking creation input
type CreateBookingInput struct {
	CustomerID      uint
	TourID          uint
	TravelDate      time.Time
	NumberOfPeople  int
	SpecialRequests *string
}

// Create books a tour for a customer. The total amount derives from the
// tour price and the party size; the booking starts Pending.
func (s *BookingService) Create(ctx context.Context, input *CreateBookingInput) (*models.Booking, error) {
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	tour, err := s.tours.GetByID(ctx, input.TourID)
	if err != nil {
		return nil, ErrTourNotFound
	}

	if tour.CurrentParticipants+input.NumberOfPeople > tour.MaxParticipants {
		return nil, ErrTourFull
	}

	booking := &models.Booking{
		Reference:       newBookingReference(),
		CustomerID:      input.CustomerID,
		TourID:          input.TourID,
		BookingDate:     time.Now().UTC(),
		TravelDate:      input.TravelDate,
		NumberOfPeople:  input.NumberOfPeople,
		TotalAmount:     tour.Price * float64(input.NumberOfPeople),
		Status:          models.BookingPending,
		SpecialRequests: input.SpecialRequests,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	tour.CurrentParticipants += input.NumberOfPeople
	if err := s.tours.Update(ctx, tour); err != nil {
		return nil, err
	}

	return booking, nil
}

// ChangeStatus moves a booking through its lifecycle. The switch is
// exhaustive over the closed status set; cancelling releases the seats.
func (s *BookingService) ChangeStatus(ctx context.Context, booking *models.Booking, next models.BookingStatus) error {
	if !transitionAllowed(booking.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
	}

	prev := booking.Status
	booking.Status = next
	if err := s.bookings.Update(ctx, booking); err != nil {
		booking.Status = prev
		return err
	}

	if next == models.BookingCancelled {
		if tour, err := s.tours.GetByID(ctx, booking.TourID); err == nil {
			tour.CurrentParticipants -= booking.NumberOfPeople
			if tour.CurrentParticipants < 0 {
				tour.CurrentParticipants = 0
			}
			if err := s.tours.Update(ctx, tour); err != nil {
				return err
			}
		}
	}

	return nil
}

// transitionAllowed encodes the booking state machine:
// Pending -> Confirmed|Cancelled, Confirmed -> Completed|Cancelled,
// Cancelled and Completed are terminal.
func transitionAllowed(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.BookingPending:
		return to == models.BookingConfirmed || to == models.BookingCancelled
	case models.BookingConfirmed:
		return to == models.BookingCompleted || to == models.BookingCancelled
	case models.BookingCancelled, models.BookingCompleted:
		return false
	default:
		return false
	}
}

// newBookingReference returns a short unique booking reference
func newBookingReference() string {
	return "BK-" + uuid.NewString()[:8]
}

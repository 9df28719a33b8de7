package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"touragency/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepository struct {
	nextID   uint
	bookings map[uint]*models.Booking
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{nextID: 1, bookings: make(map[uint]*models.Booking)}
}

func (r *fakeBookingRepository) List(_ context.Context) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepository) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (r *fakeBookingRepository) Create(_ context.Context, b *models.Booking) error {
	b.ID = r.nextID
	r.nextID++
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepository) Update(_ context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepository) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

type fakeTourRepository struct {
	tours map[uint]*models.Tour
}

func newFakeTourRepository() *fakeTourRepository {
	return &fakeTourRepository{tours: make(map[uint]*models.Tour)}
}

func (r *fakeTourRepository) List(_ context.Context) ([]*models.Tour, error) {
	var out []*models.Tour
	for _, t := range r.tours {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTourRepository) GetByID(_ context.Context, id uint) (*models.Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTourRepository) Create(_ context.Context, t *models.Tour) error {
	r.tours[t.ID] = t
	return nil
}

func (r *fakeTourRepository) Update(_ context.Context, t *models.Tour) error {
	clone := *t
	r.tours[t.ID] = &clone
	return nil
}

func (r *fakeTourRepository) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.tours[id]; !ok {
		return false, nil
	}
	delete(r.tours, id)
	return true, nil
}

func (r *fakeTourRepository) CompletePast(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range r.tours {
		if (t.Status == models.TourScheduled || t.Status == models.TourActive) && t.EndDate.Before(now) {
			t.Status = models.TourCompleted
			n++
		}
	}
	return n, nil
}

type fakeCustomerRepository struct {
	customers map[uint]*models.Customer
}

func newFakeCustomerRepository() *fakeCustomerRepository {
	return &fakeCustomerRepository{customers: make(map[uint]*models.Customer)}
}

func (r *fakeCustomerRepository) List(_ context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepository) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *fakeCustomerRepository) Create(_ context.Context, c *models.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepository) Update(_ context.Context, c *models.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepository) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.customers[id]; !ok {
		return false, nil
	}
	delete(r.customers, id)
	return true, nil
}

func newTestBookingService(t *testing.T) (*BookingService, *fakeBookingRepository, *fakeTourRepository, *fakeCustomerRepository) {
	t.Helper()
	bookings := newFakeBookingRepository()
	tours := newFakeTourRepository()
	customers := newFakeCustomerRepository()
	return NewBookingService(bookings, tours, customers), bookings, tours, customers
}

func seedTour(tours *fakeTourRepository, id uint, price float64, maxP, currentP int) *models.Tour {
	tour := &models.Tour{
		ID:                  id,
		Name:                "Test Tour",
		DestinationID:       1,
		StartDate:           time.Now().Add(24 * time.Hour),
		EndDate:             time.Now().Add(7 * 24 * time.Hour),
		MaxParticipants:     maxP,
		CurrentParticipants: currentP,
		Price:               price,
		Status:              models.TourScheduled,
	}
	tours.tours[id] = tour
	return tour
}

func TestCreateBooking(t *testing.T) {
	svc, _, tours, customers := newTestBookingService(t)
	customers.customers[1] = &models.Customer{ID: 1, FirstName: "Jane", LastName: "Doe"}
	seedTour(tours, 1, 500, 10, 3)

	booking, err := svc.Create(context.Background(), &CreateBookingInput{
		CustomerID:     1,
		TourID:         1,
		TravelDate:     time.Now().Add(48 * time.Hour),
		NumberOfPeople: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, float64(2000), booking.TotalAmount)
	assert.NotEmpty(t, booking.Reference)
	assert.False(t, booking.BookingDate.IsZero())

	// Seats were taken on the tour.
	tour, err := tours.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, tour.CurrentParticipants)
}

func TestCreateBookingReferencesAreUnique(t *testing.T) {
	svc, _, tours, customers := newTestBookingService(t)
	customers.customers[1] = &models.Customer{ID: 1}
	seedTour(tours, 1, 100, 100, 0)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		booking, err := svc.Create(context.Background(), &CreateBookingInput{
			CustomerID:     1,
			TourID:         1,
			TravelDate:     time.Now(),
			NumberOfPeople: 1,
		})
		require.NoError(t, err)
		require.False(t, seen[booking.Reference], "duplicate reference %s", booking.Reference)
		seen[booking.Reference] = true
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, tours, customers := newTestBookingService(t)
	customers.customers[1] = &models.Customer{ID: 1}
	seedTour(tours, 1, 500, 5, 4)

	tests := []struct {
		name    string
		input   *CreateBookingInput
		wantErr error
	}{
		{
			name:    "unknown customer",
			input:   &CreateBookingInput{CustomerID: 99, TourID: 1, NumberOfPeople: 1},
			wantErr: ErrCustomerNotFound,
		},
		{
			name:    "unknown tour",
			input:   &CreateBookingInput{CustomerID: 1, TourID: 99, NumberOfPeople: 1},
			wantErr: ErrTourNotFound,
		},
		{
			name:    "over capacity",
			input:   &CreateBookingInput{CustomerID: 1, TourID: 1, NumberOfPeople: 2},
			wantErr: ErrTourFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingFillsExactCapacity(t *testing.T) {
	svc, _, tours, customers := newTestBookingService(t)
	customers.customers[1] = &models.Customer{ID: 1}
	seedTour(tours, 1, 500, 5, 4)

	_, err := svc.Create(context.Background(), &CreateBookingInput{
		CustomerID:     1,
		TourID:         1,
		TravelDate:     time.Now(),
		NumberOfPeople: 1,
	})
	assert.NoError(t, err)
}

func TestChangeStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingPending, models.BookingCompleted, false},
		{models.BookingConfirmed, models.BookingCompleted, true},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingPending, false},
		{models.BookingCancelled, models.BookingConfirmed, false},
		{models.BookingCancelled, models.BookingPending, false},
		{models.BookingCompleted, models.BookingCancelled, false},
		{models.BookingCompleted, models.BookingConfirmed, false},
		{models.BookingPending, models.BookingPending, true},
		{models.BookingCompleted, models.BookingCompleted, true},
	}

	for _, tt := range tests {
		name := string(tt.from) + "->" + string(tt.to)
		t.Run(name, func(t *testing.T) {
			svc, bookings, tours, _ := newTestBookingService(t)
			seedTour(tours, 1, 100, 10, 5)

			booking := &models.Booking{TourID: 1, NumberOfPeople: 2, Status: tt.from}
			require.NoError(t, bookings.Create(context.Background(), booking))

			err := svc.ChangeStatus(context.Background(), booking, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, booking.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, booking.Status)
			}
		})
	}
}

func TestCancellationReleasesSeats(t *testing.T) {
	svc, bookings, tours, _ := newTestBookingService(t)
	seedTour(tours, 1, 100, 10, 5)

	booking := &models.Booking{TourID: 1, NumberOfPeople: 3, Status: models.BookingConfirmed}
	require.NoError(t, bookings.Create(context.Background(), booking))

	require.NoError(t, svc.ChangeStatus(context.Background(), booking, models.BookingCancelled))

	tour, err := tours.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, tour.CurrentParticipants)
}

func TestCancellationNeverGoesNegative(t *testing.T) {
	svc, bookings, tours, _ := newTestBookingService(t)
	seedTour(tours, 1, 100, 10, 1)

	booking := &models.Booking{TourID: 1, NumberOfPeople: 5, Status: models.BookingPending}
	require.NoError(t, bookings.Create(context.Background(), booking))

	require.NoError(t, svc.ChangeStatus(context.Background(), booking, models.BookingCancelled))

	tour, err := tours.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, tour.CurrentParticipants)
}

func TestCompletionDoesNotReleaseSeats(t *testing.T) {
	svc, bookings, tours, _ := newTestBookingService(t)
	seedTour(tours, 1, 100, 10, 5)

	booking := &models.Booking{TourID: 1, NumberOfPeople: 3, Status: models.BookingConfirmed}
	require.NoError(t, bookings.Create(context.Background(), booking))

	require.NoError(t, svc.ChangeStatus(context.Background(), booking, models.BookingCompleted))

	tour, err := tours.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, tour.CurrentParticipants)
}

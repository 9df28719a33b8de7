package repositories

import (
	"context"
	"time"

	"touragency/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface.
// Lookup methods return active accounts only; deactivated users are
// invisible everywhere except EmailExists, which guards registration
// against resurrecting a taken address.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
}

// DestinationRepository defines destination repository interface
type DestinationRepository interface {
	List(ctx context.Context) ([]*models.Destination, error)
	GetByID(ctx context.Context, id uint) (*models.Destination, error)
	Create(ctx context.Context, d *models.Destination) error
	Update(ctx context.Context, d *models.Destination) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// GuideRepository defines guide repository interface
type GuideRepository interface {
	List(ctx context.Context) ([]*models.Guide, error)
	GetByID(ctx context.Context, id uint) (*models.Guide, error)
	Create(ctx context.Context, g *models.Guide) error
	Update(ctx context.Context, g *models.Guide) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	List(ctx context.Context) ([]*models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// TourRepository defines tour repository interface
type TourRepository interface {
	List(ctx context.Context) ([]*models.Tour, error)
	GetByID(ctx context.Context, id uint) (*models.Tour, error)
	Create(ctx context.Context, t *models.Tour) error
	Update(ctx context.Context, t *models.Tour) error
	Delete(ctx context.Context, id uint) (bool, error)
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// BookingRepository defines booking repository interface
type BookingRepository interface {
	List(ctx context.Context) ([]*models.Booking, error)
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uint) (bool, error)
}

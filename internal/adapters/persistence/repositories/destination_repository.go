package repositories

import (
	"context"

	"touragency/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// destinationRepository implements DestinationRepository interface
type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository creates a new destination repository
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

// List lists all destinations, newest first
func (r *destinationRepository) List(ctx context.Context) ([]*models.Destination, error) {
	var destinations []*models.Destination
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&destinations).Error
	return destinations, err
}

// GetByID gets a destination by ID
func (r *destinationRepository) GetByID(ctx context.Context, id uint) (*models.Destination, error) {
	var d models.Destination
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Create creates a new destination
func (r *destinationRepository) Create(ctx context.Context, d *models.Destination) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// Update updates a destination
func (r *destinationRepository) Update(ctx context.Context, d *models.Destination) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete removes a destination, reporting whether a row was deleted
func (r *destinationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Destination{}, id)
	return res.RowsAffected > 0, res.Error
}

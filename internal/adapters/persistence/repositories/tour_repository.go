package repositories

import (
	"context"
	"time"

	"touragency/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// tourRepository implements TourRepository interface
type tourRepository struct {
	db *gorm.DB
}

// NewTourRepository creates a new tour repository
func NewTourRepository(db *gorm.DB) TourRepository {
	return &tourRepository{db: db}
}

// List lists all tours, newest first
func (r *tourRepository) List(ctx context.Context) ([]*models.Tour, error) {
	var tours []*models.Tour
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tours).Error
	return tours, err
}

// GetByID gets a tour by ID
func (r *tourRepository) GetByID(ctx context.Context, id uint) (*models.Tour, error) {
	var t models.Tour
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a new tour
func (r *tourRepository) Create(ctx context.Context, t *models.Tour) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update updates a tour
func (r *tourRepository) Update(ctx context.Context, t *models.Tour) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete removes a tour, reporting whether a row was deleted
func (r *tourRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Tour{}, id)
	return res.RowsAffected > 0, res.Error
}

// CompletePast marks tours whose end date has passed as Completed.
// Used by the maintenance sweep.
func (r *tourRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Tour{}).
		Where("end_date < ?", now).
		Where("status IN ?", []models.TourStatus{models.TourScheduled, models.TourActive}).
		Update("status", models.TourCompleted)
	return res.RowsAffected, res.Error
}

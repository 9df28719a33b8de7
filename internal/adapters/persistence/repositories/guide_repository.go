package repositories

import (
	"context"

	"touragency/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// guideRepository implements GuideRepository interface
type guideRepository struct {
	db *gorm.DB
}

// NewGuideRepository creates a new guide repository
func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

// List lists all guides, newest first
func (r *guideRepository) List(ctx context.Context) ([]*models.Guide, error) {
	var guides []*models.Guide
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&guides).Error
	return guides, err
}

// GetByID gets a guide by ID
func (r *guideRepository) GetByID(ctx context.Context, id uint) (*models.Guide, error) {
	var g models.Guide
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// Create creates a new guide
func (r *guideRepository) Create(ctx context.Context, g *models.Guide) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// Update updates a guide
func (r *guideRepository) Update(ctx context.Context, g *models.Guide) error {
	return r.db.WithContext(ctx).Save(g).Error
}

// Delete removes a guide, reporting whether a row was deleted
func (r *guideRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Guide{}, id)
	return res.RowsAffected > 0, res.Error
}

package config

import (
	"log"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}
	if err := s.seedDestinations(); err != nil {
		log.Printf("Warning: destination seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account.
// Development only; production admins are created through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        "admin@touragency.local",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Email)
	return nil
}

// seedDestinations seeds a few sample destinations so a fresh dev
// database has something to browse.
func (s *Seeder) seedDestinations() error {
	var count int64
	s.db.Model(&models.Destination{}).Count(&count)
	if count > 0 {
		return nil
	}

	desc := func(s string) *string { return &s }
	destinations := []models.Destination{
		{Name: "Santorini Escape", Country: "Greece", City: "Santorini", Description: desc("Cliffside villages and caldera views"), Price: 1450, Duration: 5},
		{Name: "Kyoto Heritage", Country: "Japan", City: "Kyoto", Description: desc("Temples, gardens and the old capital"), Price: 2100, Duration: 7},
		{Name: "Patagonia Trek", Country: "Argentina", City: "El Chalten", Description: desc("Granite peaks and glacier hikes"), Price: 2600, Duration: 10},
	}

	if err := s.db.Create(&destinations).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d destinations", len(destinations))
	return nil
}

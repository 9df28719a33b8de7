package services

import (
	"context"
	"log"
	"time"

	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/adapters/registry"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs the nightly background sweeps: expired
// refresh-token entries are pruned and tours past their end date are
// marked Completed.
type MaintenanceService struct {
	tokens registry.TokenRegistry
	tours  repositories.TourRepository
	cron   *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(tokens registry.TokenRegistry, tours repositories.TourRepository) *MaintenanceService {
	return &MaintenanceService{
		tokens: tokens,
		tours:  tours,
		cron:   cron.New(),
	}
}

// Start schedules the sweeps (03:30 daily) and launches the cron runner
func (s *MaintenanceService) Start() {
	s.cron.AddFunc("30 3 * * *", s.Sweep)
	s.cron.Start()
	log.Println("MaintenanceService started (daily sweep at 03:30)")
}

// Stop stops the cron runner
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	log.Println("MaintenanceService stopped")
}

// Sweep runs both maintenance jobs once
func (s *MaintenanceService) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// The Redis registry expires keys natively and is not a Pruner.
	if pruner, ok := s.tokens.(registry.Pruner); ok {
		if n := pruner.PruneExpired(); n > 0 {
			log.Printf("Pruned %d expired refresh tokens", n)
		}
	}

	n, err := s.tours.CompletePast(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Tour completion sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Marked %d past tours completed", n)
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=directory.go -destination=mocks/mock_directory.go -package=mocks

// FacilityRepository определяет контракт для чтения справочника учреждений
type FacilityRepository interface {
	ListFacilities(ctx context.Context) ([]*models.Facility, error)
}

// FacilityDirectory держит в памяти снимок справочника учреждений.
// Снимок заменяется целиком, читатели всегда видят согласованный список.
type FacilityDirectory struct {
	repo   FacilityRepository
	logger *logrus.Logger

	mu         sync.RWMutex
	facilities []*models.Facility
	loadedAt   time.Time
}

func NewFacilityDirectory(repo FacilityRepository, logger *logrus.Logger) *FacilityDirectory {
	return &FacilityDirectory{
		repo:   repo,
		logger: logger,
	}
}

// Refresh перечитывает справочник из бд
func (d *FacilityDirectory) Refresh(ctx context.Context) error {
	log := d.logger.WithFields(logrus.Fields{
		"service": "directory",
		"method":  "Refresh",
	})

	facilities, err := d.repo.ListFacilities(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load facilities")
		return fmt.Errorf("service: could not load facilities: %w", err)
	}

	d.Replace(facilities)
	log.WithField("count", len(facilities)).Info("Facility directory refreshed")
	return nil
}

// Replace подменяет снимок справочника
func (d *FacilityDirectory) Replace(facilities []*models.Facility) {
	snapshot := make([]*models.Facility, len(facilities))
	copy(snapshot, facilities)

	d.mu.Lock()
	d.facilities = snapshot
	d.loadedAt = time.Now()
	d.mu.Unlock()
}

// All возвращает текущий снимок. Срез можно читать без блокировок.
func (d *FacilityDirectory) All() []*models.Facility {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.facilities
}

func (d *FacilityDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.facilities)
}

func (d *FacilityDirectory) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}

package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFuelTypeRepository implements fuelcard.FuelTypeRepository using GORM
type GormFuelTypeRepository struct {
	db *gorm.DB
}

// NewGormFuelTypeRepository creates a new GormFuelTypeRepository
func NewGormFuelTypeRepository(db *gorm.DB) *GormFuelTypeRepository {
	return &GormFuelTypeRepository{db: db}
}

// FindByID finds a fuel type by its ID
func (r *GormFuelTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.FuelType, error) {
	var fuelType fuelcard.FuelType
	if err := r.db.WithContext(ctx).First(&fuelType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fuelType, nil
}

// FindAll returns all fuel types ordered by name
func (r *GormFuelTypeRepository) FindAll(ctx context.Context) ([]*fuelcard.FuelType, error) {
	var fuelTypes []*fuelcard.FuelType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&fuelTypes).Error; err != nil {
		return nil, err
	}
	return fuelTypes, nil
}

var _ fuelcard.FuelTypeRepository = (*GormFuelTypeRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/fuelcard"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCardRepository implements fuelcard.CardRepository using GORM
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GormCardRepository
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// Save persists a fuel card
func (r *GormCardRepository) Save(ctx context.Context, card *fuelcard.FuelCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// FindByID finds a fuel card by its ID
func (r *GormCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*fuelcard.FuelCard, error) {
	var card fuelcard.FuelCard
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByIDForUpdate loads the card under SELECT ... FOR UPDATE. The row lock
// is held until the surrounding transaction ends, so it must be called inside
// a transaction scope.
func (r *GormCardRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*fuelcard.FuelCard, error) {
	var card fuelcard.FuelCard
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByNumber finds a fuel card by its unique number
func (r *GormCardRepository) FindByNumber(ctx context.Context, number string) (*fuelcard.FuelCard, error) {
	var card fuelcard.FuelCard
	if err := r.db.WithContext(ctx).First(&card, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindAll finds cards matching the filter
func (r *GormCardRepository) FindAll(ctx context.Context, filter fuelcard.CardFilter) ([]*fuelcard.FuelCard, error) {
	var cards []*fuelcard.FuelCard
	query := r.applyFilter(r.db.WithContext(ctx).Model(&fuelcard.FuelCard{}), filter)
	if err := query.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Count counts cards matching the filter
func (r *GormCardRepository) Count(ctx context.Context, filter fuelcard.CardFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&fuelcard.FuelCard{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a fuel card
func (r *GormCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fuelcard.FuelCard{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCardRepository) applyConditions(query *gorm.DB, filter fuelcard.CardFilter) *gorm.DB {
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	return query
}

func (r *GormCardRepository) applyFilter(query *gorm.DB, filter fuelcard.CardFilter) *gorm.DB {
	query = r.applyConditions(query, filter)
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "number"
	}
	if filter.Desc {
		orderBy += " DESC"
	}
	query = query.Order(orderBy)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	return query
}

var _ fuelcard.CardRepository = (*GormCardRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChargeRepository implements transaction.ChargeRepository using GORM.
// GORM's soft-delete handling keeps deleted rows out of every query here.
type GormChargeRepository struct {
	db *gorm.DB
}

// NewGormChargeRepository creates a new GormChargeRepository
func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{db: db}
}

// Save persists a charge
func (r *GormChargeRepository) Save(ctx context.Context, charge *transaction.Charge) error {
	return r.db.WithContext(ctx).Save(charge).Error
}

// FindByID finds a charge by its ID
func (r *GormChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Charge, error) {
	var charge transaction.Charge
	if err := r.db.WithContext(ctx).First(&charge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &charge, nil
}

// FindAll finds charges matching the filter
func (r *GormChargeRepository) FindAll(ctx context.Context, filter transaction.Filter) ([]*transaction.Charge, error) {
	var charges []*transaction.Charge
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&transaction.Charge{}), filter, true)
	if err := query.Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// Count counts charges matching the filter
func (r *GormChargeRepository) Count(ctx context.Context, filter transaction.Filter) (int64, error) {
	var count int64
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&transaction.Charge{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCard counts a card's charges, including soft-deleted ones: a card
// with any history cannot be removed.
func (r *GormChargeRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&transaction.Charge{}).
		Where("fuel_card_id = ?", cardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCardAndPeriod returns the card's charges dated within [from, to)
// ordered by date then time ascending.
func (r *GormChargeRepository) FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*transaction.Charge, error) {
	var charges []*transaction.Charge
	if err := r.db.WithContext(ctx).
		Where("fuel_card_id = ? AND date >= ? AND date < ?", cardID, from, to).
		Order("date ASC, time ASC").
		Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// FindLastInPeriod returns the card's latest charge (by date, then time)
// dated within [from, to).
func (r *GormChargeRepository) FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*transaction.Charge, error) {
	var charge transaction.Charge
	if err := r.db.WithContext(ctx).
		Where("fuel_card_id = ? AND date >= ? AND date < ?", cardID, from, to).
		Order("date DESC, time DESC").
		First(&charge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &charge, nil
}

// SoftDelete saves the charge (persisting the deletion reason) and marks the
// row deleted.
func (r *GormChargeRepository) SoftDelete(ctx context.Context, charge *transaction.Charge) error {
	if err := r.db.WithContext(ctx).Save(charge).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(charge).Error
}

func applyTransactionFilter(query *gorm.DB, filter transaction.Filter, paginate bool) *gorm.DB {
	if filter.CardID != nil {
		query = query.Where("fuel_card_id = ?", *filter.CardID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if !paginate {
		return query
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "date"
	}
	if filter.Desc {
		query = query.Order(orderBy + " DESC, time DESC")
	} else {
		query = query.Order(orderBy + " ASC, time ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	return query
}

var _ transaction.ChargeRepository = (*GormChargeRepository)(nil)

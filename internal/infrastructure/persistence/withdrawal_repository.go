package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWithdrawalRepository implements transaction.WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// Save persists a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, withdrawal *transaction.Withdrawal) error {
	return r.db.WithContext(ctx).Save(withdrawal).Error
}

// FindByID finds a withdrawal by its ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Withdrawal, error) {
	var withdrawal transaction.Withdrawal
	if err := r.db.WithContext(ctx).First(&withdrawal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

// FindAll finds withdrawals matching the filter
func (r *GormWithdrawalRepository) FindAll(ctx context.Context, filter transaction.Filter) ([]*transaction.Withdrawal, error) {
	var withdrawals []*transaction.Withdrawal
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&transaction.Withdrawal{}), filter, true)
	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// Count counts withdrawals matching the filter
func (r *GormWithdrawalRepository) Count(ctx context.Context, filter transaction.Filter) (int64, error) {
	var count int64
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&transaction.Withdrawal{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCard counts a card's withdrawals, including soft-deleted ones
func (r *GormWithdrawalRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&transaction.Withdrawal{}).
		Where("fuel_card_id = ?", cardID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCardAndPeriod returns the card's withdrawals dated within [from, to)
// ordered by date then time ascending.
func (r *GormWithdrawalRepository) FindByCardAndPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) ([]*transaction.Withdrawal, error) {
	var withdrawals []*transaction.Withdrawal
	if err := r.db.WithContext(ctx).
		Where("fuel_card_id = ? AND date >= ? AND date < ?", cardID, from, to).
		Order("date ASC, time ASC").
		Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// FindLastInPeriod returns the card's latest withdrawal (by date, then time)
// dated within [from, to).
func (r *GormWithdrawalRepository) FindLastInPeriod(ctx context.Context, cardID uuid.UUID, from, to time.Time) (*transaction.Withdrawal, error) {
	var withdrawal transaction.Withdrawal
	if err := r.db.WithContext(ctx).
		Where("fuel_card_id = ? AND date >= ? AND date < ?", cardID, from, to).
		Order("date DESC, time DESC").
		First(&withdrawal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

// SumQuantityOnDay totals the card's withdrawal quantity for one calendar day.
// Rejected rows are excluded: their effect has been reversed and no longer
// counts against the daily limit.
func (r *GormWithdrawalRepository) SumQuantityOnDay(ctx context.Context, cardID uuid.UUID, day time.Time, excludeID *uuid.UUID) (decimal.Decimal, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := r.db.WithContext(ctx).Model(&transaction.Withdrawal{}).
		Where("fuel_card_id = ? AND date >= ? AND date < ? AND status <> ?",
			cardID, dayStart, dayEnd, transaction.StatusRejected)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(quantity)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SoftDelete saves the withdrawal (persisting the deletion reason) and marks
// the row deleted.
func (r *GormWithdrawalRepository) SoftDelete(ctx context.Context, withdrawal *transaction.Withdrawal) error {
	if err := r.db.WithContext(ctx).Save(withdrawal).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(withdrawal).Error
}

var _ transaction.WithdrawalRepository = (*GormWithdrawalRepository)(nil)

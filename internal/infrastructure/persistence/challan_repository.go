package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/shared"
)

// GormChallanRepository implements ChallanRepository using GORM
type GormChallanRepository struct {
	db *gorm.DB
}

// NewGormChallanRepository creates a new GormChallanRepository
func NewGormChallanRepository(db *gorm.DB) *GormChallanRepository {
	return &GormChallanRepository{db: db}
}

// FindByID finds a challan by its ID
func (r *GormChallanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Challan, error) {
	var challan billing.Challan
	if err := r.db.WithContext(ctx).First(&challan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &challan, nil
}

// FindByIDForUpdate finds a challan by its ID and row-locks it for the
// duration of the surrounding transaction
func (r *GormChallanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Challan, error) {
	var challan billing.Challan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&challan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &challan, nil
}

// FindByOrderID finds the challan issued for an order
func (r *GormChallanRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Challan, error) {
	var challan billing.Challan
	if err := r.db.WithContext(ctx).First(&challan, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &challan, nil
}

// FindAll finds all challans matching the filter
func (r *GormChallanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Challan, error) {
	var challans []billing.Challan
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Challan{}), filter)
	if err := query.Find(&challans).Error; err != nil {
		return nil, err
	}
	return challans, nil
}

// FindUnbilledForUpdate row-locks the client's unbilled challans with a
// challan date inside [from, to). The lock pins the selection until the
// surrounding bill generation commits.
func (r *GormChallanRepository) FindUnbilledForUpdate(ctx context.Context, clientID uuid.UUID, from, to time.Time) ([]billing.Challan, error) {
	var challans []billing.Challan
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_id = ? AND monthly_bill_id IS NULL AND challan_date >= ? AND challan_date < ?", clientID, from, to).
		Order("id ASC").
		Find(&challans).Error; err != nil {
		return nil, err
	}
	return challans, nil
}

// CountUnbilled counts the client's unbilled challans inside [from, to)
func (r *GormChallanRepository) CountUnbilled(ctx context.Context, clientID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Challan{}).
		Where("client_id = ? AND monthly_bill_id IS NULL AND challan_date >= ? AND challan_date < ?", clientID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a challan. A second challan for the same order surfaces
// as CONFLICT.
func (r *GormChallanRepository) Save(ctx context.Context, challan *billing.Challan) error {
	if err := r.db.WithContext(ctx).Save(challan).Error; err != nil {
		if IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("CONFLICT", "A challan already exists for this order")
		}
		return err
	}
	return nil
}

// Delete removes a challan by ID
func (r *GormChallanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.Challan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts challans matching the filter
func (r *GormChallanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&billing.Challan{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LinkToBill stamps the bill on the given challans
func (r *GormChallanRepository) LinkToBill(ctx context.Context, challanIDs []uuid.UUID, billID uuid.UUID) error {
	if len(challanIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&billing.Challan{}).
		Where("id IN ?", challanIDs).
		Update("monthly_bill_id", billID).Error
}

// UnlinkFromBill clears the bill link for every challan of the bill,
// returning the number of challans released
func (r *GormChallanRepository) UnlinkFromBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&billing.Challan{}).
		Where("monthly_bill_id = ?", billID).
		Update("monthly_bill_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ClearBillLink clears the bill link for a single challan, returning false
// when the challan does not exist
func (r *GormChallanRepository) ClearBillLink(ctx context.Context, challanID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billing.Challan{}).
		Where("id = ?", challanID).
		Update("monthly_bill_id", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByBillID finds all challans linked to a bill
func (r *GormChallanRepository) FindByBillID(ctx context.Context, billID uuid.UUID) ([]billing.Challan, error) {
	var challans []billing.Challan
	if err := r.db.WithContext(ctx).
		Where("monthly_bill_id = ?", billID).
		Order("challan_date ASC").
		Find(&challans).Error; err != nil {
		return nil, err
	}
	return challans, nil
}

func (r *GormChallanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ChallanSortFields, "challan_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormChallanRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "billed":
			if value == true {
				query = query.Where("monthly_bill_id IS NOT NULL")
			} else {
				query = query.Where("monthly_bill_id IS NULL")
			}
		case "date_from":
			query = query.Where("challan_date >= ?", value)
		case "date_to":
			query = query.Where("challan_date < ?", value)
		}
	}
	return query
}

var _ billing.ChallanRepository = (*GormChallanRepository)(nil)

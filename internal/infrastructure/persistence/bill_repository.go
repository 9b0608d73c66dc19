package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/shared"
)

// GormMonthlyBillRepository implements MonthlyBillRepository using GORM
type GormMonthlyBillRepository struct {
	db *gorm.DB
}

// NewGormMonthlyBillRepository creates a new GormMonthlyBillRepository
func NewGormMonthlyBillRepository(db *gorm.DB) *GormMonthlyBillRepository {
	return &GormMonthlyBillRepository{db: db}
}

// FindByID finds a monthly bill by its ID
func (r *GormMonthlyBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MonthlyBill, error) {
	var bill billing.MonthlyBill
	if err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByClientAndPeriod finds the bill for a client and billing period
func (r *GormMonthlyBillRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period string) (*billing.MonthlyBill, error) {
	var bill billing.MonthlyBill
	if err := r.db.WithContext(ctx).
		First(&bill, "client_id = ? AND billing_period = ?", clientID, period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAll finds all bills matching the filter
func (r *GormMonthlyBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MonthlyBill, error) {
	var bills []billing.MonthlyBill
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.MonthlyBill{}), filter)
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Save persists a bill. A second bill for the same client and period
// surfaces as CONFLICT.
func (r *GormMonthlyBillRepository) Save(ctx context.Context, bill *billing.MonthlyBill) error {
	if err := r.db.WithContext(ctx).Save(bill).Error; err != nil {
		if IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("CONFLICT", "A bill already exists for this client and period")
		}
		return err
	}
	return nil
}

// Delete removes a bill by ID
func (r *GormMonthlyBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.MonthlyBill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bills matching the filter
func (r *GormMonthlyBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&billing.MonthlyBill{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkPaid performs a conditional paid update. The WHERE clause excludes
// already-paid bills so concurrent submissions record the payment once:
// the loser sees zero rows affected and reports applied=false.
func (r *GormMonthlyBillRepository) MarkPaid(ctx context.Context, billID uuid.UUID, date time.Time, method, reference string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&billing.MonthlyBill{}).
		Where("id = ? AND status <> ?", billID, billing.BillStatusPaid).
		Updates(map[string]interface{}{
			"status":         billing.BillStatusPaid,
			"payment_date":   date,
			"payment_method": method,
			"payment_ref":    reference,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.MonthlyBill{}).
		Where("id = ?", billID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, shared.ErrNotFound
	}
	return false, nil
}

func (r *GormMonthlyBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BillSortFields, "generated_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormMonthlyBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "billing_period":
			query = query.Where("billing_period = ?", value)
		}
	}
	return query
}

var _ billing.MonthlyBillRepository = (*GormMonthlyBillRepository)(nil)

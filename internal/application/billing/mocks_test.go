package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/trade"
)

// MockChallanRepository is a mock implementation of billing.ChallanRepository
type MockChallanRepository struct {
	mock.Mock
}

func (m *MockChallanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Challan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Challan), args.Error(1)
}

func (m *MockChallanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Challan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Challan), args.Error(1)
}

func (m *MockChallanRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Challan, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Challan), args.Error(1)
}

func (m *MockChallanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Challan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Challan), args.Error(1)
}

func (m *MockChallanRepository) FindUnbilledForUpdate(ctx context.Context, clientID uuid.UUID, from, to time.Time) ([]billing.Challan, error) {
	args := m.Called(ctx, clientID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Challan), args.Error(1)
}

func (m *MockChallanRepository) CountUnbilled(ctx context.Context, clientID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, clientID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallanRepository) Save(ctx context.Context, challan *billing.Challan) error {
	args := m.Called(ctx, challan)
	return args.Error(0)
}

func (m *MockChallanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChallanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallanRepository) LinkToBill(ctx context.Context, challanIDs []uuid.UUID, billID uuid.UUID) error {
	args := m.Called(ctx, challanIDs, billID)
	return args.Error(0)
}

func (m *MockChallanRepository) UnlinkFromBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallanRepository) ClearBillLink(ctx context.Context, challanID uuid.UUID) (bool, error) {
	args := m.Called(ctx, challanID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChallanRepository) FindByBillID(ctx context.Context, billID uuid.UUID) ([]billing.Challan, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Challan), args.Error(1)
}

// MockBillRepository is a mock implementation of billing.MonthlyBillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MonthlyBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MonthlyBill), args.Error(1)
}

func (m *MockBillRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period string) (*billing.MonthlyBill, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MonthlyBill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MonthlyBill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.MonthlyBill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.MonthlyBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) MarkPaid(ctx context.Context, billID uuid.UUID, date time.Time, method, reference string) (bool, error) {
	args := m.Called(ctx, billID, date, method, reference)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CompleteProcessingByChallanIDs(ctx context.Context, challanIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, challanIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByUsername(ctx context.Context, username string) (*partner.Client, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

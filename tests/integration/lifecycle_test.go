package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingapp "github.com/orderbill/backend/internal/application/billing"
	partnerapp "github.com/orderbill/backend/internal/application/partner"
	tradeapp "github.com/orderbill/backend/internal/application/trade"
	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/trade"
	"github.com/orderbill/backend/internal/infrastructure/persistence"
)

// lifecycleSetup wires the application services against a real database,
// the same way cmd/server does it.
type lifecycleSetup struct {
	DB *TestDB

	ClientService  *partnerapp.ClientService
	OrderService   *tradeapp.OrderService
	ChallanService *billingapp.ChallanService
	BillService    *billingapp.BillService
}

func newLifecycleSetup(t *testing.T) *lifecycleSetup {
	t.Helper()

	tdb := NewTestDB(t)

	productRepo := persistence.NewGormProductRepository(tdb.DB)
	clientRepo := persistence.NewGormClientRepository(tdb.DB)
	priceRepo := persistence.NewGormClientPriceRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	challanRepo := persistence.NewGormChallanRepository(tdb.DB)
	billRepo := persistence.NewGormMonthlyBillRepository(tdb.DB)
	scope := persistence.NewGormTransactionScope(tdb.DB)

	return &lifecycleSetup{
		DB:             tdb,
		ClientService:  partnerapp.NewClientService(clientRepo, priceRepo, productRepo),
		OrderService:   tradeapp.NewOrderService(scope, orderRepo),
		ChallanService: billingapp.NewChallanService(scope, challanRepo),
		BillService:    billingapp.NewBillService(scope, billRepo, challanRepo, 15),
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	return derr.Code
}

func TestOrderChallanBillLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newLifecycleSetup(t)
	ctx := context.Background()

	productID := s.DB.CreateTestProduct("Cement 50kg", decimal.NewFromInt(450), 100)
	clientID := s.DB.CreateTestClient("acme", "Acme Constructions")

	// Client-specific price overrides the catalog price on order lines.
	_, err := s.ClientService.SetPrice(ctx, clientID, partnerapp.SetClientPriceRequest{
		ProductID: productID,
		UnitPrice: decimal.NewFromInt(420),
	})
	require.NoError(t, err)

	orderDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	order, err := s.OrderService.Create(ctx, tradeapp.CreateOrderRequest{
		ClientID:  clientID,
		OrderDate: &orderDate,
		Items: []tradeapp.CreateOrderItemInput{
			{ProductID: productID, Quantity: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(4200)), "override price should apply")
	assert.Equal(t, 90, s.DB.StockQuantity(productID), "stock deducted at order creation")

	challanDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	challan, err := s.ChallanService.Create(ctx, billingapp.CreateChallanRequest{
		OrderID:     order.ID,
		ChallanDate: &challanDate,
	})
	require.NoError(t, err)
	assert.True(t, challan.Total.Equal(order.Total))
	assert.Nil(t, challan.MonthlyBillID)

	updated, err := s.OrderService.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusProcessing, updated.Status)
	require.NotNil(t, updated.ChallanID)
	assert.Equal(t, challan.ID, *updated.ChallanID)

	// Orders in delivery cannot be deleted or cancelled.
	err = s.OrderService.Delete(ctx, order.ID)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
	_, err = s.OrderService.Cancel(ctx, order.ID)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	// A second challan for the same order is refused.
	_, err = s.ChallanService.Create(ctx, billingapp.CreateChallanRequest{OrderID: order.ID})
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	status, err := s.BillService.CheckStatus(ctx, clientID, "2026-03")
	require.NoError(t, err)
	assert.True(t, status.CanGenerate)
	assert.Equal(t, int64(1), status.UnbilledCount)

	gen, err := s.BillService.Generate(ctx, billingapp.GenerateBillRequest{
		ClientID: clientID,
		Period:   "2026-03",
	})
	require.NoError(t, err)
	require.True(t, gen.Generated)
	require.NotNil(t, gen.Bill)
	assert.Equal(t, 1, gen.ChallanCount)
	assert.True(t, gen.Bill.Total.Equal(order.Total))
	assert.Equal(t, billing.BillStatusPending, gen.Bill.Status)

	// Regenerating for the same period finds nothing left to bill.
	gen2, err := s.BillService.Generate(ctx, billingapp.GenerateBillRequest{
		ClientID: clientID,
		Period:   "2026-03",
	})
	require.NoError(t, err)
	assert.False(t, gen2.Generated)

	// A billed challan cannot be deleted until the bill goes.
	err = s.ChallanService.Delete(ctx, challan.ID)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	paymentDate := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	payment, err := s.BillService.RecordPayment(ctx, gen.Bill.ID, billingapp.RecordPaymentRequest{
		PaymentDate: &paymentDate,
		Method:      "NEFT",
		Reference:   "TXN-88412",
	})
	require.NoError(t, err)
	assert.False(t, payment.AlreadyPaid)
	assert.Equal(t, int64(1), payment.OrdersCompleted)
	require.NotNil(t, payment.Bill)
	assert.Equal(t, billing.BillStatusPaid, payment.Bill.Status)

	final, err := s.OrderService.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCompleted, final.Status)

	// Paying the same bill again is a no-op and completes no orders.
	payment2, err := s.BillService.RecordPayment(ctx, gen.Bill.ID, billingapp.RecordPaymentRequest{
		Method: "NEFT",
	})
	require.NoError(t, err)
	assert.True(t, payment2.AlreadyPaid)
	assert.Zero(t, payment2.OrdersCompleted)
}

func TestOrderReversalRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newLifecycleSetup(t)
	ctx := context.Background()

	productID := s.DB.CreateTestProduct("TMT Bar 12mm", decimal.NewFromInt(720), 50)
	clientID := s.DB.CreateTestClient("buildco", "BuildCo Ltd")

	order, err := s.OrderService.Create(ctx, tradeapp.CreateOrderRequest{
		ClientID: clientID,
		Items: []tradeapp.CreateOrderItemInput{
			{ProductID: productID, Quantity: 20},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 30, s.DB.StockQuantity(productID))

	// Ordering more than is left fails atomically: no partial deduction.
	_, err = s.OrderService.Create(ctx, tradeapp.CreateOrderRequest{
		ClientID: clientID,
		Items: []tradeapp.CreateOrderItemInput{
			{ProductID: productID, Quantity: 31},
		},
	})
	assert.Equal(t, "INSUFFICIENT_STOCK", domainCode(t, err))
	assert.Equal(t, 30, s.DB.StockQuantity(productID))

	require.NoError(t, s.OrderService.Delete(ctx, order.ID))
	assert.Equal(t, 50, s.DB.StockQuantity(productID), "deletion returns stock")

	_, err = s.OrderService.GetByID(ctx, order.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestChallanReversalResetsOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newLifecycleSetup(t)
	ctx := context.Background()

	productID := s.DB.CreateTestProduct("River Sand", decimal.NewFromInt(95), 200)
	clientID := s.DB.CreateTestClient("sandco", "Sand Co")

	order, err := s.OrderService.Create(ctx, tradeapp.CreateOrderRequest{
		ClientID: clientID,
		Items: []tradeapp.CreateOrderItemInput{
			{ProductID: productID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	challan, err := s.ChallanService.Create(ctx, billingapp.CreateChallanRequest{OrderID: order.ID})
	require.NoError(t, err)

	require.NoError(t, s.ChallanService.Delete(ctx, challan.ID))

	reverted, err := s.OrderService.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, reverted.Status)
	assert.Nil(t, reverted.ChallanID)
	assert.Equal(t, 195, s.DB.StockQuantity(productID), "stock untouched by challan reversal")

	// The order is Pending again, so a new challan can be cut.
	_, err = s.ChallanService.Create(ctx, billingapp.CreateChallanRequest{OrderID: order.ID})
	require.NoError(t, err)
}

func TestBillDeletionReleasesChallans(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	s := newLifecycleSetup(t)
	ctx := context.Background()

	productID := s.DB.CreateTestProduct("Bricks", decimal.NewFromInt(8), 10000)
	clientID := s.DB.CreateTestClient("brickco", "Brick Co")

	challanDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	var challanIDs []uuid.UUID
	for i := 0; i < 3; i++ {
		order, err := s.OrderService.Create(ctx, tradeapp.CreateOrderRequest{
			ClientID: clientID,
			Items: []tradeapp.CreateOrderItemInput{
				{ProductID: productID, Quantity: 100},
			},
		})
		require.NoError(t, err)

		challan, err := s.ChallanService.Create(ctx, billingapp.CreateChallanRequest{
			OrderID:     order.ID,
			ChallanDate: &challanDate,
		})
		require.NoError(t, err)
		challanIDs = append(challanIDs, challan.ID)
	}

	gen, err := s.BillService.Generate(ctx, billingapp.GenerateBillRequest{
		ClientID: clientID,
		Period:   "2026-05",
	})
	require.NoError(t, err)
	require.True(t, gen.Generated)
	assert.Equal(t, 3, gen.ChallanCount)
	assert.True(t, gen.Bill.Total.Equal(decimal.NewFromInt(2400)))

	attached, err := s.BillService.GetChallans(ctx, gen.Bill.ID)
	require.NoError(t, err)
	assert.Len(t, attached, 3)

	require.NoError(t, s.BillService.Delete(ctx, gen.Bill.ID))

	for _, id := range challanIDs {
		c, err := s.ChallanService.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, c.MonthlyBillID, "challan released back to unbilled pool")
	}

	// Released challans can be billed again.
	regen, err := s.BillService.Generate(ctx, billingapp.GenerateBillRequest{
		ClientID: clientID,
		Period:   "2026-05",
	})
	require.NoError(t, err)
	assert.True(t, regen.Generated)
	assert.Equal(t, 3, regen.ChallanCount)
}

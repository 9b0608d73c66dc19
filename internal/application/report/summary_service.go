package report

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	appcatalog "github.com/orderbill/backend/internal/application/catalog"
	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/trade"
)

const summaryCacheKey = "report:dashboard_summary"

// SummaryCache is a byte-level cache for rendered summaries. Implementations
// live in infrastructure/cache (in-memory and Redis).
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardSummary is the operational snapshot served to the dashboard
type DashboardSummary struct {
	TotalProducts    int64                        `json:"total_products"`
	TotalClients     int64                        `json:"total_clients"`
	TotalOrders      int64                        `json:"total_orders"`
	PendingOrders    int64                        `json:"pending_orders"`
	ProcessingOrders int64                        `json:"processing_orders"`
	UnbilledChallans int64                        `json:"unbilled_challans"`
	UnpaidBills      int64                        `json:"unpaid_bills"`
	LowStockProducts []appcatalog.ProductResponse `json:"low_stock_products"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// SummaryService builds the dashboard summary from the lifecycle
// repositories, caching the rendered result for a short period.
type SummaryService struct {
	productRepo catalog.ProductRepository
	clientRepo  partner.ClientRepository
	orderRepo   trade.OrderRepository
	challanRepo billing.ChallanRepository
	billRepo    billing.MonthlyBillRepository
	cache       SummaryCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	productRepo catalog.ProductRepository,
	clientRepo partner.ClientRepository,
	orderRepo trade.OrderRepository,
	challanRepo billing.ChallanRepository,
	billRepo billing.MonthlyBillRepository,
	cache SummaryCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		productRepo: productRepo,
		clientRepo:  clientRepo,
		orderRepo:   orderRepo,
		challanRepo: challanRepo,
		billRepo:    billRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Get returns the dashboard summary, serving a cached copy when one is
// fresh. Cache failures are logged and degrade to a direct read.
func (s *SummaryService) Get(ctx context.Context) (*DashboardSummary, error) {
	if cached, ok, err := s.cache.Get(ctx, summaryCacheKey); err != nil {
		s.logger.Warn("summary cache read failed", zap.Error(err))
	} else if ok {
		var summary DashboardSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return &summary, nil
		}
		s.logger.Warn("discarding undecodable summary cache entry")
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, summaryCacheKey, encoded, s.cacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary so the next read rebuilds it
func (s *SummaryService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, summaryCacheKey)
}

func (s *SummaryService) build(ctx context.Context) (*DashboardSummary, error) {
	all := shared.DefaultFilter()

	totalProducts, err := s.productRepo.Count(ctx, all)
	if err != nil {
		return nil, err
	}
	totalClients, err := s.clientRepo.Count(ctx, all)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orderRepo.Count(ctx, all)
	if err != nil {
		return nil, err
	}

	pendingFilter := shared.DefaultFilter()
	pendingFilter.Filters["status"] = string(trade.OrderStatusPending)
	pendingOrders, err := s.orderRepo.Count(ctx, pendingFilter)
	if err != nil {
		return nil, err
	}

	processingFilter := shared.DefaultFilter()
	processingFilter.Filters["status"] = string(trade.OrderStatusProcessing)
	processingOrders, err := s.orderRepo.Count(ctx, processingFilter)
	if err != nil {
		return nil, err
	}

	unbilledFilter := shared.DefaultFilter()
	unbilledFilter.Filters["billed"] = false
	unbilledChallans, err := s.challanRepo.Count(ctx, unbilledFilter)
	if err != nil {
		return nil, err
	}

	unpaidFilter := shared.DefaultFilter()
	unpaidFilter.Filters["status"] = string(billing.BillStatusPending)
	unpaidBills, err := s.billRepo.Count(ctx, unpaidFilter)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStockItems := make([]appcatalog.ProductResponse, 0, len(lowStock))
	for i := range lowStock {
		lowStockItems = append(lowStockItems, appcatalog.ToProductResponse(&lowStock[i]))
	}

	return &DashboardSummary{
		TotalProducts:    totalProducts,
		TotalClients:     totalClients,
		TotalOrders:      totalOrders,
		PendingOrders:    pendingOrders,
		ProcessingOrders: processingOrders,
		UnbilledChallans: unbilledChallans,
		UnpaidBills:      unpaidBills,
		LowStockProducts: lowStockItems,
		GeneratedAt:      time.Now(),
	}, nil
}

package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/application/tx"
	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/shared/valueobject"
)

// BillService handles monthly bill aggregation and payment recording
type BillService struct {
	scope         tx.TransactionScope
	billRepo      billing.MonthlyBillRepository
	challanRepo   billing.ChallanRepository
	dueOffsetDays int
}

// NewBillService creates a new BillService. dueOffsetDays is the number of
// days from generation to the due date.
func NewBillService(scope tx.TransactionScope, billRepo billing.MonthlyBillRepository, challanRepo billing.ChallanRepository, dueOffsetDays int) *BillService {
	return &BillService{
		scope:         scope,
		billRepo:      billRepo,
		challanRepo:   challanRepo,
		dueOffsetDays: dueOffsetDays,
	}
}

// Generate sweeps the client's unbilled challans of the period into one
// monthly bill. The challan rows are locked until commit so none of them
// can be concurrently deleted or swept into another bill. An empty sweep is
// a successful no-op and creates nothing. The one-bill-per-client-period
// rule is backed by a unique constraint; a duplicate surfaces as CONFLICT.
func (s *BillService) Generate(ctx context.Context, req GenerateBillRequest) (*GenerateBillResponse, error) {
	period, err := valueobject.ParseBillingPeriod(req.Period)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	from, to := period.Interval()

	var response GenerateBillResponse
	err = s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		if _, err := repos.Clients().FindByID(ctx, req.ClientID); err != nil {
			return err
		}

		challans, err := repos.Challans().FindUnbilledForUpdate(ctx, req.ClientID, from, to)
		if err != nil {
			return err
		}
		if len(challans) == 0 {
			response = GenerateBillResponse{
				Generated: false,
				Message:   fmt.Sprintf("No unbilled challans for period %s; nothing to generate", period),
			}
			return nil
		}

		total := decimal.Zero
		challanIDs := make([]uuid.UUID, 0, len(challans))
		for _, c := range challans {
			total = total.Add(c.Total)
			challanIDs = append(challanIDs, c.ID)
		}

		bill, err := billing.NewMonthlyBill(req.ClientID, period, total, s.dueOffsetDays)
		if err != nil {
			return err
		}
		if err := repos.Bills().Save(ctx, bill); err != nil {
			return err
		}
		if err := repos.Challans().LinkToBill(ctx, challanIDs, bill.ID); err != nil {
			return err
		}

		billResponse := ToBillResponse(bill)
		response = GenerateBillResponse{
			Generated:    true,
			ChallanCount: len(challans),
			Bill:         &billResponse,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// CheckStatus reports whether a bill can be generated for the client and
// period. The answer is advisory: it reads without locks and Generate
// re-validates everything transactionally.
func (s *BillService) CheckStatus(ctx context.Context, clientID uuid.UUID, periodStr string) (*CheckBillStatusResponse, error) {
	period, err := valueobject.ParseBillingPeriod(periodStr)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	existing, err := s.billRepo.FindByClientAndPeriod(ctx, clientID, period.String())
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		billResponse := ToBillResponse(existing)
		return &CheckBillStatusResponse{
			CanGenerate:  false,
			Message:      fmt.Sprintf("A bill already exists for period %s", period),
			ExistingBill: &billResponse,
		}, nil
	}

	from, to := period.Interval()
	count, err := s.challanRepo.CountUnbilled(ctx, clientID, from, to)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &CheckBillStatusResponse{
			CanGenerate: false,
			Message:     fmt.Sprintf("No unbilled challans for period %s", period),
		}, nil
	}
	return &CheckBillStatusResponse{
		CanGenerate:   true,
		Message:       fmt.Sprintf("%d unbilled challan(s) ready for billing", count),
		UnbilledCount: count,
	}, nil
}

// Delete removes a bill after releasing all of its challans back to the
// unbilled pool. Orders completed through this bill's payment keep their
// Completed status: the goods were delivered regardless of the paperwork.
func (s *BillService) Delete(ctx context.Context, billID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		if _, err := repos.Bills().FindByID(ctx, billID); err != nil {
			return err
		}
		if _, err := repos.Challans().UnlinkFromBill(ctx, billID); err != nil {
			return err
		}
		return repos.Bills().Delete(ctx, billID)
	})
}

// RecordPayment settles a bill and completes its in-flight orders. The paid
// update is conditional on the bill not being Paid already, which makes the
// operation idempotent: a duplicate submission reports AlreadyPaid and
// runs no cascade.
func (s *BillService) RecordPayment(ctx context.Context, billID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var response RecordPaymentResponse
	err := s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		applied, err := repos.Bills().MarkPaid(ctx, billID, paymentDate, req.Method, req.Reference)
		if err != nil {
			return err
		}

		bill, err := repos.Bills().FindByID(ctx, billID)
		if err != nil {
			return err
		}
		billResponse := ToBillResponse(bill)

		if !applied {
			response = RecordPaymentResponse{AlreadyPaid: true, Bill: &billResponse}
			return nil
		}

		challans, err := repos.Challans().FindByBillID(ctx, billID)
		if err != nil {
			return err
		}
		challanIDs := make([]uuid.UUID, 0, len(challans))
		for _, c := range challans {
			challanIDs = append(challanIDs, c.ID)
		}

		var completed int64
		if len(challanIDs) > 0 {
			completed, err = repos.Orders().CompleteProcessingByChallanIDs(ctx, challanIDs)
			if err != nil {
				return err
			}
		}

		response = RecordPaymentResponse{
			OrdersCompleted: completed,
			Bill:            &billResponse,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a monthly bill
func (s *BillService) GetByID(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// GetChallans lists the challans linked to a bill
func (s *BillService) GetChallans(ctx context.Context, billID uuid.UUID) ([]ChallanResponse, error) {
	if _, err := s.billRepo.FindByID(ctx, billID); err != nil {
		return nil, err
	}
	challans, err := s.challanRepo.FindByBillID(ctx, billID)
	if err != nil {
		return nil, err
	}
	items := make([]ChallanResponse, 0, len(challans))
	for i := range challans {
		items = append(items, ToChallanResponse(&challans[i]))
	}
	return items, nil
}

// List retrieves bills with filtering and pagination
func (s *BillService) List(ctx context.Context, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Status != "" && !billing.BillStatus(filter.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown bill status: "+filter.Status)
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = "generated_at"
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Period != "" {
		period, err := valueobject.ParseBillingPeriod(filter.Period)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
		}
		domainFilter.Filters["billing_period"] = period.String()
	}

	bills, err := s.billRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, ToBillResponse(&bills[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/application/tx"
	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/shared"
)

// ChallanService handles challan issuance and reversal
type ChallanService struct {
	scope       tx.TransactionScope
	challanRepo billing.ChallanRepository
}

// NewChallanService creates a new ChallanService
func NewChallanService(scope tx.TransactionScope, challanRepo billing.ChallanRepository) *ChallanService {
	return &ChallanService{
		scope:       scope,
		challanRepo: challanRepo,
	}
}

// Create issues a challan for a Pending order. The order row is locked for
// the duration so two concurrent requests cannot both pass the guards; the
// challan total is recomputed from the order items rather than copied from
// the order header, making the challan the authoritative delivery amount.
func (s *ChallanService) Create(ctx context.Context, req CreateChallanRequest) (*ChallanResponse, error) {
	challanDate := time.Now()
	if req.ChallanDate != nil {
		challanDate = *req.ChallanDate
	}

	var response ChallanResponse
	err := s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range order.Items {
			total = total.Add(item.Subtotal())
		}

		challan, err := billing.NewChallan(order.ID, order.ClientID, challanDate, total, req.Notes)
		if err != nil {
			return err
		}
		if err := order.AttachChallan(challan.ID); err != nil {
			return err
		}

		if err := repos.Challans().Save(ctx, challan); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		response = ToChallanResponse(challan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete reverses an unbilled challan: the owning order is unlinked and
// reset to Pending in the same transaction. Billed challans are refused
// until their bill is deleted.
func (s *ChallanService) Delete(ctx context.Context, challanID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		// Lock the challan row so a concurrent bill generation cannot
		// stamp the bill link after the guard passes.
		challan, err := repos.Challans().FindByIDForUpdate(ctx, challanID)
		if err != nil {
			return err
		}
		if err := challan.CanDelete(); err != nil {
			return err
		}

		order, err := repos.Orders().FindByIDForUpdate(ctx, challan.OrderID)
		if err != nil {
			return err
		}
		if err := order.DetachChallan(); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		return repos.Challans().Delete(ctx, challanID)
	})
}

// ResetBilling releases a single challan from its monthly bill without
// recomputing the bill's total. The stale total is intentional: the reset
// exists for correcting mis-assigned challans before regeneration.
func (s *ChallanService) ResetBilling(ctx context.Context, challanID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		cleared, err := repos.Challans().ClearBillLink(ctx, challanID)
		if err != nil {
			return err
		}
		if !cleared {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GetByID retrieves a challan
func (s *ChallanService) GetByID(ctx context.Context, challanID uuid.UUID) (*ChallanResponse, error) {
	challan, err := s.challanRepo.FindByID(ctx, challanID)
	if err != nil {
		return nil, err
	}
	response := ToChallanResponse(challan)
	return &response, nil
}

// List retrieves challans with filtering and pagination
func (s *ChallanService) List(ctx context.Context, filter ChallanListFilter) (*shared.Paginated[ChallanResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = "challan_date"
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Billed != nil {
		domainFilter.Filters["billed"] = *filter.Billed
	}
	if filter.DateFrom != nil {
		domainFilter.Filters["date_from"] = *filter.DateFrom
	}
	if filter.DateTo != nil {
		domainFilter.Filters["date_to"] = *filter.DateTo
	}

	challans, err := s.challanRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.challanRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ChallanResponse, 0, len(challans))
	for i := range challans {
		items = append(items, ToChallanResponse(&challans[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/application/tx"
	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/trade"
)

// OrderService handles the order side of the lifecycle
type OrderService struct {
	scope     tx.TransactionScope
	orderRepo trade.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(scope tx.TransactionScope, orderRepo trade.OrderRepository) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
	}
}

// Create creates a Pending order, resolving each line's unit price from the
// client's override (if any) and reserving stock for every line. All of it
// happens in one transaction: a single unavailable product fails the whole
// order and leaves stock untouched.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	productIDs := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	for _, line := range req.Items {
		if _, dup := seen[line.ProductID]; dup {
			return nil, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Product %s appears in more than one line", line.ProductID))
		}
		seen[line.ProductID] = struct{}{}
		productIDs = append(productIDs, line.ProductID)
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		if _, err := repos.Clients().FindByID(ctx, req.ClientID); err != nil {
			return err
		}

		products, err := repos.Products().FindByIDsForUpdate(ctx, productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		for _, id := range productIDs {
			if _, ok := byID[id]; !ok {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", id))
			}
		}

		overrides, err := repos.ClientPrices().FindForProducts(ctx, req.ClientID, productIDs)
		if err != nil {
			return err
		}

		items := make([]trade.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product := byID[line.ProductID]

			unitPrice := product.Price
			if override, ok := overrides[line.ProductID]; ok {
				unitPrice = override.UnitPrice
			}

			if err := product.Reserve(line.Quantity); err != nil {
				return err
			}

			item, err := trade.NewOrderItem(line.ProductID, line.Quantity, unitPrice)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		order, err := trade.NewOrder(req.ClientID, orderDate, req.Notes, items)
		if err != nil {
			return err
		}

		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		for i := range products {
			if err := repos.Products().Save(ctx, &products[i]); err != nil {
				return err
			}
		}

		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete reverses an order: every line's quantity is returned to stock and
// the order with its items is removed, all in one transaction. Orders with
// an associated challan are refused.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.CanDelete(); err != nil {
			return err
		}

		quantities := make(map[uuid.UUID]int, len(order.Items))
		productIDs := make([]uuid.UUID, 0, len(order.Items))
		for _, item := range order.Items {
			if _, ok := quantities[item.ProductID]; !ok {
				productIDs = append(productIDs, item.ProductID)
			}
			quantities[item.ProductID] += item.Quantity
		}

		products, err := repos.Products().FindByIDsForUpdate(ctx, productIDs)
		if err != nil {
			return err
		}
		for i := range products {
			if err := products[i].Release(quantities[products[i].ID]); err != nil {
				return err
			}
			if err := repos.Products().Save(ctx, &products[i]); err != nil {
				return err
			}
		}

		return repos.Orders().Delete(ctx, orderID)
	})
}

// Cancel voids a Pending order without touching stock
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos tx.TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Status != "" && !trade.OrderStatus(filter.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+filter.Status)
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = "order_date"
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// OrderTotal recomputes an order's total from its item lines. Exposed for
// consumers that need the live sum rather than the stored header value.
func OrderTotal(order *trade.Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

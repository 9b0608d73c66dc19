package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/trade"
)

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	ClientID  uuid.UUID                `json:"client_id" binding:"required"`
	OrderDate *time.Time               `json:"order_date"`
	Notes     string                   `json:"notes"`
	Items     []CreateOrderItemInput   `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput represents one line of the create order request.
// No price is accepted: the unit price is resolved server side from the
// client's override or the catalog price.
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// OrderListFilter represents filter options for order listing
type OrderListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status"`
}

// OrderItemResponse represents one order line in responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	ClientID  uuid.UUID           `json:"client_id"`
	OrderDate time.Time           `json:"order_date"`
	Status    trade.OrderStatus   `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	ChallanID *uuid.UUID          `json:"challan_id,omitempty"`
	Notes     string              `json:"notes,omitempty"`
	Items     []OrderItemResponse `json:"items,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		})
	}
	return OrderResponse{
		ID:        order.ID,
		ClientID:  order.ClientID,
		OrderDate: order.OrderDate,
		Status:    order.Status,
		Total:     order.Total,
		ChallanID: order.ChallanID,
		Notes:     order.Notes,
		Items:     items,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid checks whether the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks whether the transition is allowed.
// Pending moves forward when a challan is issued and Processing completes
// when the covering bill is paid; Cancelled and Completed are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusCompleted
	default:
		return false
	}
}

// Order is the aggregate root of the order lifecycle.
// Item prices are frozen at creation; the total is derived from the items.
// ChallanID is the at-most-one delivery challan issued for this order.
type Order struct {
	shared.BaseEntity
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate time.Time       `gorm:"not null;index"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ChallanID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Notes     string          `gorm:"type:text"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one priced line of an order.
// UnitPrice is the resolved price (client override or catalog price) at the
// moment the order was created and never changes afterwards.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity times the frozen unit price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem creates an order line with a resolved price
func NewOrderItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item price cannot be negative")
	}

	return &OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// NewOrder creates a Pending order from priced items
func NewOrder(clientID uuid.UUID, orderDate time.Time, notes string, items []OrderItem) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one item")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		OrderDate:  orderDate,
		Status:     OrderStatusPending,
		Notes:      notes,
		Items:      make([]OrderItem, 0, len(items)),
	}
	for _, item := range items {
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	order.recalculateTotal()
	return order, nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Total = total
}

// HasChallan reports whether a challan has been issued for this order
func (o *Order) HasChallan() bool {
	return o.ChallanID != nil
}

// AttachChallan links the order to its challan and moves it to Processing.
// The two mutations belong together: an order with a challan is in delivery.
func (o *Order) AttachChallan(challanID uuid.UUID) error {
	if challanID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Challan ID cannot be empty")
	}
	if o.HasChallan() {
		return shared.NewDomainError("CONFLICT", "Order already has an associated challan")
	}
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("CONFLICT",
			"Challan can only be generated for a Pending order, current status: "+string(o.Status))
	}
	o.ChallanID = &challanID
	o.Status = OrderStatusProcessing
	o.Touch()
	return nil
}

// DetachChallan removes the challan link and resets the order to Pending
func (o *Order) DetachChallan() error {
	if !o.HasChallan() {
		return shared.NewDomainError("INVALID_STATE", "Order has no associated challan")
	}
	o.ChallanID = nil
	o.Status = OrderStatusPending
	o.Touch()
	return nil
}

// Complete marks a Processing order as Completed after its bill is paid
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot complete order in status "+string(o.Status))
	}
	o.Status = OrderStatusCompleted
	o.Touch()
	return nil
}

// Cancel voids a Pending order that has no challan. Stock is not touched;
// cancellation is a bookkeeping state, reversal with restock is deletion.
func (o *Order) Cancel() error {
	if o.HasChallan() {
		return shared.NewDomainError("CONFLICT", "Cannot cancel an order with an associated challan")
	}
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot cancel order in status "+string(o.Status))
	}
	o.Status = OrderStatusCancelled
	o.Touch()
	return nil
}

// CanDelete reports whether the order may be deleted with restock
func (o *Order) CanDelete() error {
	if o.HasChallan() {
		return shared.NewDomainError("CONFLICT",
			"Cannot delete order with an associated challan; delete the challan first")
	}
	return nil
}

package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/shared"
)

// Challan is a delivery document issued for exactly one order.
// Its total is a snapshot of the order's item subtotals taken at issue time
// and stays fixed even if catalog prices change later. MonthlyBillID is set
// once the challan has been swept into a monthly bill.
type Challan struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChallanDate   time.Time       `gorm:"not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MonthlyBillID *uuid.UUID      `gorm:"type:uuid;index"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Challan) TableName() string {
	return "challans"
}

// NewChallan issues a challan for an order with a recomputed total
func NewChallan(orderID, clientID uuid.UUID, challanDate time.Time, total decimal.Decimal, notes string) (*Challan, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Challan total cannot be negative")
	}
	if challanDate.IsZero() {
		challanDate = time.Now()
	}

	return &Challan{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		ClientID:    clientID,
		ChallanDate: challanDate,
		Total:       total,
		Notes:       notes,
	}, nil
}

// IsBilled reports whether the challan belongs to a monthly bill
func (c *Challan) IsBilled() bool {
	return c.MonthlyBillID != nil
}

// CanDelete reports whether the challan may be deleted.
// A billed challan must be released from its bill first.
func (c *Challan) CanDelete() error {
	if c.IsBilled() {
		return shared.NewDomainError("CONFLICT",
			"Cannot delete a challan that belongs to a monthly bill; delete the bill first")
	}
	return nil
}

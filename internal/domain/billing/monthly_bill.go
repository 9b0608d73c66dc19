package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/domain/shared/valueobject"
)

// BillStatus represents the payment state of a monthly bill
type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPaid    BillStatus = "Paid"
)

// IsValid checks whether the status is a known value
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusPaid
}

// MonthlyBill aggregates one client's unbilled challans for one calendar
// month. BillingPeriod is stored normalized ("YYYY-MM") and is unique per
// client. The total is the sum of the linked challan totals at generation
// time and is not recomputed when a challan is later released.
type MonthlyBill struct {
	shared.BaseEntity
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bill_client_period,priority:1"`
	BillingPeriod string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_bill_client_period,priority:2"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GeneratedAt   time.Time       `gorm:"not null"`
	DueDate       time.Time       `gorm:"not null"`
	Status        BillStatus      `gorm:"type:varchar(20);not null;default:'Pending';index"`
	PaymentDate   *time.Time
	PaymentMethod string `gorm:"type:varchar(50)"`
	PaymentRef    string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (MonthlyBill) TableName() string {
	return "monthly_bills"
}

// NewMonthlyBill creates a Pending bill for a client and period.
// dueOffsetDays counts from the generation date, not from month end.
func NewMonthlyBill(clientID uuid.UUID, period valueobject.BillingPeriod, total decimal.Decimal, dueOffsetDays int) (*MonthlyBill, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if period.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Billing period cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bill total cannot be negative")
	}
	if dueOffsetDays <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Due date offset must be positive")
	}

	now := time.Now()
	return &MonthlyBill{
		BaseEntity:    shared.NewBaseEntity(),
		ClientID:      clientID,
		BillingPeriod: period.String(),
		Total:         total,
		GeneratedAt:   now,
		DueDate:       now.AddDate(0, 0, dueOffsetDays),
		Status:        BillStatusPending,
	}, nil
}

// IsPaid reports whether the bill has been settled
func (b *MonthlyBill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// IsOverdue reports whether an unpaid bill is past its due date
func (b *MonthlyBill) IsOverdue(now time.Time) bool {
	return !b.IsPaid() && now.After(b.DueDate)
}

// RecordPayment marks the bill as paid. Recording against an already paid
// bill is a no-op reported through the return value so callers can answer
// idempotently instead of failing.
func (b *MonthlyBill) RecordPayment(date time.Time, method, reference string) (applied bool, err error) {
	if b.IsPaid() {
		return false, nil
	}
	if date.IsZero() {
		date = time.Now()
	}
	if method == "" {
		return false, shared.NewDomainError("INVALID_INPUT", "Payment method cannot be empty")
	}

	b.Status = BillStatusPaid
	b.PaymentDate = &date
	b.PaymentMethod = method
	b.PaymentRef = reference
	b.Touch()
	return true, nil
}

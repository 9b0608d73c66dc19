package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/billing"
)

// ==================== Challan DTOs ====================

// CreateChallanRequest represents a request to issue a challan for an order
type CreateChallanRequest struct {
	OrderID     uuid.UUID  `json:"order_id" binding:"required"`
	ChallanDate *time.Time `json:"challan_date"`
	Notes       string     `json:"notes"`
}

// ChallanListFilter represents filter options for challan listing
type ChallanListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	ClientID *uuid.UUID `form:"client_id"`
	Billed   *bool      `form:"billed"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ChallanResponse represents a challan in responses
type ChallanResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	ClientID      uuid.UUID       `json:"client_id"`
	ChallanDate   time.Time       `json:"challan_date"`
	Total         decimal.Decimal `json:"total"`
	MonthlyBillID *uuid.UUID      `json:"monthly_bill_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToChallanResponse converts a challan aggregate to its response form
func ToChallanResponse(c *billing.Challan) ChallanResponse {
	return ChallanResponse{
		ID:            c.ID,
		OrderID:       c.OrderID,
		ClientID:      c.ClientID,
		ChallanDate:   c.ChallanDate,
		Total:         c.Total,
		MonthlyBillID: c.MonthlyBillID,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
	}
}

// ==================== Monthly bill DTOs ====================

// GenerateBillRequest represents a request to generate a monthly bill
type GenerateBillRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	// Period is the billing month as "YYYY-MM"; "YYYY-M" is accepted
	// and normalized.
	Period string `json:"period" binding:"required"`
}

// GenerateBillResponse reports the outcome of a bill generation request.
// Generated is false when the client has no unbilled challans for the
// period; that is a success, not an error.
type GenerateBillResponse struct {
	Generated    bool          `json:"generated"`
	Message      string        `json:"message,omitempty"`
	ChallanCount int           `json:"challan_count"`
	Bill         *BillResponse `json:"bill,omitempty"`
}

// CheckBillStatusResponse answers whether a bill can be generated for a
// client and period. Advisory only: generation re-checks under locks.
type CheckBillStatusResponse struct {
	CanGenerate     bool          `json:"can_generate"`
	Message         string        `json:"message"`
	UnbilledCount   int64         `json:"unbilled_count"`
	ExistingBill    *BillResponse `json:"existing_bill,omitempty"`
}

// RecordPaymentRequest represents a payment against a monthly bill
type RecordPaymentRequest struct {
	PaymentDate *time.Time `json:"payment_date"`
	Method      string     `json:"method" binding:"required,min=1,max=50"`
	Reference   string     `json:"reference" binding:"max=100"`
}

// RecordPaymentResponse reports the outcome of recording a payment.
// AlreadyPaid means the bill was settled before this request; nothing
// was changed and no orders were completed by it.
type RecordPaymentResponse struct {
	AlreadyPaid     bool          `json:"already_paid"`
	OrdersCompleted int64         `json:"orders_completed"`
	Bill            *BillResponse `json:"bill,omitempty"`
}

// BillListFilter represents filter options for bill listing
type BillListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status"`
	Period   string     `form:"period"`
}

// BillResponse represents a monthly bill in responses
type BillResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	BillingPeriod string          `json:"billing_period"`
	Total         decimal.Decimal `json:"total"`
	GeneratedAt   time.Time       `json:"generated_at"`
	DueDate       time.Time       `json:"due_date"`
	Status        billing.BillStatus `json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToBillResponse converts a monthly bill aggregate to its response form
func ToBillResponse(b *billing.MonthlyBill) BillResponse {
	return BillResponse{
		ID:            b.ID,
		ClientID:      b.ClientID,
		BillingPeriod: b.BillingPeriod,
		Total:         b.Total,
		GeneratedAt:   b.GeneratedAt,
		DueDate:       b.DueDate,
		Status:        b.Status,
		PaymentDate:   b.PaymentDate,
		PaymentMethod: b.PaymentMethod,
		PaymentRef:    b.PaymentRef,
		CreatedAt:     b.CreatedAt,
	}
}

package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orderbill/backend/internal/domain/shared"
)

// ChallanRepository defines the persistence interface for challans
type ChallanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Challan, error)
	// FindByIDForUpdate loads and row-locks a challan. Deletion guards must
	// read through this method so a concurrent bill generation cannot stamp
	// the bill link between the guard and the delete.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Challan, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Challan, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Challan, error)
	// FindUnbilledForUpdate row-locks the client's unbilled challans with a
	// challan date inside [from, to). The lock pins the selection until the
	// surrounding bill generation commits.
	FindUnbilledForUpdate(ctx context.Context, clientID uuid.UUID, from, to time.Time) ([]Challan, error)
	CountUnbilled(ctx context.Context, clientID uuid.UUID, from, to time.Time) (int64, error)
	Save(ctx context.Context, challan *Challan) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// LinkToBill stamps the bill on the given challans
	LinkToBill(ctx context.Context, challanIDs []uuid.UUID, billID uuid.UUID) error
	// UnlinkFromBill clears the bill link for every challan of the bill,
	// returning the number of challans released.
	UnlinkFromBill(ctx context.Context, billID uuid.UUID) (int64, error)
	// ClearBillLink clears the bill link for a single challan, returning
	// false when the challan does not exist.
	ClearBillLink(ctx context.Context, challanID uuid.UUID) (bool, error)
	FindByBillID(ctx context.Context, billID uuid.UUID) ([]Challan, error)
}

// MonthlyBillRepository defines the persistence interface for monthly bills
type MonthlyBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MonthlyBill, error)
	FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period string) (*MonthlyBill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]MonthlyBill, error)
	Save(ctx context.Context, bill *MonthlyBill) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// MarkPaid performs a conditional paid update, returning false when the
	// bill was already paid. The condition keeps payment recording
	// idempotent under concurrent submissions.
	MarkPaid(ctx context.Context, billID uuid.UUID, date time.Time, method, reference string) (bool, error)
}

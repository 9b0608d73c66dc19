package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderbill/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate loads the order with its items under a row lock
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// CompleteProcessingByChallanIDs promotes Processing orders whose challan
	// is in the given set to Completed, returning the number updated.
	CompleteProcessingByChallanIDs(ctx context.Context, challanIDs []uuid.UUID) (int64, error)
}

package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderbill/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDsForUpdate loads and row-locks the given products ordered by
	// ascending ID. Callers that lock multiple products must always go
	// through this method so concurrent reservations cannot deadlock.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

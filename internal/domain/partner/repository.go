package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderbill/backend/internal/domain/shared"
)

// ClientRepository defines the persistence interface for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByUsername(ctx context.Context, username string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ClientPriceRepository defines the persistence interface for price overrides
type ClientPriceRepository interface {
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]ClientPrice, error)
	// FindForProducts returns the client's overrides for the given products,
	// keyed by product ID. Products without an override are absent.
	FindForProducts(ctx context.Context, clientID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]ClientPrice, error)
	Save(ctx context.Context, price *ClientPrice) error
	Delete(ctx context.Context, clientID, productID uuid.UUID) error
}

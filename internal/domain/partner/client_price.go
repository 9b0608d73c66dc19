package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/shared"
)

// ClientPrice is a per-client unit price override for one product.
// When present it wins over the catalog price at order creation; the
// resolved price is then frozen on the order item.
type ClientPrice struct {
	shared.BaseEntity
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_client_price,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_client_price,priority:2"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ClientPrice) TableName() string {
	return "client_prices"
}

// NewClientPrice creates a price override for a client/product pair
func NewClientPrice(clientID, productID uuid.UUID, unitPrice decimal.Decimal) (*ClientPrice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Override price cannot be negative")
	}

	return &ClientPrice{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		ProductID:  productID,
		UnitPrice:  unitPrice,
	}, nil
}

// UpdatePrice changes the override amount
func (cp *ClientPrice) UpdatePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Override price cannot be negative")
	}
	cp.UnitPrice = unitPrice
	cp.Touch()
	return nil
}

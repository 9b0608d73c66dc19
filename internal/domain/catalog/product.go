package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/shared"
)

// Product represents a sellable item and its stock position.
// It is the aggregate root for inventory operations: all stock movements
// go through Reserve and Release so the non-negative invariant holds.
type Product struct {
	shared.BaseEntity
	Name              string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description       string          `gorm:"type:text"`
	Price             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:10"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, stockQuantity, lowStockThreshold int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock quantity cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Low stock threshold cannot be negative")
	}

	return &Product{
		BaseEntity:        shared.NewBaseEntity(),
		Name:              name,
		Price:             price,
		StockQuantity:     stockQuantity,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

// Update updates the product's descriptive fields and price
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Touch()
	return nil
}

// SetLowStockThreshold sets the level below which the product is reported as low
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Low stock threshold cannot be negative")
	}
	p.LowStockThreshold = threshold
	p.Touch()
	return nil
}

// Reserve deducts quantity from stock for an order line.
// It fails without mutating when the requested quantity exceeds stock.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reserve quantity must be positive")
	}
	if quantity > p.StockQuantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for product %q: requested %d, available %d", p.Name, quantity, p.StockQuantity))
	}
	p.StockQuantity -= quantity
	p.Touch()
	return nil
}

// Release returns quantity to stock when an order is reversed.
// The release is intentionally unbounded: restocking has no upper limit.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Release quantity must be positive")
	}
	p.StockQuantity += quantity
	p.Touch()
	return nil
}

// AdjustStock sets the absolute stock quantity, used by manual corrections
func (p *Product) AdjustStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock quantity cannot be negative")
	}
	p.StockQuantity = quantity
	p.Touch()
	return nil
}

// IsLowStock reports whether the product is at or below its threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderbill/backend/internal/domain/partner"
)

// CreateClientRequest represents a request to create a client account
type CreateClientRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	CompanyName string `json:"company_name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

// UpdateClientRequest represents a request to update a client profile
type UpdateClientRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

// ClientListFilter represents filter options for client listing
type ClientListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// ClientResponse represents a client in responses
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToClientResponse converts a client aggregate to its response form
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		Username:    c.Username,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SetClientPriceRequest upserts a price override for one product
type SetClientPriceRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// ClientPriceResponse represents a price override in responses
type ClientPriceResponse struct {
	ClientID  uuid.UUID       `json:"client_id"`
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToClientPriceResponse converts a price override to its response form
func ToClientPriceResponse(cp *partner.ClientPrice) ClientPriceResponse {
	return ClientPriceResponse{
		ClientID:  cp.ClientID,
		ProductID: cp.ProductID,
		UnitPrice: cp.UnitPrice,
		UpdatedAt: cp.UpdatedAt,
	}
}

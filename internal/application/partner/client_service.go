package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/shared"
)

// ClientService handles client accounts and their price overrides
type ClientService struct {
	clientRepo  partner.ClientRepository
	priceRepo   partner.ClientPriceRepository
	productRepo catalog.ProductRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, priceRepo partner.ClientPriceRepository, productRepo catalog.ProductRepository) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		priceRepo:   priceRepo,
		productRepo: productRepo,
	}
}

// Create creates a client account. The username must be unique; a duplicate
// surfaces as ALREADY_EXISTS from the repository.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(req.Username, req.CompanyName)
	if err != nil {
		return nil, err
	}
	client.ContactName = req.ContactName
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Update updates a client's profile fields
func (s *ClientService) Update(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := client.Update(req.CompanyName, req.ContactName, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client account
func (s *ClientService) Delete(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, clientID)
}

// GetByID retrieves a client
func (s *ClientService) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = "username"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, ToClientResponse(&clients[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// SetPrice creates or updates a price override for a client/product pair.
// The override only affects orders created after it is set; existing order
// items keep their frozen price.
func (s *ClientService) SetPrice(ctx context.Context, clientID uuid.UUID, req SetClientPriceRequest) (*ClientPriceResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	overrides, err := s.priceRepo.FindForProducts(ctx, clientID, []uuid.UUID{req.ProductID})
	if err != nil {
		return nil, err
	}

	var price *partner.ClientPrice
	if existing, ok := overrides[req.ProductID]; ok {
		price = &existing
		if err := price.UpdatePrice(req.UnitPrice); err != nil {
			return nil, err
		}
	} else {
		price, err = partner.NewClientPrice(clientID, req.ProductID, req.UnitPrice)
		if err != nil {
			return nil, err
		}
	}

	if err := s.priceRepo.Save(ctx, price); err != nil {
		return nil, err
	}
	response := ToClientPriceResponse(price)
	return &response, nil
}

// ListPrices lists a client's price overrides
func (s *ClientService) ListPrices(ctx context.Context, clientID uuid.UUID) ([]ClientPriceResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	prices, err := s.priceRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]ClientPriceResponse, 0, len(prices))
	for i := range prices {
		items = append(items, ToClientPriceResponse(&prices[i]))
	}
	return items, nil
}

// DeletePrice removes a price override; later orders fall back to the
// catalog price.
func (s *ClientService) DeletePrice(ctx context.Context, clientID, productID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return err
	}
	return s.priceRepo.Delete(ctx, clientID, productID)
}

package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func mustProduct(t *testing.T, name string, price int64, stock, threshold int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.NewFromInt(price), stock, threshold)
	require.NoError(t, err)
	return p
}

func TestProductServiceCreate(t *testing.T) {
	t.Run("creates product with default threshold", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.Name == "Cement 50kg" && p.LowStockThreshold == defaultLowStockThreshold
		})).Return(nil)

		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:          "Cement 50kg",
			Price:         decimal.NewFromInt(450),
			StockQuantity: 100,
		})

		require.NoError(t, err)
		assert.Equal(t, "Cement 50kg", resp.Name)
		assert.Equal(t, 100, resp.StockQuantity)
		assert.False(t, resp.LowStock)
		repo.AssertExpectations(t)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), CreateProductRequest{
			Name:  "Bad",
			Price: decimal.NewFromInt(-1),
		})

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_INPUT", derr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("applies manual stock correction", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		existing := mustProduct(t, "TMT Bar", 720, 40, 10)
		newStock := 55

		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		resp, err := service.Update(context.Background(), existing.ID, UpdateProductRequest{
			Name:          "TMT Bar 12mm",
			Price:         decimal.NewFromInt(735),
			StockQuantity: &newStock,
		})

		require.NoError(t, err)
		assert.Equal(t, "TMT Bar 12mm", resp.Name)
		assert.Equal(t, 55, resp.StockQuantity)
		repo.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateProductRequest{
			Name:  "X",
			Price: decimal.NewFromInt(1),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceDelete(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	existing := mustProduct(t, "Bricks", 8, 500, 50)
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Delete", mock.Anything, existing.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), existing.ID))
	repo.AssertExpectations(t)
}

func TestProductServiceList(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	products := []catalog.Product{
		*mustProduct(t, "Bricks", 8, 500, 50),
		*mustProduct(t, "Cement", 450, 100, 10),
	}

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "name" && f.OrderDir == "asc" && f.Search == "c"
	})).Return(products, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(7), nil)

	result, err := service.List(context.Background(), ProductListFilter{Page: 2, PageSize: 2, Search: "c"})

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(7), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 4, result.TotalPages)
}

func TestProductServiceListLowStock(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	low := mustProduct(t, "River Sand", 95, 3, 20)
	repo.On("FindLowStock", mock.Anything).Return([]catalog.Product{*low}, nil)

	items, err := service.ListLowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].LowStock)
}

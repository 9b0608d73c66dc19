package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/shared"
)

// GormClientPriceRepository implements ClientPriceRepository using GORM
type GormClientPriceRepository struct {
	db *gorm.DB
}

// NewGormClientPriceRepository creates a new GormClientPriceRepository
func NewGormClientPriceRepository(db *gorm.DB) *GormClientPriceRepository {
	return &GormClientPriceRepository{db: db}
}

// FindByClient finds all price overrides for a client
func (r *GormClientPriceRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]partner.ClientPrice, error) {
	var prices []partner.ClientPrice
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

// FindForProducts returns the client's overrides for the given products,
// keyed by product ID
func (r *GormClientPriceRepository) FindForProducts(ctx context.Context, clientID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]partner.ClientPrice, error) {
	result := make(map[uuid.UUID]partner.ClientPrice, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var prices []partner.ClientPrice
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND product_id IN ?", clientID, productIDs).
		Find(&prices).Error; err != nil {
		return nil, err
	}
	for _, price := range prices {
		result[price.ProductID] = price
	}
	return result, nil
}

// Save persists a price override, updating the price when the
// client/product pair already has one
func (r *GormClientPriceRepository) Save(ctx context.Context, price *partner.ClientPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"unit_price", "updated_at"}),
		}).
		Create(price).Error
}

// Delete removes a price override for a client/product pair
func (r *GormClientPriceRepository) Delete(ctx context.Context, clientID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&partner.ClientPrice{}, "client_id = ? AND product_id = ?", clientID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.ClientPriceRepository = (*GormClientPriceRepository)(nil)

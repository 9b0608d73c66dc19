package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/orderbill/backend/internal/application/tx"
	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/trade"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Transient serialization and deadlock failures restart the whole
// transaction, so the callback must be safe to run more than once.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos tx.TransactionalRepositories) error) error {
	return withRetry(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
			return fn(&gormTransactionalRepositories{tx: txn})
		})
	})
}

// gormTransactionalRepositories provides access to all repositories within
// a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Clients returns the client repository scoped to the current transaction
func (r *gormTransactionalRepositories) Clients() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

// ClientPrices returns the price override repository scoped to the current transaction
func (r *gormTransactionalRepositories) ClientPrices() partner.ClientPriceRepository {
	return NewGormClientPriceRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Challans returns the challan repository scoped to the current transaction
func (r *gormTransactionalRepositories) Challans() billing.ChallanRepository {
	return NewGormChallanRepository(r.tx)
}

// Bills returns the monthly bill repository scoped to the current transaction
func (r *gormTransactionalRepositories) Bills() billing.MonthlyBillRepository {
	return NewGormMonthlyBillRepository(r.tx)
}

var _ tx.TransactionScope = (*GormTransactionScope)(nil)
var _ tx.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

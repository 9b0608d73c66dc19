package tx

import (
	"context"

	"github.com/orderbill/backend/internal/domain/billing"
	"github.com/orderbill/backend/internal/domain/catalog"
	"github.com/orderbill/backend/internal/domain/partner"
	"github.com/orderbill/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the lifecycle repositories.
// Every repository obtained inside Execute shares one database transaction,
// so a lifecycle operation either commits all of its writes or none of them.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. A returned error rolls
	// the transaction back, nil commits it.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to one transaction.
//
// Aggregate boundary notes:
//   - Orders() persists the Order aggregate including its items.
//   - Challans() and Bills() cover the billing aggregates; the challan/bill
//     link columns are only ever written through these repositories.
//   - Products() carries the stock invariant; multi-product reservations go
//     through its ordered locking method.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Clients() partner.ClientRepository
	ClientPrices() partner.ClientPriceRepository
	Orders() trade.OrderRepository
	Challans() billing.ChallanRepository
	Bills() billing.MonthlyBillRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Used in tests where repositories are mocked.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs fn directly with the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}

// StaticRepositories is a TransactionalRepositories backed by fixed instances
type StaticRepositories struct {
	ProductRepo     catalog.ProductRepository
	ClientRepo      partner.ClientRepository
	ClientPriceRepo partner.ClientPriceRepository
	OrderRepo       trade.OrderRepository
	ChallanRepo     billing.ChallanRepository
	BillRepo        billing.MonthlyBillRepository
}

func (r *StaticRepositories) Products() catalog.ProductRepository        { return r.ProductRepo }
func (r *StaticRepositories) Clients() partner.ClientRepository          { return r.ClientRepo }
func (r *StaticRepositories) ClientPrices() partner.ClientPriceRepository { return r.ClientPriceRepo }
func (r *StaticRepositories) Orders() trade.OrderRepository              { return r.OrderRepo }
func (r *StaticRepositories) Challans() billing.ChallanRepository        { return r.ChallanRepo }
func (r *StaticRepositories) Bills() billing.MonthlyBillRepository       { return r.BillRepo }

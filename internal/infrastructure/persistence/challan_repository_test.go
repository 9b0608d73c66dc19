package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orderbill/backend/internal/domain/shared"
)

// newMockChallanRepository creates a GormChallanRepository with a mocked SQL connection
func newMockChallanRepository(t *testing.T) (*GormChallanRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormChallanRepository(gormDB), mock, mockDB
}

func challanColumns() []string {
	return []string{"id", "created_at", "updated_at", "order_id", "client_id", "challan_date", "total", "monthly_bill_id", "notes"}
}

func TestGormChallanRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the challan row", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		challanID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(challanColumns()).
			AddRow(challanID, now, now, uuid.New(), uuid.New(), now, decimal.NewFromInt(500), nil, "")

		mock.ExpectQuery(`SELECT \* FROM "challans" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(challanID, 1).
			WillReturnRows(rows)

		challan, err := repo.FindByIDForUpdate(context.Background(), challanID)

		assert.NoError(t, err)
		require.NotNil(t, challan)
		assert.Equal(t, challanID, challan.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing challan to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		challanID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "challans" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(challanID, 1).
			WillReturnRows(sqlmock.NewRows(challanColumns()))

		_, err := repo.FindByIDForUpdate(context.Background(), challanID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChallanRepository_FindUnbilledForUpdate(t *testing.T) {
	t.Run("locks unbilled challans in the period", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		challanID := uuid.New()
		from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		now := time.Now()

		rows := sqlmock.NewRows(challanColumns()).
			AddRow(challanID, now, now, uuid.New(), clientID, from.AddDate(0, 0, 4), decimal.NewFromInt(900), nil, "")

		mock.ExpectQuery(`SELECT \* FROM "challans" WHERE client_id = \$1 AND monthly_bill_id IS NULL AND challan_date >= \$2 AND challan_date < \$3 ORDER BY id ASC FOR UPDATE`).
			WithArgs(clientID, from, to).
			WillReturnRows(rows)

		challans, err := repo.FindUnbilledForUpdate(context.Background(), clientID, from, to)

		assert.NoError(t, err)
		require.Len(t, challans, 1)
		assert.Equal(t, challanID, challans[0].ID)
		assert.Nil(t, challans[0].MonthlyBillID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when everything is billed", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()
		from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		mock.ExpectQuery(`SELECT \* FROM "challans" WHERE client_id = \$1 AND monthly_bill_id IS NULL AND challan_date >= \$2 AND challan_date < \$3 ORDER BY id ASC FOR UPDATE`).
			WithArgs(clientID, from, to).
			WillReturnRows(sqlmock.NewRows(challanColumns()))

		challans, err := repo.FindUnbilledForUpdate(context.Background(), clientID, from, to)

		assert.NoError(t, err)
		assert.Empty(t, challans)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChallanRepository_LinkToBill(t *testing.T) {
	t.Run("stamps the bill on all challans", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		billID := uuid.New()
		first := uuid.New()
		second := uuid.New()

		mock.ExpectExec(`UPDATE "challans" SET "monthly_bill_id"=\$1,"updated_at"=\$2 WHERE id IN \(\$3,\$4\)`).
			WithArgs(billID, sqlmock.AnyArg(), first, second).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.LinkToBill(context.Background(), []uuid.UUID{first, second}, billID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips the update for an empty challan set", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		err := repo.LinkToBill(context.Background(), nil, uuid.New())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChallanRepository_UnlinkFromBill(t *testing.T) {
	t.Run("releases every challan of the bill", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		billID := uuid.New()

		mock.ExpectExec(`UPDATE "challans" SET "monthly_bill_id"=\$1,"updated_at"=\$2 WHERE monthly_bill_id = \$3`).
			WithArgs(nil, sqlmock.AnyArg(), billID).
			WillReturnResult(sqlmock.NewResult(0, 3))

		released, err := repo.UnlinkFromBill(context.Background(), billID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), released)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChallanRepository_ClearBillLink(t *testing.T) {
	t.Run("clears the link for an existing challan", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		challanID := uuid.New()

		mock.ExpectExec(`UPDATE "challans" SET "monthly_bill_id"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(nil, sqlmock.AnyArg(), challanID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.ClearBillLink(context.Background(), challanID)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports false for a missing challan", func(t *testing.T) {
		repo, mock, mockDB := newMockChallanRepository(t)
		defer mockDB.Close()

		challanID := uuid.New()

		mock.ExpectExec(`UPDATE "challans" SET "monthly_bill_id"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(nil, sqlmock.AnyArg(), challanID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := repo.ClearBillLink(context.Background(), challanID)

		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

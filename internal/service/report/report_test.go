package report

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banksystem/banking/internal/db"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
	"github.com/banksystem/banking/internal/repository/postgres"
	"github.com/banksystem/banking/internal/testutil"
)

func TestStatement(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t, db.MigrationsCuentas)
	t.Cleanup(pg.Terminate)

	withTx := func(t *testing.T, fn func(s *ReportService, storage repository.Storage)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)
			fn(NewService(storage), storage)
		})
	}

	createAccount := func(t *testing.T, storage repository.Storage, number string, customerID int64) models.Account {
		t.Helper()

		account, err := storage.Account().CreateAccount(t.Context(), repository.CreateAccountParams{
			Number:         number,
			Type:           "Ahorro",
			InitialBalance: decimal.NewFromInt(1000),
			CustomerID:     customerID,
		})
		require.NoError(t, err)
		return account
	}

	createMovement := func(t *testing.T, storage repository.Storage, accountID int64, date time.Time, amount int64) models.Movement {
		t.Helper()

		movement, err := storage.Movement().CreateMovement(t.Context(), repository.CreateMovementParams{
			Date:      date,
			Kind:      models.MovementDeposit,
			Amount:    decimal.NewFromInt(amount),
			Balance:   decimal.NewFromInt(1000 + amount),
			AccountID: accountID,
		})
		require.NoError(t, err)
		return movement
	}

	t.Run("statement with movements", func(t *testing.T) {
		withTx(t, func(s *ReportService, storage repository.Storage) {
			first := createAccount(t, storage, "478758", 1)
			second := createAccount(t, storage, "495878", 1)
			createAccount(t, storage, "585545", 2) // other customer, must not show up

			from := time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2022, 2, 10, 0, 0, 0, 0, time.UTC)

			inside := createMovement(t, storage, first.ID, time.Date(2022, 2, 8, 10, 30, 0, 0, time.UTC), 600)
			lastDay := createMovement(t, storage, first.ID, time.Date(2022, 2, 10, 23, 59, 0, 0, time.UTC), 100)
			createMovement(t, storage, first.ID, time.Date(2022, 2, 11, 0, 0, 1, 0, time.UTC), 50) // outside

			statement, err := s.Statement(t.Context(), 1, from, to)

			require.NoError(t, err, "building statement should not fail")
			require.Equal(t, int64(1), statement.CustomerID)
			require.Equal(t, from, statement.From)
			require.Equal(t, to, statement.To)
			require.NotZero(t, statement.GeneratedAt)
			require.Len(t, statement.Accounts, 2, "statement should cover every account of the customer")

			require.Equal(t, first.ID, statement.Accounts[0].Account.ID)
			require.Len(t, statement.Accounts[0].Movements, 2, "window should span whole days inclusive")
			require.Equal(t, lastDay.ID, statement.Accounts[0].Movements[0].ID, "movements should be ordered by date descending")
			require.Equal(t, inside.ID, statement.Accounts[0].Movements[1].ID)

			require.Equal(t, second.ID, statement.Accounts[1].Account.ID)
			require.Empty(t, statement.Accounts[1].Movements, "account without movements should still appear")
		})
	})

	t.Run("customer without accounts", func(t *testing.T) {
		withTx(t, func(s *ReportService, storage repository.Storage) {
			statement, err := s.Statement(t.Context(), 99999, time.Now().AddDate(0, 0, -1), time.Now())

			require.NoError(t, err, "unknown customer should yield an empty statement")
			require.Empty(t, statement.Accounts)
		})
	})
}

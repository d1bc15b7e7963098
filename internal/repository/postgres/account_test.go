package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/db"
	"github.com/banksystem/banking/internal/repository"
	"github.com/banksystem/banking/internal/testutil"
)

func TestAccountRepo(t *testing.T) {
	pg := testutil.StartPostgresContainer(t, db.MigrationsCuentas)
	t.Cleanup(pg.Terminate)

	inTx := func(t *testing.T, outerTx DBTX, fn func(pgx.Tx, repository.Storage)) {
		testutil.WithTx(outerTx, t, func(innerTx pgx.Tx) {
			storage := NewStorage(innerTx)
			fn(innerTx, storage)
		})
	}

	createParams := repository.CreateAccountParams{
		Number:         "478758",
		Type:           "Ahorro",
		InitialBalance: decimal.NewFromInt(2000),
		CustomerID:     1,
	}

	t.Run("CreateAccount", func(t *testing.T) {
		t.Run("create ok", func(t *testing.T) {
			inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
				account, err := storage.Account().CreateAccount(t.Context(), createParams)

				require.NoError(t, err, "account has to be created ok")
				require.NotZero(t, account.ID)
				require.Equal(t, "478758", account.Number)
				require.Equal(t, "Ahorro", account.Type)
				require.True(t, account.InitialBalance.Equal(decimal.NewFromInt(2000)), "initial balance should be stored")
				require.True(t, account.AvailableBalance.Equal(decimal.NewFromInt(2000)), "available balance should start at the initial one")
				require.True(t, account.Active, "new account should be active")
				require.Equal(t, int64(1), account.CustomerID)
				require.NotZero(t, account.CreatedAt)
			})
		})

		t.Run("create duplicate number", func(t *testing.T) {
			inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
				_, err := storage.Account().CreateAccount(t.Context(), createParams)
				require.NoError(t, err, "first account creation should be ok")

				_, err = storage.Account().CreateAccount(t.Context(), createParams)

				require.Error(t, err, "creating account with taken number should fail")
				require.ErrorIs(t, err, apperrors.ErrAccountAlreadyExists, "should return well known error")
			})
		})
	})

	t.Run("GetAccountByID", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			t.Run("get existing account", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					account, err := storage.Account().GetAccountByID(t.Context(), created.ID, false)

					require.NoError(t, err, "getting account should not fail")
					require.Equal(t, created.ID, account.ID)
					require.Equal(t, created.Number, account.Number)
				})
			})

			t.Run("get with row lock", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					account, err := storage.Account().GetAccountByID(t.Context(), created.ID, true)

					require.NoError(t, err, "getting account for update should not fail")
					require.Equal(t, created.ID, account.ID)
				})
			})

			t.Run("get nonexistent account", func(t *testing.T) {
				inTx(t, tx, func(ttx pgx.Tx, storage repository.Storage) {
					_, err := storage.Account().GetAccountByID(t.Context(), 99999, false)

					require.Error(t, err, "getting nonexistent account should fail")
					require.ErrorIs(t, err, apperrors.ErrAccountNotFound, "should return well known error")
				})
			})
		})
	})

	t.Run("GetAccountByNumber", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			account, err := storage.Account().GetAccountByNumber(t.Context(), "478758")
			require.NoError(t, err)
			require.Equal(t, created.ID, account.ID)

			_, err = storage.Account().GetAccountByNumber(t.Context(), "000000")
			require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
		})
	})

	t.Run("AccountNumberExists", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			_, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			exists, err := storage.Account().AccountNumberExists(t.Context(), "478758")
			require.NoError(t, err)
			require.True(t, exists)

			exists, err = storage.Account().AccountNumberExists(t.Context(), "000000")
			require.NoError(t, err)
			require.False(t, exists)
		})
	})

	t.Run("ListAccounts", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			first, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			second, err := storage.Account().CreateAccount(t.Context(), repository.CreateAccountParams{
				Number:         "495878",
				Type:           "Corriente",
				InitialBalance: decimal.NewFromInt(100),
				CustomerID:     2,
			})
			require.NoError(t, err)

			_, err = storage.Account().SetAccountActive(t.Context(), second.ID, false)
			require.NoError(t, err)

			t.Run("list all", func(t *testing.T) {
				accounts, err := storage.Account().ListAccounts(t.Context())

				require.NoError(t, err)
				require.Len(t, accounts, 2)
				require.Equal(t, first.ID, accounts[0].ID, "accounts should be ordered by id")
			})

			t.Run("list active only", func(t *testing.T) {
				accounts, err := storage.Account().ListActiveAccounts(t.Context())

				require.NoError(t, err)
				require.Len(t, accounts, 1)
				require.Equal(t, first.ID, accounts[0].ID)
			})

			t.Run("list by customer", func(t *testing.T) {
				accounts, err := storage.Account().ListAccountsByCustomer(t.Context(), 2)

				require.NoError(t, err)
				require.Len(t, accounts, 1)
				require.Equal(t, second.ID, accounts[0].ID)
			})

			t.Run("list active by customer", func(t *testing.T) {
				accounts, err := storage.Account().ListActiveAccountsByCustomer(t.Context(), 2)

				require.NoError(t, err)
				require.Empty(t, accounts, "inactive accounts should be filtered out")
			})
		})
	})

	t.Run("UpdateAccount", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			updated, err := storage.Account().UpdateAccount(t.Context(), created.ID, repository.UpdateAccountParams{
				Number: "585545",
				Type:   "Corriente",
			})

			require.NoError(t, err, "updating account should not fail")
			require.Equal(t, "585545", updated.Number)
			require.Equal(t, "Corriente", updated.Type)
			require.True(t, updated.AvailableBalance.Equal(created.AvailableBalance), "update must never touch the balance")
		})
	})

	t.Run("UpdateAccountBalance", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			updated, err := storage.Account().UpdateAccountBalance(t.Context(), created.ID, decimal.NewFromInt(1425))

			require.NoError(t, err)
			require.True(t, updated.AvailableBalance.Equal(decimal.NewFromInt(1425)), "available balance should be replaced")
			require.True(t, updated.InitialBalance.Equal(created.InitialBalance), "initial balance should stay unchanged")
		})
	})

	t.Run("DeleteAccount", func(t *testing.T) {
		inTx(t, pg.Pool, func(tx pgx.Tx, storage repository.Storage) {
			created, err := storage.Account().CreateAccount(t.Context(), createParams)
			require.NoError(t, err)

			err = storage.Account().DeleteAccount(t.Context(), created.ID)
			require.NoError(t, err, "deleting existing account should not fail")

			err = storage.Account().DeleteAccount(t.Context(), created.ID)
			require.ErrorIs(t, err, apperrors.ErrAccountNotFound, "deleting twice should report not found")
		})
	})
}

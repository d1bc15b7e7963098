package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type AccountRepo struct {
	DB DBTX
}

const accountColumns = `id, numero_cuenta, tipo_cuenta, saldo_inicial, saldo_disponible, estado, cliente_id, fecha_creacion, fecha_actualizacion`

const createAccount = `-- name: CreateAccount
INSERT INTO cuentas (numero_cuenta, tipo_cuenta, saldo_inicial, saldo_disponible, estado, cliente_id)
VALUES ($1, $2, $3, $3, true, $4)
RETURNING ` + accountColumns

func (r *AccountRepo) CreateAccount(ctx context.Context, arg repository.CreateAccountParams) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, createAccount, arg.Number, arg.Type, arg.InitialBalance, arg.CustomerID)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return account, apperrors.ErrAccountAlreadyExists
		}

		return account, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

const getAccountByID = `-- name: GetAccountByID
SELECT ` + accountColumns + ` FROM cuentas
WHERE id = $1
`

func (r *AccountRepo) GetAccountByID(ctx context.Context, id int64, forUpdate bool) (models.Account, error) {
	query := getAccountByID
	if forUpdate {
		query += "FOR UPDATE"
	}

	rows, _ := r.DB.Query(ctx, query, id)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	return account, mapAccountErr(err)
}

const getAccountByNumber = `-- name: GetAccountByNumber
SELECT ` + accountColumns + ` FROM cuentas
WHERE numero_cuenta = $1
`

func (r *AccountRepo) GetAccountByNumber(ctx context.Context, number string) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, getAccountByNumber, number)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	return account, mapAccountErr(err)
}

const accountNumberExists = `-- name: AccountNumberExists
SELECT EXISTS (SELECT 1 FROM cuentas WHERE numero_cuenta = $1)
`

func (r *AccountRepo) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, accountNumberExists, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

const listAccounts = `-- name: ListAccounts
SELECT ` + accountColumns + ` FROM cuentas
ORDER BY id
`

func (r *AccountRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listAccounts)
	return collectAccounts(rows)
}

const listActiveAccounts = `-- name: ListActiveAccounts
SELECT ` + accountColumns + ` FROM cuentas
WHERE estado
ORDER BY id
`

func (r *AccountRepo) ListActiveAccounts(ctx context.Context) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listActiveAccounts)
	return collectAccounts(rows)
}

const listAccountsByCustomer = `-- name: ListAccountsByCustomer
SELECT ` + accountColumns + ` FROM cuentas
WHERE cliente_id = $1
ORDER BY id
`

func (r *AccountRepo) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listAccountsByCustomer, customerID)
	return collectAccounts(rows)
}

const listActiveAccountsByCustomer = `-- name: ListActiveAccountsByCustomer
SELECT ` + accountColumns + ` FROM cuentas
WHERE cliente_id = $1 AND estado
ORDER BY id
`

func (r *AccountRepo) ListActiveAccountsByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, listActiveAccountsByCustomer, customerID)
	return collectAccounts(rows)
}

const updateAccount = `-- name: UpdateAccount
UPDATE cuentas
SET numero_cuenta = $2, tipo_cuenta = $3, fecha_actualizacion = now()
WHERE id = $1
RETURNING ` + accountColumns

func (r *AccountRepo) UpdateAccount(ctx context.Context, id int64, arg repository.UpdateAccountParams) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, updateAccount, id, arg.Number, arg.Type)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return account, apperrors.ErrAccountAlreadyExists
		}
	}

	return account, mapAccountErr(err)
}

const updateAccountBalance = `-- name: UpdateAccountBalance
UPDATE cuentas
SET saldo_disponible = $2, fecha_actualizacion = now()
WHERE id = $1
RETURNING ` + accountColumns

func (r *AccountRepo) UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, updateAccountBalance, id, balance)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	return account, mapAccountErr(err)
}

const setAccountActive = `-- name: SetAccountActive
UPDATE cuentas
SET estado = $2, fecha_actualizacion = now()
WHERE id = $1
RETURNING ` + accountColumns

func (r *AccountRepo) SetAccountActive(ctx context.Context, id int64, active bool) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, setAccountActive, id, active)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	return account, mapAccountErr(err)
}

const deleteAccount = `-- name: DeleteAccount
DELETE FROM cuentas
WHERE id = $1
`

func (r *AccountRepo) DeleteAccount(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, deleteAccount, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

func rowToAccount(row pgx.CollectableRow) (models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.Type,
		&a.InitialBalance,
		&a.AvailableBalance,
		&a.Active,
		&a.CustomerID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return accounts, nil
}

func mapAccountErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrAccountNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

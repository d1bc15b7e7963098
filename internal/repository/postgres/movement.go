package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type MovementRepo struct {
	DB DBTX
}

const movementColumns = `id, fecha, tipo_movimiento, valor, saldo, cuenta_id, descripcion, fecha_creacion`

const createMovement = `-- name: CreateMovement
INSERT INTO movimientos (fecha, tipo_movimiento, valor, saldo, cuenta_id, descripcion)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + movementColumns

func (r *MovementRepo) CreateMovement(ctx context.Context, arg repository.CreateMovementParams) (models.Movement, error) {
	rows, _ := r.DB.Query(ctx, createMovement, arg.Date, arg.Kind, arg.Amount, arg.Balance, arg.AccountID, arg.Description)
	movement, err := pgx.CollectOneRow(rows, rowToMovement)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return movement, apperrors.ErrAccountNotFound
		}

		return movement, fmt.Errorf("db error: %w", err)
	}

	return movement, nil
}

const getMovementByID = `-- name: GetMovementByID
SELECT ` + movementColumns + ` FROM movimientos
WHERE id = $1
`

func (r *MovementRepo) GetMovementByID(ctx context.Context, id int64) (models.Movement, error) {
	rows, _ := r.DB.Query(ctx, getMovementByID, id)
	movement, err := pgx.CollectOneRow(rows, rowToMovement)

	switch {
	case err == nil:
		return movement, nil
	case errors.Is(err, pgx.ErrNoRows):
		return movement, apperrors.ErrMovementNotFound
	default:
		return movement, fmt.Errorf("db error: %w", err)
	}
}

const listMovements = `-- name: ListMovements
SELECT ` + movementColumns + ` FROM movimientos
ORDER BY fecha DESC, id DESC
`

func (r *MovementRepo) ListMovements(ctx context.Context) ([]models.Movement, error) {
	rows, _ := r.DB.Query(ctx, listMovements)
	return collectMovements(rows)
}

const listMovementsByAccount = `-- name: ListMovementsByAccount
SELECT ` + movementColumns + ` FROM movimientos
WHERE cuenta_id = $1
ORDER BY fecha DESC, id DESC
`

func (r *MovementRepo) ListMovementsByAccount(ctx context.Context, accountID int64) ([]models.Movement, error) {
	rows, _ := r.DB.Query(ctx, listMovementsByAccount, accountID)
	return collectMovements(rows)
}

const listMovementsByAccountAndDates = `-- name: ListMovementsByAccountAndDates
SELECT ` + movementColumns + ` FROM movimientos
WHERE cuenta_id = $1 AND fecha BETWEEN $2 AND $3
ORDER BY fecha DESC, id DESC
`

func (r *MovementRepo) ListMovementsByAccountAndDates(ctx context.Context, accountID int64, from, to time.Time) ([]models.Movement, error) {
	rows, _ := r.DB.Query(ctx, listMovementsByAccountAndDates, accountID, from, to)
	return collectMovements(rows)
}

const listMovementsByAccountAndKind = `-- name: ListMovementsByAccountAndKind
SELECT ` + movementColumns + ` FROM movimientos
WHERE cuenta_id = $1 AND tipo_movimiento = $2
ORDER BY fecha DESC, id DESC
`

func (r *MovementRepo) ListMovementsByAccountAndKind(ctx context.Context, accountID int64, kind string) ([]models.Movement, error) {
	rows, _ := r.DB.Query(ctx, listMovementsByAccountAndKind, accountID, kind)
	return collectMovements(rows)
}

func rowToMovement(row pgx.CollectableRow) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.ID,
		&m.Date,
		&m.Kind,
		&m.Amount,
		&m.Balance,
		&m.AccountID,
		&m.Description,
		&m.CreatedAt,
	)
	return m, err
}

func collectMovements(rows pgx.Rows) ([]models.Movement, error) {
	movements, err := pgx.CollectRows(rows, rowToMovement)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movements, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type CustomerRepo struct {
	DB DBTX
}

const customerColumns = `id, nombre, genero, edad, identificacion, direccion, telefono, contrasena_hash, estado, numero_cliente, fecha_creacion, fecha_actualizacion`

const createCustomer = `-- name: CreateCustomer
INSERT INTO clientes (nombre, genero, edad, identificacion, direccion, telefono, contrasena_hash, estado, numero_cliente)
VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8)
RETURNING ` + customerColumns

func (r *CustomerRepo) CreateCustomer(ctx context.Context, arg repository.CreateCustomerParams) (models.Customer, error) {
	p := arg.Person
	rows, _ := r.DB.Query(ctx, createCustomer,
		p.Name, p.Gender, p.Age, p.Identification, p.Address, p.Phone,
		arg.HashedPassword, arg.Number,
	)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return customer, apperrors.ErrCustomerAlreadyExists
		}

		return customer, fmt.Errorf("db error: %w", err)
	}

	return customer, nil
}

const getCustomerByID = `-- name: GetCustomerByID
SELECT ` + customerColumns + ` FROM clientes
WHERE id = $1
`

func (r *CustomerRepo) GetCustomerByID(ctx context.Context, id int64) (models.Customer, error) {
	rows, _ := r.DB.Query(ctx, getCustomerByID, id)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	return customer, mapCustomerErr(err)
}

const getCustomerByIdentification = `-- name: GetCustomerByIdentification
SELECT ` + customerColumns + ` FROM clientes
WHERE identificacion = $1
`

func (r *CustomerRepo) GetCustomerByIdentification(ctx context.Context, identification string) (models.Customer, error) {
	rows, _ := r.DB.Query(ctx, getCustomerByIdentification, identification)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	return customer, mapCustomerErr(err)
}

const getCustomerByNumber = `-- name: GetCustomerByNumber
SELECT ` + customerColumns + ` FROM clientes
WHERE numero_cliente = $1
`

func (r *CustomerRepo) GetCustomerByNumber(ctx context.Context, number string) (models.Customer, error) {
	rows, _ := r.DB.Query(ctx, getCustomerByNumber, number)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	return customer, mapCustomerErr(err)
}

const listCustomers = `-- name: ListCustomers
SELECT ` + customerColumns + ` FROM clientes
ORDER BY id
`

func (r *CustomerRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, _ := r.DB.Query(ctx, listCustomers)
	return collectCustomers(rows)
}

const listActiveCustomers = `-- name: ListActiveCustomers
SELECT ` + customerColumns + ` FROM clientes
WHERE estado
ORDER BY id
`

func (r *CustomerRepo) ListActiveCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, _ := r.DB.Query(ctx, listActiveCustomers)
	return collectCustomers(rows)
}

const searchCustomersByName = `-- name: SearchCustomersByName
SELECT ` + customerColumns + ` FROM clientes
WHERE estado AND nombre ILIKE '%' || $1 || '%'
ORDER BY id
`

func (r *CustomerRepo) SearchCustomersByName(ctx context.Context, name string) ([]models.Customer, error) {
	rows, _ := r.DB.Query(ctx, searchCustomersByName, name)
	return collectCustomers(rows)
}

const updateCustomer = `-- name: UpdateCustomer
UPDATE clientes
SET nombre = $2,
	genero = $3,
	edad = $4,
	identificacion = $5,
	direccion = $6,
	telefono = $7,
	contrasena_hash = coalesce($8, contrasena_hash),
	fecha_actualizacion = now()
WHERE id = $1
RETURNING ` + customerColumns

func (r *CustomerRepo) UpdateCustomer(ctx context.Context, id int64, arg repository.UpdateCustomerParams) (models.Customer, error) {
	p := arg.Person
	rows, _ := r.DB.Query(ctx, updateCustomer,
		id, p.Name, p.Gender, p.Age, p.Identification, p.Address, p.Phone,
		arg.HashedPassword,
	)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return customer, apperrors.ErrCustomerAlreadyExists
		}
	}

	return customer, mapCustomerErr(err)
}

const setCustomerActive = `-- name: SetCustomerActive
UPDATE clientes
SET estado = $2, fecha_actualizacion = now()
WHERE id = $1
RETURNING ` + customerColumns

func (r *CustomerRepo) SetCustomerActive(ctx context.Context, id int64, active bool) (models.Customer, error) {
	rows, _ := r.DB.Query(ctx, setCustomerActive, id, active)
	customer, err := pgx.CollectOneRow(rows, rowToCustomer)

	return customer, mapCustomerErr(err)
}

const deleteCustomer = `-- name: DeleteCustomer
DELETE FROM clientes
WHERE id = $1
`

func (r *CustomerRepo) DeleteCustomer(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, deleteCustomer, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}

	return nil
}

func rowToCustomer(row pgx.CollectableRow) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Gender,
		&c.Age,
		&c.Identification,
		&c.Address,
		&c.Phone,
		&c.HashedPassword,
		&c.Active,
		&c.Number,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func collectCustomers(rows pgx.Rows) ([]models.Customer, error) {
	customers, err := pgx.CollectRows(rows, rowToCustomer)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return customers, nil
}

func mapCustomerErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrCustomerNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

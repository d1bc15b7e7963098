package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/models"
)

type CreateAccountParams struct {
	Number         string
	Type           string
	InitialBalance decimal.Decimal
	CustomerID     int64
}

type UpdateAccountParams struct {
	Number string
	Type   string
}

// Account repository interface
type AccountRepo interface {
	// Create account with available balance equal to the initial one
	// If the account number is taken must return apperrors.ErrAccountAlreadyExists
	CreateAccount(ctx context.Context, arg CreateAccountParams) (models.Account, error)

	// Get account by id or number
	// forUpdate locks the row for the rest of the surrounding transaction,
	// serializing concurrent movement registrations on the same account
	// If not found must return apperrors.ErrAccountNotFound
	GetAccountByID(ctx context.Context, id int64, forUpdate bool) (models.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (models.Account, error)
	AccountNumberExists(ctx context.Context, number string) (bool, error)

	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListActiveAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByCustomer(ctx context.Context, customerID int64) ([]models.Account, error)
	ListActiveAccountsByCustomer(ctx context.Context, customerID int64) ([]models.Account, error)

	// Update account metadata, never the balance
	UpdateAccount(ctx context.Context, id int64, arg UpdateAccountParams) (models.Account, error)

	// Set the available balance. Only the ledger engine may call it, and
	// only while holding the row lock taken with GetAccountByID(forUpdate)
	UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal) (models.Account, error)

	SetAccountActive(ctx context.Context, id int64, active bool) (models.Account, error)

	// Delete account; its movements are removed by the store (cascade)
	DeleteAccount(ctx context.Context, id int64) error
}

type CreateMovementParams struct {
	Date        time.Time
	Kind        string
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	AccountID   int64
	Description string
}

// Movement repository interface. Movements are append only: there are no
// update or delete methods on purpose.
type MovementRepo interface {
	// Append a ledger entry
	// If the account does not exist must return apperrors.ErrAccountNotFound
	CreateMovement(ctx context.Context, arg CreateMovementParams) (models.Movement, error)

	// If not found must return apperrors.ErrMovementNotFound
	GetMovementByID(ctx context.Context, id int64) (models.Movement, error)

	// Listings are ordered by movement date descending
	ListMovements(ctx context.Context) ([]models.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountID int64) ([]models.Movement, error)
	ListMovementsByAccountAndDates(ctx context.Context, accountID int64, from, to time.Time) ([]models.Movement, error)
	ListMovementsByAccountAndKind(ctx context.Context, accountID int64, kind string) ([]models.Movement, error)
}

// Storage aggregates the repositories and provides the transactional
// scope for the compound balance + movement write. Each service binary
// uses the repositories its own schema carries.
type Storage interface {
	Account() AccountRepo
	Movement() MovementRepo
	Customer() CustomerRepo

	// Run fn with a Storage bound to a single database transaction.
	// Commits when fn returns nil, rolls back otherwise.
	InTx(ctx context.Context, fn func(Storage) error) error
}

type CreateCustomerParams struct {
	Person         models.PersonInfo
	HashedPassword string
	Number         string
}

type UpdateCustomerParams struct {
	Person models.PersonInfo

	// Replace the stored hash only when non-nil
	HashedPassword *string
}

// Customer repository interface
type CustomerRepo interface {
	// If the identification is taken must return apperrors.ErrCustomerAlreadyExists
	CreateCustomer(ctx context.Context, arg CreateCustomerParams) (models.Customer, error)

	// If not found must return apperrors.ErrCustomerNotFound
	GetCustomerByID(ctx context.Context, id int64) (models.Customer, error)
	GetCustomerByIdentification(ctx context.Context, identification string) (models.Customer, error)
	GetCustomerByNumber(ctx context.Context, number string) (models.Customer, error)

	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListActiveCustomers(ctx context.Context) ([]models.Customer, error)

	// Case-insensitive substring search over active customers
	SearchCustomersByName(ctx context.Context, name string) ([]models.Customer, error)

	UpdateCustomer(ctx context.Context, id int64, arg UpdateCustomerParams) (models.Customer, error)
	SetCustomerActive(ctx context.Context, id int64, active bool) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

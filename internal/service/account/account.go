package account

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type AccountService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *AccountService {
	return &AccountService{
		storage: storage,
	}
}

type CreateAccountArgs struct {
	Number         string
	Type           string
	InitialBalance decimal.Decimal
	CustomerID     int64
}

// Create opens an account with the available balance set to the initial
// one and the account active.
func (s *AccountService) Create(ctx context.Context, arg CreateAccountArgs) (models.Account, error) {
	var account models.Account

	if arg.InitialBalance.IsNegative() {
		return account, apperrors.ErrInitialBalanceNegative
	}

	// Advisory pre-check only; the unique index on numero_cuenta is the
	// real guard and the repo maps its violation to the same error.
	exists, err := s.storage.Account().AccountNumberExists(ctx, arg.Number)
	if err != nil {
		return account, fmt.Errorf("can't check account number. Err: %w", err)
	}
	if exists {
		return account, apperrors.ErrAccountAlreadyExists
	}

	return s.storage.Account().CreateAccount(ctx, repository.CreateAccountParams{
		Number:         arg.Number,
		Type:           arg.Type,
		InitialBalance: arg.InitialBalance,
		CustomerID:     arg.CustomerID,
	})
}

// Update changes account metadata only. Balances are owned by the ledger
// engine and are never touched here.
func (s *AccountService) Update(ctx context.Context, id int64, number string, accountType string) (models.Account, error) {
	var account models.Account

	existing, err := s.storage.Account().GetAccountByID(ctx, id, false)
	if err != nil {
		return account, err
	}

	// Advisory pre-check only, same as Create; the unique index settles
	// concurrent updates.
	if existing.Number != number {
		exists, err := s.storage.Account().AccountNumberExists(ctx, number)
		if err != nil {
			return account, fmt.Errorf("can't check account number. Err: %w", err)
		}
		if exists {
			return account, apperrors.ErrAccountAlreadyExists
		}
	}

	return s.storage.Account().UpdateAccount(ctx, id, repository.UpdateAccountParams{
		Number: number,
		Type:   accountType,
	})
}

func (s *AccountService) SetActive(ctx context.Context, id int64, active bool) (models.Account, error) {
	return s.storage.Account().SetAccountActive(ctx, id, active)
}

// Delete removes the account; the store cascades its movements away.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.storage.Account().DeleteAccount(ctx, id)
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (models.Account, error) {
	return s.storage.Account().GetAccountByID(ctx, id, false)
}

func (s *AccountService) GetByNumber(ctx context.Context, number string) (models.Account, error) {
	return s.storage.Account().GetAccountByNumber(ctx, number)
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.storage.Account().ListAccounts(ctx)
}

func (s *AccountService) ListActive(ctx context.Context) ([]models.Account, error) {
	return s.storage.Account().ListActiveAccounts(ctx)
}

func (s *AccountService) ListByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	return s.storage.Account().ListAccountsByCustomer(ctx, customerID)
}

func (s *AccountService) ListActiveByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	return s.storage.Account().ListActiveAccountsByCustomer(ctx, customerID)
}

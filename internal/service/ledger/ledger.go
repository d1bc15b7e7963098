// Package ledger owns the movement registration rules: a withdrawal may
// never drive the available balance negative, and the balance update plus
// the ledger entry are written as one atomic unit.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type LedgerService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *LedgerService {
	return &LedgerService{
		storage: storage,
	}
}

// Register posts a deposit or withdrawal against the account and returns
// the persisted movement carrying the post-movement balance.
//
// The whole read-check-write sequence runs in a single transaction with
// the account row locked, so concurrent registrations on the same account
// serialize and the funds check never sees a stale balance.
func (s *LedgerService) Register(ctx context.Context, accountID int64, kind string, amount decimal.Decimal) (models.Movement, error) {
	var movement models.Movement

	canonical, ok := models.ParseMovementKind(kind)
	if !ok {
		return movement, fmt.Errorf("%w: %q", apperrors.ErrInvalidMovementKind, kind)
	}

	if !amount.IsPositive() {
		return movement, apperrors.ErrAmountNotPositive
	}

	err := s.storage.InTx(ctx, func(storage repository.Storage) error {
		account, err := storage.Account().GetAccountByID(ctx, accountID, true)
		if err != nil {
			return err
		}

		if !account.Active {
			return apperrors.ErrAccountInactive
		}

		var balance decimal.Decimal
		switch canonical {
		case models.MovementDeposit:
			balance = account.AvailableBalance.Add(amount)
		case models.MovementWithdrawal:
			if account.AvailableBalance.LessThan(amount) {
				return apperrors.ErrInsufficientFunds
			}
			balance = account.AvailableBalance.Sub(amount)
		}

		if _, err := storage.Account().UpdateAccountBalance(ctx, account.ID, balance); err != nil {
			return err
		}

		movement, err = storage.Movement().CreateMovement(ctx, repository.CreateMovementParams{
			Date:        time.Now(),
			Kind:        canonical,
			Amount:      amount,
			Balance:     balance,
			AccountID:   account.ID,
			Description: fmt.Sprintf("%s de %s", canonical, amount),
		})
		return err
	})
	if err != nil {
		return models.Movement{}, err
	}

	return movement, nil
}

func (s *LedgerService) GetMovement(ctx context.Context, id int64) (models.Movement, error) {
	return s.storage.Movement().GetMovementByID(ctx, id)
}

func (s *LedgerService) ListMovements(ctx context.Context) ([]models.Movement, error) {
	return s.storage.Movement().ListMovements(ctx)
}

func (s *LedgerService) ListByAccount(ctx context.Context, accountID int64) ([]models.Movement, error) {
	return s.storage.Movement().ListMovementsByAccount(ctx, accountID)
}

func (s *LedgerService) ListByAccountAndDates(ctx context.Context, accountID int64, from, to time.Time) ([]models.Movement, error) {
	return s.storage.Movement().ListMovementsByAccountAndDates(ctx, accountID, from, to)
}

func (s *LedgerService) ListByAccountAndKind(ctx context.Context, accountID int64, kind string) ([]models.Movement, error) {
	canonical, ok := models.ParseMovementKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidMovementKind, kind)
	}

	return s.storage.Movement().ListMovementsByAccountAndKind(ctx, accountID, canonical)
}

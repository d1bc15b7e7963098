// Package report composes account and movement queries into the
// per-customer statement. Pure aggregation, no invariants of its own.
package report

import (
	"context"
	"time"

	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository"
)

type ReportService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *ReportService {
	return &ReportService{
		storage: storage,
	}
}

// AccountStatement is one account snapshot together with its movements in
// the requested period.
type AccountStatement struct {
	Account   models.Account
	Movements []models.Movement
}

type Statement struct {
	CustomerID  int64
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Accounts    []AccountStatement
}

// Statement builds the account statement for every account of the
// customer. from and to are dates; the movement window spans from the
// start of the first day to the end of the last one.
func (s *ReportService) Statement(ctx context.Context, customerID int64, from, to time.Time) (Statement, error) {
	report := Statement{
		CustomerID:  customerID,
		From:        from,
		To:          to,
		GeneratedAt: time.Now(),
	}

	accounts, err := s.storage.Account().ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return report, err
	}

	start := from
	end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report.Accounts = make([]AccountStatement, 0, len(accounts))
	for _, account := range accounts {
		movements, err := s.storage.Movement().ListMovementsByAccountAndDates(ctx, account.ID, start, end)
		if err != nil {
			return report, err
		}

		report.Accounts = append(report.Accounts, AccountStatement{
			Account:   account,
			Movements: movements,
		})
	}

	return report, nil
}

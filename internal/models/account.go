package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank account owned by a customer of the clientes service.
// AvailableBalance is mutated only by movement registration, never by the
// account CRUD operations.
type Account struct {
	ID               int64
	Number           string
	Type             string
	InitialBalance   decimal.Decimal
	AvailableBalance decimal.Decimal
	Active           bool
	CustomerID       int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

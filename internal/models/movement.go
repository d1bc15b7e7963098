package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical movement kinds as stored and returned on the wire.
// The Spanish values are kept for compatibility with the existing API
// consumers; ParseMovementKind accepts the English spellings too.
const (
	MovementDeposit    = "Deposito"
	MovementWithdrawal = "Retiro"
)

// Movement is a single ledger entry posted against an account.
// Balance is the account's available balance immediately after this
// movement was applied; it is written once and never recomputed.
type Movement struct {
	ID          int64
	Date        time.Time
	Kind        string
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	AccountID   int64
	Description string
	CreatedAt   time.Time
}

// ParseMovementKind normalizes a user supplied movement kind to its
// canonical value. Matching is case-insensitive. Returns false when the
// value is not a recognized kind.
func ParseMovementKind(kind string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "deposito", "depósito", "deposit":
		return MovementDeposit, true
	case "retiro", "withdrawal":
		return MovementWithdrawal, true
	default:
		return "", false
	}
}

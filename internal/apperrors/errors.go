package apperrors

import (
	"errors"
)

var (
	ErrCustomerAlreadyExists = errors.New("customer with this identification already exists")
	ErrCustomerNotFound      = errors.New("customer not found")

	ErrAccountAlreadyExists   = errors.New("account number already exists")
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrInitialBalanceNegative = errors.New("initial balance can't be negative")

	ErrMovementNotFound    = errors.New("movement not found")
	ErrInvalidMovementKind = errors.New("invalid movement kind")
	ErrAmountNotPositive   = errors.New("movement amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient available balance")
)

package handlers

import (
	"errors"
	"net/http"

	"github.com/banksystem/banking/internal/apperrors"
	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/logger"
)

// StatusForError maps the service error taxonomy to HTTP status codes.
// Pure function, so the mapping is testable without any transport around
// it. Unknown errors map to 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrCustomerNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrMovementNotFound):
		return http.StatusNotFound

	case errors.Is(err, apperrors.ErrCustomerAlreadyExists),
		errors.Is(err, apperrors.ErrAccountAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInvalidMovementKind),
		errors.Is(err, apperrors.ErrAmountNotPositive),
		errors.Is(err, apperrors.ErrInitialBalanceNegative),
		errors.Is(err, apperrors.ErrAccountInactive):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON: taxonomy errors keep their
// message and mapped status, anything else is logged and hidden behind a
// generic 500.
func respondError(w http.ResponseWriter, err error, l logger.Logger) {
	code := StatusForError(err)
	if code == http.StatusInternalServerError {
		l.Error("Unhandled service error", "error", err)
		render.ServiceError(w, "Internal server error", code)
		return
	}

	render.ServiceError(w, err.Error(), code)
}

package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/logger"
	"github.com/banksystem/banking/internal/service/account"
)

func handleListCuentas(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := accountService.List(r.Context())
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponses(accounts))
	})
}

func handleListCuentasActivas(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := accountService.ListActive(r.Context())
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponses(accounts))
	})
}

func handleGetCuenta(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		account, err := accountService.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponse(account))
	})
}

func handleGetCuentaPorNumero(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := accountService.GetByNumber(r.Context(), r.PathValue("numeroCuenta"))
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponse(account))
	})
}

func handleListCuentasPorCliente(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clienteID, ok := pathID(w, r, "clienteId")
		if !ok {
			return
		}

		accounts, err := accountService.ListByCustomer(r.Context(), clienteID)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponses(accounts))
	})
}

func handleCrearCuenta(accountService accountService, l logger.Logger) http.Handler {
	type request struct {
		NumeroCuenta string          `json:"numeroCuenta" validate:"required"`
		TipoCuenta   string          `json:"tipoCuenta" validate:"required"`
		SaldoInicial decimal.Decimal `json:"saldoInicial"`
		ClienteID    int64           `json:"clienteId" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		created, err := accountService.Create(r.Context(), account.CreateAccountArgs{
			Number:         req.NumeroCuenta,
			Type:           req.TipoCuenta,
			InitialBalance: req.SaldoInicial,
			CustomerID:     req.ClienteID,
		})
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSONWithStatus(w, toCuentaResponse(created), http.StatusCreated)
	})
}

func handleActualizarCuenta(accountService accountService, l logger.Logger) http.Handler {
	type request struct {
		NumeroCuenta string `json:"numeroCuenta" validate:"required"`
		TipoCuenta   string `json:"tipoCuenta" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := accountService.Update(r.Context(), id, req.NumeroCuenta, req.TipoCuenta)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponse(updated))
	})
}

func handleCambiarEstadoCuenta(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		estado, ok := queryBool(w, r, "estado")
		if !ok {
			return
		}

		updated, err := accountService.SetActive(r.Context(), id, estado)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toCuentaResponse(updated))
	})
}

func handleEliminarCuenta(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := accountService.Delete(r.Context(), id); err != nil {
			respondError(w, err, l)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

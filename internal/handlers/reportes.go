package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/logger"
)

// handleEstadoCuenta builds the account statement report: per-account
// snapshot plus its movements within the requested date range.
func handleEstadoCuenta(reportService reportService, l logger.Logger) http.Handler {
	type cuentaDetalle struct {
		NumeroCuenta string               `json:"numeroCuenta"`
		TipoCuenta   string               `json:"tipoCuenta"`
		SaldoInicial json.Number          `json:"saldoInicial"`
		SaldoActual  json.Number          `json:"saldoActual"`
		Estado       bool                 `json:"estado"`
		Movimientos  []movimientoResponse `json:"movimientos"`
	}

	type response struct {
		ClienteID    int64           `json:"clienteId"`
		FechaInicio  string          `json:"fechaInicio"`
		FechaFin     string          `json:"fechaFin"`
		FechaReporte time.Time       `json:"fechaReporte"`
		Cuentas      []cuentaDetalle `json:"cuentas"`
	}

	const dateOnly = "2006-01-02"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		clienteID, err := strconv.ParseInt(query.Get("clienteId"), 10, 64)
		if err != nil {
			render.ServiceError(w, "Invalid clienteId", http.StatusBadRequest)
			return
		}

		fechaInicio, err := time.Parse(dateOnly, query.Get("fechaInicio"))
		if err != nil {
			render.ServiceError(w, "Invalid fechaInicio", http.StatusBadRequest)
			return
		}

		fechaFin, err := time.Parse(dateOnly, query.Get("fechaFin"))
		if err != nil {
			render.ServiceError(w, "Invalid fechaFin", http.StatusBadRequest)
			return
		}

		statement, err := reportService.Statement(r.Context(), clienteID, fechaInicio, fechaFin)
		if err != nil {
			respondError(w, err, l)
			return
		}

		cuentas := make([]cuentaDetalle, 0, len(statement.Accounts))
		for _, as := range statement.Accounts {
			cuentas = append(cuentas, cuentaDetalle{
				NumeroCuenta: as.Account.Number,
				TipoCuenta:   as.Account.Type,
				SaldoInicial: jsonDecimal(as.Account.InitialBalance),
				SaldoActual:  jsonDecimal(as.Account.AvailableBalance),
				Estado:       as.Account.Active,
				Movimientos:  toMovimientoResponses(as.Movements),
			})
		}

		render.JSON(w, response{
			ClienteID:    statement.CustomerID,
			FechaInicio:  statement.From.Format(dateOnly),
			FechaFin:     statement.To.Format(dateOnly),
			FechaReporte: statement.GeneratedAt,
			Cuentas:      cuentas,
		})
	})
}

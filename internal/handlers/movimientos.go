package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/logger"
)

// handleRegistrarMovimiento posts a deposit or withdrawal. The original
// API takes query parameters here, not a body, and that shape is kept.
func handleRegistrarMovimiento(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		cuentaID, err := strconv.ParseInt(query.Get("cuentaId"), 10, 64)
		if err != nil {
			render.ServiceError(w, "Invalid cuentaId", http.StatusBadRequest)
			return
		}

		valor, err := decimal.NewFromString(query.Get("valor"))
		if err != nil {
			render.ServiceError(w, "Invalid valor", http.StatusBadRequest)
			return
		}

		movement, err := ledgerService.Register(r.Context(), cuentaID, query.Get("tipoMovimiento"), valor)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSONWithStatus(w, toMovimientoResponse(movement), http.StatusCreated)
	})
}

func handleGetMovimiento(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		movement, err := ledgerService.GetMovement(r.Context(), id)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toMovimientoResponse(movement))
	})
}

func handleListMovimientos(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		movements, err := ledgerService.ListMovements(r.Context())
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toMovimientoResponses(movements))
	})
}

func handleListMovimientosPorCuenta(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cuentaID, ok := pathID(w, r, "cuentaId")
		if !ok {
			return
		}

		movements, err := ledgerService.ListByAccount(r.Context(), cuentaID)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toMovimientoResponses(movements))
	})
}

// fechaLayouts accepted by the fechas filter. Clients of the original API
// send ISO datetimes without a zone offset, so that form comes first;
// RFC3339 timestamps stay accepted.
var fechaLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

func parseFecha(value string) (time.Time, error) {
	var err error
	for _, layout := range fechaLayouts {
		var ts time.Time
		if ts, err = time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, err
}

func handleListMovimientosPorFechas(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cuentaID, ok := pathID(w, r, "cuentaId")
		if !ok {
			return
		}

		query := r.URL.Query()

		fechaInicio, err := parseFecha(query.Get("fechaInicio"))
		if err != nil {
			render.ServiceError(w, "Invalid fechaInicio", http.StatusBadRequest)
			return
		}

		fechaFin, err := parseFecha(query.Get("fechaFin"))
		if err != nil {
			render.ServiceError(w, "Invalid fechaFin", http.StatusBadRequest)
			return
		}

		movements, err := ledgerService.ListByAccountAndDates(r.Context(), cuentaID, fechaInicio, fechaFin)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toMovimientoResponses(movements))
	})
}

func handleListMovimientosPorTipo(ledgerService ledgerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cuentaID, ok := pathID(w, r, "cuentaId")
		if !ok {
			return
		}

		movements, err := ledgerService.ListByAccountAndKind(r.Context(), cuentaID, r.URL.Query().Get("tipoMovimiento"))
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toMovimientoResponses(movements))
	})
}

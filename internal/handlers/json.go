package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/models"
)

// Wire representations keep the Spanish field names of the original API.

// jsonDecimal renders a decimal as a plain JSON number from its string
// form. Going through float64 would round balances beyond its 2^53 exact
// range, and numeric(19,2) admits larger values than that.
func jsonDecimal(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type cuentaResponse struct {
	ID                 int64       `json:"id"`
	NumeroCuenta       string      `json:"numeroCuenta"`
	TipoCuenta         string      `json:"tipoCuenta"`
	SaldoInicial       json.Number `json:"saldoInicial"`
	SaldoDisponible    json.Number `json:"saldoDisponible"`
	Estado             bool        `json:"estado"`
	ClienteID          int64       `json:"clienteId"`
	FechaCreacion      time.Time   `json:"fechaCreacion"`
	FechaActualizacion time.Time   `json:"fechaActualizacion"`
}

func toCuentaResponse(a models.Account) cuentaResponse {
	return cuentaResponse{
		ID:                 a.ID,
		NumeroCuenta:       a.Number,
		TipoCuenta:         a.Type,
		SaldoInicial:       jsonDecimal(a.InitialBalance),
		SaldoDisponible:    jsonDecimal(a.AvailableBalance),
		Estado:             a.Active,
		ClienteID:          a.CustomerID,
		FechaCreacion:      a.CreatedAt,
		FechaActualizacion: a.UpdatedAt,
	}
}

func toCuentaResponses(accounts []models.Account) []cuentaResponse {
	out := make([]cuentaResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toCuentaResponse(a))
	}
	return out
}

type movimientoResponse struct {
	ID             int64       `json:"id"`
	Fecha          time.Time   `json:"fecha"`
	TipoMovimiento string      `json:"tipoMovimiento"`
	Valor          json.Number `json:"valor"`
	Saldo          json.Number `json:"saldo"`
	CuentaID       int64       `json:"cuentaId"`
	Descripcion    string      `json:"descripcion"`
	FechaCreacion  time.Time   `json:"fechaCreacion"`
}

func toMovimientoResponse(m models.Movement) movimientoResponse {
	return movimientoResponse{
		ID:             m.ID,
		Fecha:          m.Date,
		TipoMovimiento: m.Kind,
		Valor:          jsonDecimal(m.Amount),
		Saldo:          jsonDecimal(m.Balance),
		CuentaID:       m.AccountID,
		Descripcion:    m.Description,
		FechaCreacion:  m.CreatedAt,
	}
}

func toMovimientoResponses(movements []models.Movement) []movimientoResponse {
	out := make([]movimientoResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovimientoResponse(m))
	}
	return out
}

type clienteResponse struct {
	ID                 int64     `json:"id"`
	Nombre             string    `json:"nombre"`
	Genero             string    `json:"genero"`
	Edad               int       `json:"edad"`
	Identificacion     string    `json:"identificacion"`
	Direccion          string    `json:"direccion"`
	Telefono           string    `json:"telefono"`
	Estado             bool      `json:"estado"`
	NumeroCliente      string    `json:"numeroCliente"`
	FechaCreacion      time.Time `json:"fechaCreacion"`
	FechaActualizacion time.Time `json:"fechaActualizacion"`
}

func toClienteResponse(c models.Customer) clienteResponse {
	return clienteResponse{
		ID:                 c.ID,
		Nombre:             c.Name,
		Genero:             c.Gender,
		Edad:               c.Age,
		Identificacion:     c.Identification,
		Direccion:          c.Address,
		Telefono:           c.Phone,
		Estado:             c.Active,
		NumeroCliente:      c.Number,
		FechaCreacion:      c.CreatedAt,
		FechaActualizacion: c.UpdatedAt,
	}
}

func toClienteResponses(customers []models.Customer) []clienteResponse {
	out := make([]clienteResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toClienteResponse(c))
	}
	return out
}

// pathID parses the named path segment as an int64 id. Writes a 400
// response and returns false when the value is not a number.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		render.ServiceError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

// queryBool parses a required boolean query parameter
func queryBool(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		render.ServiceError(w, "Invalid "+name, http.StatusBadRequest)
		return false, false
	}

	return value, true
}

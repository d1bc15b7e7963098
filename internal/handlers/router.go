package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banksystem/banking/internal/handlers/middleware"
	"github.com/banksystem/banking/internal/logger"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/service/account"
	"github.com/banksystem/banking/internal/service/report"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// NewCuentaRouter wires the account, movement and report endpoints of the
// cuenta-movimiento service.
func NewCuentaRouter(
	accountService accountService,
	ledgerService ledgerService,
	reportService reportService,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("GET /cuentas", handleListCuentas(accountService, logger))
	api.Handle("GET /cuentas/activas", handleListCuentasActivas(accountService, logger))
	api.Handle("GET /cuentas/{id}", handleGetCuenta(accountService, logger))
	api.Handle("GET /cuentas/numero/{numeroCuenta}", handleGetCuentaPorNumero(accountService, logger))
	api.Handle("GET /cuentas/cliente/{clienteId}", handleListCuentasPorCliente(accountService, logger))
	api.Handle("POST /cuentas", handleCrearCuenta(accountService, logger))
	api.Handle("PUT /cuentas/{id}", handleActualizarCuenta(accountService, logger))
	api.Handle("PATCH /cuentas/{id}/estado", handleCambiarEstadoCuenta(accountService, logger))
	api.Handle("DELETE /cuentas/{id}", handleEliminarCuenta(accountService, logger))

	api.Handle("GET /movimientos", handleListMovimientos(ledgerService, logger))
	api.Handle("POST /movimientos/registrar", handleRegistrarMovimiento(ledgerService, logger))
	api.Handle("GET /movimientos/{id}", handleGetMovimiento(ledgerService, logger))
	api.Handle("GET /movimientos/cuenta/{cuentaId}", handleListMovimientosPorCuenta(ledgerService, logger))
	api.Handle("GET /movimientos/cuenta/{cuentaId}/fechas", handleListMovimientosPorFechas(ledgerService, logger))
	api.Handle("GET /movimientos/tipo/{cuentaId}", handleListMovimientosPorTipo(ledgerService, logger))

	api.Handle("GET /reportes/estado-cuenta", handleEstadoCuenta(reportService, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		middleware.RequestLogger("cuenta-movimiento", logger),
	)
}

// NewClienteRouter wires the customer endpoints of the cliente-persona
// service.
func NewClienteRouter(
	customerService customerService,
	logger logger.Logger,
) http.Handler {
	api := http.NewServeMux()

	api.Handle("GET /clientes", handleListClientes(customerService, logger))
	api.Handle("GET /clientes/activos", handleListClientesActivos(customerService, logger))
	api.Handle("GET /clientes/buscar", handleBuscarClientes(customerService, logger))
	api.Handle("GET /clientes/{id}", handleGetCliente(customerService, logger))
	api.Handle("GET /clientes/identificacion/{identificacion}", handleGetClientePorIdentificacion(customerService, logger))
	api.Handle("GET /clientes/numero/{numeroCliente}", handleGetClientePorNumero(customerService, logger))
	api.Handle("POST /clientes", handleCrearCliente(customerService, logger))
	api.Handle("PUT /clientes/{id}", handleActualizarCliente(customerService, logger))
	api.Handle("PATCH /clientes/{id}/estado", handleCambiarEstadoCliente(customerService, logger))
	api.Handle("DELETE /clientes/{id}", handleEliminarCliente(customerService, logger))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		middleware.RequestLogger("cliente-persona", logger),
	)
}

type accountService interface {
	Create(ctx context.Context, arg account.CreateAccountArgs) (models.Account, error)
	Update(ctx context.Context, id int64, number string, accountType string) (models.Account, error)
	SetActive(ctx context.Context, id int64, active bool) (models.Account, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (models.Account, error)
	GetByNumber(ctx context.Context, number string) (models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	ListActive(ctx context.Context) ([]models.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Account, error)
}

type ledgerService interface {
	Register(ctx context.Context, accountID int64, kind string, amount decimal.Decimal) (models.Movement, error)
	GetMovement(ctx context.Context, id int64) (models.Movement, error)
	ListMovements(ctx context.Context) ([]models.Movement, error)
	ListByAccount(ctx context.Context, accountID int64) ([]models.Movement, error)
	ListByAccountAndDates(ctx context.Context, accountID int64, from, to time.Time) ([]models.Movement, error)
	ListByAccountAndKind(ctx context.Context, accountID int64, kind string) ([]models.Movement, error)
}

type reportService interface {
	Statement(ctx context.Context, customerID int64, from, to time.Time) (report.Statement, error)
}

type customerService interface {
	Create(ctx context.Context, person models.PersonInfo, password string) (models.Customer, error)
	Update(ctx context.Context, id int64, person models.PersonInfo, password string) (models.Customer, error)
	SetActive(ctx context.Context, id int64, active bool) (models.Customer, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (models.Customer, error)
	GetByIdentification(ctx context.Context, identification string) (models.Customer, error)
	GetByNumber(ctx context.Context, number string) (models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	ListActive(ctx context.Context) ([]models.Customer, error)
	SearchByName(ctx context.Context, name string) ([]models.Customer, error)
}

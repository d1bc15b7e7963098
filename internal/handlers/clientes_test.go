package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/banksystem/banking/internal/db"
	"github.com/banksystem/banking/internal/logger"
	"github.com/banksystem/banking/internal/models"
	"github.com/banksystem/banking/internal/repository/postgres"
	"github.com/banksystem/banking/internal/service/customer"
	"github.com/banksystem/banking/internal/testutil"
)

func Test_ClientesHandlers(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t, db.MigrationsClientes)
	t.Cleanup(pg.Terminate)

	withSrv := func(t *testing.T, fn func(url string, customerService *customer.CustomerService)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			customerService := customer.NewService(customer.DefaultHasher, &postgres.CustomerRepo{DB: tx})
			mux := NewClienteRouter(customerService, logger.NewNoOpLogger())

			srv := httptest.NewServer(mux)
			defer srv.Close()

			fn(srv.URL, customerService)
		})
	}

	person := models.PersonInfo{
		Name:           "Jose Lema",
		Gender:         "Masculino",
		Age:            34,
		Identification: "098254785",
		Address:        "Otavalo sn y principal",
		Phone:          "098254785",
	}

	createCustomer := func(t *testing.T, s *customer.CustomerService) models.Customer {
		t.Helper()

		created, err := s.Create(t.Context(), person, "password123")
		require.NoError(t, err)
		return created
	}

	readBody := func(t *testing.T, resp *http.Response) string {
		t.Helper()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return string(body)
	}

	t.Run("create customer", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			data := `{
				"nombre": "Jose Lema",
				"genero": "Masculino",
				"edad": 34,
				"identificacion": "098254785",
				"direccion": "Otavalo sn y principal",
				"telefono": "098254785",
				"contrasena": "password123"
			}`

			resp, err := http.Post(url+"/api/clientes", "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, `"nombre":"Jose Lema"`)
			require.Contains(t, body, `"numeroCliente":"CLI-`)
			require.Contains(t, body, `"estado":true`)
			require.NotContains(t, body, "password123", "password must never appear in responses")
			require.NotContains(t, body, "contrasena", "password hash must never appear in responses")
		})
	})

	t.Run("create customer with short password", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			data := `{"nombre": "Jose Lema", "identificacion": "098254785", "contrasena": "123"}`

			resp, err := http.Post(url+"/api/clientes", "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, "validation_failed")
			require.Contains(t, body, "contrasena")
		})
	})

	t.Run("create customer with taken identification", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			createCustomer(t, customerService)

			data := `{"nombre": "Otro Nombre", "identificacion": "098254785", "contrasena": "password123"}`

			resp, err := http.Post(url+"/api/clientes", "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusConflict, resp.StatusCode, "not expected code. Body: %s", body)
		})
	})

	t.Run("get customer", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			resp, err := http.Get(fmt.Sprintf("%s/api/clientes/%d", url, created.ID))
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, `"identificacion":"098254785"`)
		})
	})

	t.Run("get unknown customer", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			resp, err := http.Get(url + "/api/clientes/99999")
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusNotFound, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `
				{
					"error": "service_error",
					"message": "customer not found"
				}`, body)
		})
	})

	t.Run("get customer by identification", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			resp, err := http.Get(url + "/api/clientes/identificacion/098254785")
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var got struct {
				ID int64 `json:"id"`
			}
			requireUnmarshal(t, body, &got)
			require.Equal(t, created.ID, got.ID)
		})
	})

	t.Run("search customers", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			resp, err := http.Get(url + "/api/clientes/buscar?nombre=lema")
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var customers []struct {
				ID int64 `json:"id"`
			}
			requireUnmarshal(t, body, &customers)
			require.Len(t, customers, 1)
			require.Equal(t, created.ID, customers[0].ID)
		})
	})

	t.Run("search without nombre", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			resp, err := http.Get(url + "/api/clientes/buscar")
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", body)
		})
	})

	t.Run("update customer", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			data := `{
				"nombre": "Jose Lema",
				"genero": "Masculino",
				"edad": 35,
				"identificacion": "098254785",
				"direccion": "Av. Principal 123",
				"telefono": "098254785"
			}`
			req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/clientes/%d", url, created.ID), strings.NewReader(data))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, `"direccion":"Av. Principal 123"`)
			require.Contains(t, body, `"edad":35`)

			stored, err := customerService.GetByID(t.Context(), created.ID)
			require.NoError(t, err)
			require.Equal(t, created.HashedPassword, stored.HashedPassword, "update without password should keep the hash")
		})
	})

	t.Run("change customer state", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			req, err := http.NewRequest(http.MethodPatch, fmt.Sprintf("%s/api/clientes/%d/estado?estado=false", url, created.ID), nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			body := readBody(t, resp)

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, `"estado":false`)
		})
	})

	t.Run("delete customer", func(t *testing.T) {
		withSrv(t, func(url string, customerService *customer.CustomerService) {
			created := createCustomer(t, customerService)

			req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/clientes/%d", url, created.ID), nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			_ = readBody(t, resp)

			require.Equal(t, http.StatusNoContent, resp.StatusCode)

			_, err = customerService.GetByID(t.Context(), created.ID)
			require.Error(t, err, "customer should be gone")
		})
	})
}

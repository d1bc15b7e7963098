package handlers

import (
	"net/http"

	"github.com/banksystem/banking/internal/handlers/render"
	"github.com/banksystem/banking/internal/logger"
	"github.com/banksystem/banking/internal/models"
)

type clienteRequest struct {
	Nombre         string `json:"nombre" validate:"required"`
	Genero         string `json:"genero"`
	Edad           int    `json:"edad" validate:"gte=0"`
	Identificacion string `json:"identificacion" validate:"required"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
	Contrasena     string `json:"contrasena" validate:"required,min=6"`
}

func (req clienteRequest) personInfo() models.PersonInfo {
	return models.PersonInfo{
		Name:           req.Nombre,
		Gender:         req.Genero,
		Age:            req.Edad,
		Identification: req.Identificacion,
		Address:        req.Direccion,
		Phone:          req.Telefono,
	}
}

// Same shape as clienteRequest but the password is optional: an empty one
// keeps the stored hash.
type clienteUpdateRequest struct {
	Nombre         string `json:"nombre" validate:"required"`
	Genero         string `json:"genero"`
	Edad           int    `json:"edad" validate:"gte=0"`
	Identificacion string `json:"identificacion" validate:"required"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
	Contrasena     string `json:"contrasena" validate:"omitempty,min=6"`
}

func (req clienteUpdateRequest) personInfo() models.PersonInfo {
	return models.PersonInfo{
		Name:           req.Nombre,
		Gender:         req.Genero,
		Age:            req.Edad,
		Identification: req.Identificacion,
		Address:        req.Direccion,
		Phone:          req.Telefono,
	}
}

func handleListClientes(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customers, err := customerService.List(r.Context())
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponses(customers))
	})
}

func handleListClientesActivos(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customers, err := customerService.ListActive(r.Context())
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponses(customers))
	})
}

func handleBuscarClientes(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nombre := r.URL.Query().Get("nombre")
		if nombre == "" {
			render.ServiceError(w, "Missing nombre", http.StatusBadRequest)
			return
		}

		customers, err := customerService.SearchByName(r.Context(), nombre)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponses(customers))
	})
}

func handleGetCliente(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		customer, err := customerService.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponse(customer))
	})
}

func handleGetClientePorIdentificacion(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customer, err := customerService.GetByIdentification(r.Context(), r.PathValue("identificacion"))
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponse(customer))
	})
}

func handleGetClientePorNumero(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customer, err := customerService.GetByNumber(r.Context(), r.PathValue("numeroCliente"))
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponse(customer))
	})
}

func handleCrearCliente(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[clienteRequest](w, r)
		if err != nil {
			return
		}

		created, err := customerService.Create(r.Context(), req.personInfo(), req.Contrasena)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSONWithStatus(w, toClienteResponse(created), http.StatusCreated)
	})
}

func handleActualizarCliente(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		req, err := render.BindAndValidate[clienteUpdateRequest](w, r)
		if err != nil {
			return
		}

		updated, err := customerService.Update(r.Context(), id, req.personInfo(), req.Contrasena)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponse(updated))
	})
}

func handleCambiarEstadoCliente(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		estado, ok := queryBool(w, r, "estado")
		if !ok {
			return
		}

		updated, err := customerService.SetActive(r.Context(), id, estado)
		if err != nil {
			respondError(w, err, l)
			return
		}

		render.JSON(w, toClienteResponse(updated))
	})
}

func handleEliminarCliente(customerService customerService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := customerService.Delete(r.Context(), id); err != nil {
			respondError(w, err, l)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/usecase/command"
	"github.com/tdnguyen/serialpos/internal/supplier/usecase/query"
	"github.com/tdnguyen/serialpos/pkg/auth"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	createHandler *command.CreateSupplierHandler
	updateHandler *command.UpdateSupplierHandler
	deleteHandler *command.DeleteSupplierHandler
	listHandler   *query.ListSuppliersHandler
	unitsHandler  *query.UnitsBySupplierHandler
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(
	repo domain.SupplierRepository,
	units invdomain.InventoryRepository,
	unitsHandler *query.UnitsBySupplierHandler,
) *SupplierHandler {
	return &SupplierHandler{
		createHandler: command.NewCreateSupplierHandler(repo),
		updateHandler: command.NewUpdateSupplierHandler(repo),
		deleteHandler: command.NewDeleteSupplierHandler(repo, units),
		listHandler:   query.NewListSuppliersHandler(repo),
		unitsHandler:  unitsHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListSuppliers handles GET /api/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	filter := domain.SupplierFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListSuppliersQuery{Filter: filter})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetSupplier handles GET /api/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	supplier, err := h.listHandler.HandleGet(query.GetSupplierQuery{SupplierID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    supplier,
	})
}

// CreateSupplier handles POST /api/suppliers
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateSupplierCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	supplier, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Supplier created successfully",
		Data:    supplier,
	})
}

// UpdateSupplier handles PUT /api/suppliers/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var cmd command.UpdateSupplierCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	cmd.SupplierID = id

	supplier, err := h.updateHandler.Handle(cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier updated successfully",
		Data:    supplier,
	})
}

// DeleteSupplier handles DELETE /api/suppliers/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteSupplierCommand{SupplierID: id}); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier deleted successfully",
	})
}

// SupplierProducts handles GET /api/suppliers/{id}/products
func (h *SupplierHandler) SupplierProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.unitsHandler.Handle(query.UnitsBySupplierQuery{SupplierID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// RegisterRoutes registers all supplier routes
func (h *SupplierHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/suppliers", h.ListSuppliers).Methods("GET")
	router.HandleFunc("/api/suppliers", auth.Middleware(h.CreateSupplier)).Methods("POST")
	router.HandleFunc("/api/suppliers/{id:[0-9]+}", h.GetSupplier).Methods("GET")
	router.HandleFunc("/api/suppliers/{id:[0-9]+}", auth.Middleware(h.UpdateSupplier)).Methods("PUT")
	router.HandleFunc("/api/suppliers/{id:[0-9]+}", auth.Middleware(h.DeleteSupplier)).Methods("DELETE")
	router.HandleFunc("/api/suppliers/{id:[0-9]+}/products", h.SupplierProducts).Methods("GET")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid supplier ID",
		})
		return 0, false
	}
	return uint(id), true
}

func respondError(w http.ResponseWriter, err error) {
	if de, ok := invdomain.AsDomainError(err); ok {
		status := http.StatusBadRequest
		switch de.Code {
		case invdomain.CodeNotFound:
			status = http.StatusNotFound
		case invdomain.CodeSupplierConstraint:
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Message: de.Message,
			Error:   de.Code,
		})
		return
	}

	logger.Logger.Error().Err(err).Msg("Supplier request failed")
	respondJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/catalog/usecase/command"
	"github.com/tdnguyen/serialpos/internal/catalog/usecase/query"
	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/pkg/auth"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler
	listHandler   *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	repo domain.ProductRepository,
	units invdomain.InventoryRepository,
	listHandler *query.ListProductsHandler,
) *ProductHandler {
	return &ProductHandler{
		createHandler: command.NewCreateProductHandler(repo),
		updateHandler: command.NewUpdateProductHandler(repo),
		deleteHandler: command.NewDeleteProductHandler(repo, units),
		listHandler:   listHandler,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListProductsQuery{Filter: filter})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.listHandler.HandleGet(query.GetProductQuery{ProductID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var cmd command.UpdateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	cmd.ProductID = id

	product, err := h.updateHandler.Handle(cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ProductID: id}); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", auth.Middleware(h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", auth.Middleware(h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id:[0-9]+}", auth.Middleware(h.DeleteProduct)).Methods("DELETE")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}

func respondError(w http.ResponseWriter, err error) {
	if de, ok := invdomain.AsDomainError(err); ok {
		status := http.StatusBadRequest
		if de.Code == invdomain.CodeNotFound {
			status = http.StatusNotFound
		}
		respondJSON(w, status, Response{
			Success: false,
			Message: de.Message,
			Error:   de.Code,
		})
		return
	}

	logger.Logger.Error().Err(err).Msg("Product request failed")
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

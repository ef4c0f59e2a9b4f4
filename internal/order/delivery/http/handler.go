package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/order/domain"
	"github.com/tdnguyen/serialpos/internal/order/usecase/command"
	"github.com/tdnguyen/serialpos/internal/order/usecase/query"
	"github.com/tdnguyen/serialpos/kafka"
	"github.com/tdnguyen/serialpos/pkg/auth"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	createHandler *command.CreateOrderHandler
	listHandler   *query.ListOrdersHandler
	publisher     *kafka.Publisher
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	listHandler *query.ListOrdersHandler,
	publisher *kafka.Publisher,
) *OrderHandler {
	return &OrderHandler{
		createHandler: createHandler,
		listHandler:   listHandler,
		publisher:     publisher,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	cmd.ActorID = auth.UserIDFromContext(r.Context())

	order, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	if h.publisher != nil {
		for _, item := range order.Items {
			if item.UnitID == nil {
				continue
			}
			event := kafka.StockMovementEvent{
				EventType:      kafka.EventTypeUnitSold,
				ProductID:      item.ProductID,
				UnitID:         item.UnitID,
				SerialNumber:   item.SerialNumber,
				QuantityChange: -1,
				OrderID:        &order.ID,
				ActorUserID:    cmd.ActorID,
			}
			if err := h.publisher.PublishStockMovement(r.Context(), event); err != nil {
				logger.Logger.Error().Err(err).
					Str("order_number", order.OrderNumber).
					Uint("product_id", item.ProductID).
					Msg("Failed to publish sale event")
			}
		}
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order completed successfully",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{
		Status: r.URL.Query().Get("status"),
	}
	if v := r.URL.Query().Get("customer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid customer_id",
			})
			return
		}
		filter.CustomerID = uint(id)
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListOrdersQuery{Filter: filter})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid order ID",
		})
		return
	}

	order, err := h.listHandler.HandleGet(query.GetOrderQuery{OrderID: uint(id)})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", auth.Middleware(h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id:[0-9]+}", h.GetOrder).Methods("GET")
}

func respondError(w http.ResponseWriter, err error) {
	if de, ok := invdomain.AsDomainError(err); ok {
		status := http.StatusBadRequest
		switch de.Code {
		case invdomain.CodeNotFound:
			status = http.StatusNotFound
		case invdomain.CodeUnitUnavailable:
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Message: de.Message,
			Error:   de.Code,
		})
		return
	}

	logger.Logger.Error().Err(err).Msg("Order request failed")
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

package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/tdnguyen/serialpos/internal/catalog/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/inventory/usecase/command"
	"github.com/tdnguyen/serialpos/internal/inventory/usecase/query"
	"github.com/tdnguyen/serialpos/kafka"
	"github.com/tdnguyen/serialpos/pkg/auth"
	"github.com/tdnguyen/serialpos/pkg/logger"
)

// InventoryHandler handles HTTP requests for serialized inventory
type InventoryHandler struct {
	// Command handlers
	createUnitsHandler *command.CreateUnitsHandler
	updateUnitHandler  *command.UpdateUnitHandler
	deleteUnitHandler  *command.DeleteUnitHandler
	markSoldHandler    *command.MarkSoldHandler
	returnUnitHandler  *command.ReturnUnitHandler
	adjustmentHandler  *command.ManualAdjustmentHandler

	// Query handlers
	stockHandler        *query.StockSummaryHandler
	listUnitsHandler    *query.ListUnitsHandler
	transactionsHandler *query.ListTransactionsHandler
	warrantyHandler     *query.WarrantyInfoHandler

	repo      domain.InventoryRepository
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	availableUnits *prometheus.GaugeVec
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	repo domain.InventoryRepository,
	products catalogdomain.ProductRepository,
	warrantyHandler *query.WarrantyInfoHandler,
	publisher *kafka.Publisher,
) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_service_requests_total",
			Help: "Total number of requests to inventory service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_service_request_duration_seconds",
			Help:    "Duration of inventory service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	availableUnits := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_service_available_units",
			Help: "Available serialized units per product",
		},
		[]string{"product_id"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(availableUnits)

	return &InventoryHandler{
		createUnitsHandler:  command.NewCreateUnitsHandler(repo, products),
		updateUnitHandler:   command.NewUpdateUnitHandler(repo),
		deleteUnitHandler:   command.NewDeleteUnitHandler(repo),
		markSoldHandler:     command.NewMarkSoldHandler(repo),
		returnUnitHandler:   command.NewReturnUnitHandler(repo),
		adjustmentHandler:   command.NewManualAdjustmentHandler(repo),
		stockHandler:        query.NewStockSummaryHandler(repo, products),
		listUnitsHandler:    query.NewListUnitsHandler(repo),
		transactionsHandler: query.NewListTransactionsHandler(repo),
		warrantyHandler:     warrantyHandler,
		repo:                repo,
		publisher:           publisher,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		availableUnits:      availableUnits,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InventoryHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListSerials handles GET /api/products/{id}/serials
func (h *InventoryHandler) ListSerials(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id", "Invalid product ID")
	if !ok {
		return
	}

	units, err := h.listUnitsHandler.Handle(query.ListUnitsQuery{ProductID: productID})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    units,
	})
}

// CreateSerials handles POST /api/products/{id}/serials
func (h *InventoryHandler) CreateSerials(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id", "Invalid product ID")
	if !ok {
		return
	}

	var req struct {
		Serials              []string `json:"serials"`
		Count                int      `json:"count"`
		Prefix               string   `json:"prefix"`
		ConditionGrade       string   `json:"condition_grade"`
		Location             string   `json:"location"`
		PurchasePrice        int64    `json:"purchase_price"`
		SupplierID           *uint    `json:"supplier_id"`
		WarrantyStartDate    *string  `json:"warranty_start_date"`
		WarrantyPeriodMonths *int     `json:"warranty_period_months"`
		Notes                string   `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	warrantyStart, err := parseDate(req.WarrantyStartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid warranty_start_date",
		})
		return
	}

	cmd := command.CreateUnitsCommand{
		ProductID:            productID,
		Serials:              req.Serials,
		Count:                req.Count,
		Prefix:               req.Prefix,
		ConditionGrade:       req.ConditionGrade,
		Location:             req.Location,
		PurchasePrice:        req.PurchasePrice,
		SupplierID:           req.SupplierID,
		WarrantyStartDate:    warrantyStart,
		WarrantyPeriodMonths: req.WarrantyPeriodMonths,
		Notes:                req.Notes,
		ActorID:              auth.UserIDFromContext(r.Context()),
	}

	units, err := h.createUnitsHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockMetric(productID)
	h.publishMovement(r, kafka.StockMovementEvent{
		EventType:      kafka.EventTypeUnitsReceived,
		ProductID:      productID,
		QuantityChange: int64(len(units)),
		ActorUserID:    cmd.ActorID,
	})

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Units created successfully",
		Data:    units,
	})
}

// UpdateSerial handles PUT /api/serials/{id}
func (h *InventoryHandler) UpdateSerial(w http.ResponseWriter, r *http.Request) {
	unitID, ok := pathID(w, r, "id", "Invalid unit ID")
	if !ok {
		return
	}

	var req struct {
		Status               *string `json:"status"`
		ConditionGrade       *string `json:"condition_grade"`
		Location             *string `json:"location"`
		PurchasePrice        *int64  `json:"purchase_price"`
		SupplierID           *uint   `json:"supplier_id"`
		WarrantyStartDate    *string `json:"warranty_start_date"`
		WarrantyPeriodMonths *int    `json:"warranty_period_months"`
		Notes                *string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	warrantyStart, err := parseDate(req.WarrantyStartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid warranty_start_date",
		})
		return
	}

	cmd := command.UpdateUnitCommand{
		UnitID: unitID,
		Patch: domain.UnitPatch{
			Status:               req.Status,
			ConditionGrade:       req.ConditionGrade,
			Location:             req.Location,
			PurchasePrice:        req.PurchasePrice,
			SupplierID:           req.SupplierID,
			WarrantyStartDate:    warrantyStart,
			WarrantyPeriodMonths: req.WarrantyPeriodMonths,
			Notes:                req.Notes,
		},
		ActorID: auth.UserIDFromContext(r.Context()),
	}

	unit, err := h.updateUnitHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockMetric(unit.ProductID)
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Unit updated successfully",
		Data:    unit,
	})
}

// DeleteSerial handles DELETE /api/serials/{id}
func (h *InventoryHandler) DeleteSerial(w http.ResponseWriter, r *http.Request) {
	unitID, ok := pathID(w, r, "id", "Invalid unit ID")
	if !ok {
		return
	}

	reason := r.URL.Query().Get("reason")
	cmd := command.DeleteUnitCommand{
		UnitID:  unitID,
		Reason:  reason,
		ActorID: auth.UserIDFromContext(r.Context()),
	}

	if err := h.deleteUnitHandler.Handle(cmd); err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Unit deleted successfully",
	})
}

// SellSerial handles POST /api/serials/{id}/sell
func (h *InventoryHandler) SellSerial(w http.ResponseWriter, r *http.Request) {
	unitID, ok := pathID(w, r, "id", "Invalid unit ID")
	if !ok {
		return
	}

	var req struct {
		OrderID    uint  `json:"order_id"`
		CustomerID uint  `json:"customer_id"`
		Price      int64 `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.MarkSoldCommand{
		UnitID:     unitID,
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Price:      req.Price,
		ActorID:    auth.UserIDFromContext(r.Context()),
	}

	unit, err := h.markSoldHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockMetric(unit.ProductID)
	h.publishMovement(r, kafka.StockMovementEvent{
		EventType:      kafka.EventTypeUnitSold,
		ProductID:      unit.ProductID,
		UnitID:         &unit.ID,
		SerialNumber:   unit.SerialNumber,
		QuantityChange: -1,
		OrderID:        unit.SoldOrderID,
		ActorUserID:    cmd.ActorID,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Unit sold successfully",
		Data:    unit,
	})
}

// ReturnSerial handles POST /api/serials/{id}/return
func (h *InventoryHandler) ReturnSerial(w http.ResponseWriter, r *http.Request) {
	unitID, ok := pathID(w, r, "id", "Invalid unit ID")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Body is optional for returns.
	_ = json.NewDecoder(r.Body).Decode(&req)

	cmd := command.ReturnUnitCommand{
		UnitID:  unitID,
		Reason:  req.Reason,
		ActorID: auth.UserIDFromContext(r.Context()),
	}

	unit, err := h.returnUnitHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockMetric(unit.ProductID)
	h.publishMovement(r, kafka.StockMovementEvent{
		EventType:      kafka.EventTypeUnitReturned,
		ProductID:      unit.ProductID,
		UnitID:         &unit.ID,
		SerialNumber:   unit.SerialNumber,
		QuantityChange: 1,
		ActorUserID:    cmd.ActorID,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Unit returned successfully",
		Data:    unit,
	})
}

// WarrantyLookup handles GET /api/serials/warranty/{serialNumber}
func (h *InventoryHandler) WarrantyLookup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serial := vars["serialNumber"]

	info, err := h.warrantyHandler.Handle(query.WarrantyInfoQuery{SerialNumber: serial})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    info,
	})
}

// ApplyAdjustment handles POST /api/inventory/adjustments
func (h *InventoryHandler) ApplyAdjustment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID   uint   `json:"product_id"`
		NewQuantity int64  `json:"new_quantity"`
		Reason      string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.ManualAdjustmentCommand{
		ProductID:   req.ProductID,
		NewQuantity: req.NewQuantity,
		Reason:      req.Reason,
		ActorID:     auth.UserIDFromContext(r.Context()),
	}

	result, err := h.adjustmentHandler.Handle(cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.updateStockMetric(req.ProductID)
	h.publishMovement(r, kafka.StockMovementEvent{
		EventType:      kafka.EventTypeStockAdjusted,
		ProductID:      req.ProductID,
		QuantityChange: result.Entry.QuantityChange,
		QuantityAfter:  result.Entry.QuantityAfter,
		Reason:         req.Reason,
		ActorUserID:    cmd.ActorID,
	})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Adjustment applied successfully",
		Data:    result,
	})
}

// ListTransactions handles GET /api/inventory/transactions
func (h *InventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := domain.TransactionFilter{
		Type: r.URL.Query().Get("type"),
	}
	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid product_id",
			})
			return
		}
		filter.ProductID = uint(id)
	}
	from, err := parseQueryDate(r, "from")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid from date",
		})
		return
	}
	to, err := parseQueryDate(r, "to")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid to date",
		})
		return
	}
	filter.From = from
	filter.To = to
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.transactionsHandler.Handle(query.ListTransactionsQuery{Filter: filter})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    entries,
	})
}

// GetStock handles GET /api/inventory/stock/{product_id}
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "product_id", "Invalid product ID")
	if !ok {
		return
	}

	summary, err := h.stockHandler.Handle(query.StockSummaryQuery{ProductID: productID})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products/{id}/serials", h.metricsMiddleware("/api/products/{id}/serials", h.ListSerials)).Methods("GET")
	router.HandleFunc("/api/products/{id}/serials", h.metricsMiddleware("/api/products/{id}/serials", auth.Middleware(h.CreateSerials))).Methods("POST")
	router.HandleFunc("/api/serials/{id:[0-9]+}", h.metricsMiddleware("/api/serials/{id}", auth.Middleware(h.UpdateSerial))).Methods("PUT")
	router.HandleFunc("/api/serials/{id:[0-9]+}", h.metricsMiddleware("/api/serials/{id}", auth.Middleware(h.DeleteSerial))).Methods("DELETE")
	router.HandleFunc("/api/serials/{id:[0-9]+}/sell", h.metricsMiddleware("/api/serials/{id}/sell", auth.Middleware(h.SellSerial))).Methods("POST")
	router.HandleFunc("/api/serials/{id:[0-9]+}/return", h.metricsMiddleware("/api/serials/{id}/return", auth.Middleware(h.ReturnSerial))).Methods("POST")
	router.HandleFunc("/api/serials/warranty/{serialNumber}", h.metricsMiddleware("/api/serials/warranty/{serialNumber}", h.WarrantyLookup)).Methods("GET")
	router.HandleFunc("/api/inventory/adjustments", h.metricsMiddleware("/api/inventory/adjustments", auth.Middleware(h.ApplyAdjustment))).Methods("POST")
	router.HandleFunc("/api/inventory/transactions", h.metricsMiddleware("/api/inventory/transactions", h.ListTransactions)).Methods("GET")
	router.HandleFunc("/api/inventory/stock/{product_id}", h.metricsMiddleware("/api/inventory/stock/{product_id}", h.GetStock)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// updateStockMetric refreshes the available-units gauge for a product.
func (h *InventoryHandler) updateStockMetric(productID uint) {
	count, err := h.repo.CountAvailable(productID)
	if err != nil {
		return
	}
	h.availableUnits.WithLabelValues(strconv.FormatUint(uint64(productID), 10)).Set(float64(count))
}

// publishMovement publishes a stock movement event. Publish failures are
// logged; the HTTP mutation has already committed.
func (h *InventoryHandler) publishMovement(r *http.Request, event kafka.StockMovementEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishStockMovement(r.Context(), event); err != nil {
		logger.Logger.Error().Err(err).
			Str("event_type", event.EventType).
			Uint("product_id", event.ProductID).
			Msg("Failed to publish stock movement")
	}
}

// respondDomainError maps domain errors to 4xx responses; everything else
// is a 500.
func (h *InventoryHandler) respondDomainError(w http.ResponseWriter, err error) {
	if de, ok := domain.AsDomainError(err); ok {
		status := http.StatusBadRequest
		switch de.Code {
		case domain.CodeNotFound:
			status = http.StatusNotFound
		case domain.CodeDuplicateSerial, domain.CodeUnitUnavailable, domain.CodeUnitSold,
			domain.CodeImmutableUnit, domain.CodeSupplierConstraint:
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{
			Success: false,
			Message: de.Message,
			Error:   de.Code,
		})
		return
	}

	logger.Logger.Error().Err(err).Msg("Inventory request failed")
	respondJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// pathID parses a numeric path variable.
func pathID(w http.ResponseWriter, r *http.Request, name, errMsg string) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars[name], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   errMsg,
		})
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts ISO-8601 dates with or without a time component.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseQueryDate(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	return parseDate(&v)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

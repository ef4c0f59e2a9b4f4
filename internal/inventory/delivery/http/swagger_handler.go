package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for the inventory service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListSerials godoc
// @Summary List serialized units of a product
// @Description Get every serialized unit registered for a product
// @Tags Serials
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id}/serials [get]
func (h *InventoryHandler) ListSerialsDoc() {}

// CreateSerials godoc
// @Summary Receive serialized units
// @Description Bulk-create units from a serial list or count+prefix; one import ledger entry per batch
// @Tags Serials
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{serials=array,count=int,prefix=string,condition_grade=string,location=string,purchase_price=int,supplier_id=int,warranty_start_date=string,warranty_period_months=int,notes=string} true "Batch data"
// @Success 201 {object} object{success=bool,message=string,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products/{id}/serials [post]
func (h *InventoryHandler) CreateSerialsDoc() {}

// UpdateSerial godoc
// @Summary Update a unit
// @Description Patch a unit; sold units accept only notes
// @Tags Serials
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/serials/{id} [put]
func (h *InventoryHandler) UpdateSerialDoc() {}

// DeleteSerial godoc
// @Summary Delete a unit
// @Description Hard-delete a unit that has not been sold
// @Tags Serials
// @Security BearerAuth
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/serials/{id} [delete]
func (h *InventoryHandler) DeleteSerialDoc() {}

// WarrantyLookup godoc
// @Summary Warranty lookup by serial number
// @Description Unit with derived warranty status plus product, supplier and sale context
// @Tags Serials
// @Produce json
// @Param serialNumber path string true "Serial number"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/serials/warranty/{serialNumber} [get]
func (h *InventoryHandler) WarrantyLookupDoc() {}

// ApplyAdjustment godoc
// @Summary Apply a manual stock adjustment
// @Description Reconcile a product's available count to a target quantity
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,new_quantity=int,reason=string} true "Adjustment data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/inventory/adjustments [post]
func (h *InventoryHandler) ApplyAdjustmentDoc() {}

// ListTransactions godoc
// @Summary List adjustment ledger entries
// @Description Filter by product, type and date range; newest first
// @Tags Inventory
// @Produce json
// @Param product_id query int false "Product ID"
// @Param type query string false "Entry type"
// @Param from query string false "From date (ISO-8601)"
// @Param to query string false "To date (ISO-8601)"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactionsDoc() {}

// GetStock godoc
// @Summary Stock summary for a product
// @Description Quantity, stock value and status derived from the available-unit pool
// @Tags Inventory
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/inventory/stock/{product_id} [get]
func (h *InventoryHandler) GetStockDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *InventoryHandler) HealthCheckDoc() {}

package main

// @title SerialPOS Inventory Service API
// @version 1.0
// @description Serial-number-tracked POS inventory API: catalog, serialized units, adjustment ledger, warranty lookups, suppliers and orders.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tdnguyen/serialpos
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tdnguyen/serialpos/blob/main/LICENSE

// @host localhost:8082
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Serials
// @tag.description Serialized unit management endpoints

// @tag.name Inventory
// @tag.description Stock summary, adjustments and ledger endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints

// Package v1 provides HTTP API version 1.
package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"merx/internal/domain/auth"
	"merx/internal/domain/catalogs/category"
	"merx/internal/domain/catalogs/customer"
	"merx/internal/domain/catalogs/product"
	"merx/internal/domain/catalogs/supplier"
	"merx/internal/domain/catalogs/warehouse"
	"merx/internal/domain/finance/voucher"
	"merx/internal/domain/fulfillment"
	"merx/internal/domain/orders/purchase"
	"merx/internal/domain/orders/sales"
	"merx/internal/domain/registers/stock"
	"merx/internal/domain/reports"
	"merx/internal/infrastructure/http/v1/handlers"
	"merx/internal/infrastructure/http/v1/middleware"
	"merx/internal/infrastructure/storage/postgres"
	"merx/internal/infrastructure/storage/postgres/auth_repo"
	"merx/internal/infrastructure/storage/postgres/catalog_repo"
	"merx/internal/infrastructure/storage/postgres/finance_repo"
	"merx/internal/infrastructure/storage/postgres/order_repo"
	"merx/internal/infrastructure/storage/postgres/register_repo"
	"merx/internal/infrastructure/storage/postgres/report_repo"
	"merx/pkg/logger"
	"merx/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTService signs and validates tokens
	JWTService *auth.JWTService

	// Version reported by /health/info
	Version string
}

// NewRouter creates and configures the Gin router with the full service graph.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Shared infrastructure
	txm := cfg.TxManager
	num := numerator.New(postgres.NewSequenceQuerier(txm))
	baseHandler := handlers.NewBaseHandler()

	auditStore, err := postgres.NewTransitionAuditStore(txm)
	if err != nil {
		return nil, fmt.Errorf("create audit store: %w", err)
	}

	// Domain services
	salesRepo := order_repo.NewSalesOrderRepo(txm)
	purchaseRepo := order_repo.NewPurchaseOrderRepo(txm)
	stockSvc := stock.NewService(register_repo.NewStockRepo(txm), txm)
	voucherSvc := voucher.NewService(finance_repo.NewVoucherRepo(txm), num, txm)
	engine := fulfillment.NewEngine(salesRepo, purchaseRepo, stockSvc, voucherSvc, auditStore, txm)

	authSvc := auth.NewService(auth_repo.NewUserRepo(txm), cfg.JWTService)

	// API v1
	api := router.Group("/api/v1")
	{
		// Auth: login is public, the rest requires a token
		authHandler := handlers.NewAuthHandler(baseHandler, authSvc)
		publicAuth := api.Group("/auth")
		protectedAuth := api.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.JWTService))
		authHandler.RegisterRoutes(publicAuth, protectedAuth,
			middleware.RequireRole(string(auth.RoleAdmin)))

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		registerCatalogRoutes(protected, baseHandler, txm, num)
		registerOrderRoutes(protected, baseHandler, salesRepo, purchaseRepo, num, txm, engine, auditStore)
		registerStockRoutes(protected, baseHandler, stockSvc)
		registerFinanceRoutes(protected, baseHandler, voucherSvc)
		registerReportRoutes(protected, baseHandler, txm)
	}

	return router, nil
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, txm *postgres.TxManager, num *numerator.Service) {
	catalogs := rg.Group("/catalog")

	{
		service := category.NewService(catalog_repo.NewCategoryRepo(txm), txm, num)
		handler := handlers.NewCategoryHandler(base, service)
		handler.RegisterRoutes(catalogs.Group("/categories"))
	}

	{
		service := product.NewService(catalog_repo.NewProductRepo(txm), txm, num)
		handler := handlers.NewProductHandler(base, service)
		handler.RegisterRoutes(catalogs.Group("/products"))
	}

	{
		service := customer.NewService(catalog_repo.NewCustomerRepo(txm), txm, num)
		handler := handlers.NewCustomerHandler(base, service)
		handler.RegisterRoutes(catalogs.Group("/customers"))
	}

	{
		service := supplier.NewService(catalog_repo.NewSupplierRepo(txm), txm, num)
		handler := handlers.NewSupplierHandler(base, service)
		handler.RegisterRoutes(catalogs.Group("/suppliers"))
	}

	{
		service := warehouse.NewService(catalog_repo.NewWarehouseRepo(txm), txm, num)
		handler := handlers.NewWarehouseHandler(base, service)
		handler.RegisterRoutes(catalogs.Group("/warehouses"))
	}
}

func registerOrderRoutes(
	rg *gin.RouterGroup,
	base *handlers.BaseHandler,
	salesRepo sales.Repository,
	purchaseRepo purchase.Repository,
	num *numerator.Service,
	txm *postgres.TxManager,
	engine *fulfillment.Engine,
	history handlers.TransitionHistory,
) {
	{
		service := sales.NewService(salesRepo, num, txm)
		handler := handlers.NewSalesOrderHandler(base, service, engine, history)
		handler.RegisterRoutes(rg.Group("/sales-orders"))
	}

	{
		service := purchase.NewService(purchaseRepo, num, txm)
		handler := handlers.NewPurchaseOrderHandler(base, service, engine, history)
		handler.RegisterRoutes(rg.Group("/purchase-orders"))
	}
}

func registerStockRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, stockSvc *stock.Service) {
	handler := handlers.NewStockHandler(base, stockSvc)
	handler.RegisterRoutes(rg.Group("/stock"))
}

func registerFinanceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, voucherSvc *voucher.Service) {
	handler := handlers.NewVoucherHandler(base, voucherSvc)
	handler.RegisterRoutes(rg.Group("/vouchers"))
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, txm *postgres.TxManager) {
	service := reports.NewService(report_repo.NewDashboardRepo(txm))
	handler := handlers.NewDashboardHandler(base, service)
	handler.RegisterRoutes(rg.Group("/reports"))
}

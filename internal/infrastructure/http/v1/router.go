package v1

import (
	"github.com/gin-gonic/gin"

	"agrostock/internal/domain/auth"
	"agrostock/internal/domain/catalogs/party"
	"agrostock/internal/domain/catalogs/product"
	"agrostock/internal/domain/ledger/income"
	"agrostock/internal/domain/ledger/purchase"
	"agrostock/internal/domain/ledger/remittance"
	"agrostock/internal/domain/ledger/sale"
	"agrostock/internal/domain/ledger/salereturn"
	"agrostock/internal/domain/presence"
	"agrostock/internal/domain/settings"
	"agrostock/internal/domain/stock"
	"agrostock/internal/infrastructure/http/v1/dto"
	"agrostock/internal/infrastructure/http/v1/handlers"
	"agrostock/internal/infrastructure/http/v1/middleware"
	"agrostock/internal/infrastructure/storage/postgres"
	"agrostock/pkg/logger"
)

// RouterConfig holds the wired services the router mounts.
type RouterConfig struct {
	Pool    *postgres.Pool
	Logger  *logger.Logger
	Version string

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	ProductService *product.Service
	StockEngine    *stock.Engine

	SupplierService *party.Service
	CustomerService *party.Service
	EmployeeService *party.Service

	PurchaseService   *purchase.Service
	SaleService       *sale.Service
	SaleReturnService *salereturn.Service
	IncomeService     *income.Service
	RemittanceService *remittance.Service

	SettingsService *settings.Service
	PresenceService *presence.Service

	AuditHistory handlers.AuditHistory
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, no auth
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService, cfg.PresenceService)

		// Public auth endpoints
		publicAuth := api.Group("/auth")
		publicAuth.POST("/register", authHandler.Register)
		publicAuth.POST("/login", authHandler.Login)

		// Everything else requires a valid token
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protectedAuth := protected.Group("/auth")
		protectedAuth.POST("/logout", authHandler.Logout)
		protectedAuth.GET("/me", authHandler.Me)
		protectedAuth.POST("/refresh", authHandler.Refresh)
		protectedAuth.POST("/change-password", authHandler.ChangePassword)

		registerCatalogRoutes(protected, baseHandler, cfg)
		registerRecordRoutes(protected, baseHandler, cfg)

		settingsHandler := handlers.NewSettingsHandler(baseHandler, cfg.SettingsService)
		protected.GET("/settings", settingsHandler.Get)
		protected.PUT("/settings", settingsHandler.Update)

		auditHandler := handlers.NewAuditHandler(baseHandler, cfg.AuditHistory)
		protected.GET("/audit/:entity/:id", auditHandler.History)

		presenceHandler := handlers.NewPresenceHandler(baseHandler, cfg.PresenceService)
		pr := protected.Group("/presence")
		pr.POST("/heartbeat", presenceHandler.Heartbeat)
		pr.GET("/online", presenceHandler.ListOnline)
		pr.GET("/online/count", presenceHandler.CountOnline)
		pr.POST("/action", presenceHandler.UpdateAction)
		pr.DELETE("/action", presenceHandler.ClearAction)
		pr.POST("/cleanup", presenceHandler.Cleanup)
	}

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService, cfg.StockEngine)
	products := rg.Group("/products")
	RegisterCatalogRoutes(products, productHandler)
	products.POST("/:id/stock", productHandler.AdjustStock)

	RegisterCatalogRoutes(rg.Group("/suppliers"), handlers.NewPartyHandler(base, cfg.SupplierService))
	RegisterCatalogRoutes(rg.Group("/customers"), handlers.NewPartyHandler(base, cfg.CustomerService))
	RegisterCatalogRoutes(rg.Group("/employees"), handlers.NewPartyHandler(base, cfg.EmployeeService))
}

func registerRecordRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	purchaseHandler := handlers.NewRecordHandler(base, cfg.PurchaseService.Service, "purchase", "supplier_id",
		func(req dto.PurchaseRequest, ownerID, recordID int64) *purchase.Purchase {
			return req.ToModel(ownerID, recordID)
		})
	purchaseHandler.RegisterRoutes(rg.Group("/purchases"))

	saleHandler := handlers.NewRecordHandler(base, cfg.SaleService.Service, "sale", "customer_id",
		func(req dto.SaleRequest, ownerID, recordID int64) *sale.Sale {
			return req.ToModel(ownerID, recordID)
		})
	saleHandler.RegisterRoutes(rg.Group("/sales"))

	returnHandler := handlers.NewRecordHandler(base, cfg.SaleReturnService.Service, "return", "customer_id",
		func(req dto.SaleReturnRequest, ownerID, recordID int64) *salereturn.SaleReturn {
			return req.ToModel(ownerID, recordID)
		})
	returnHandler.RegisterRoutes(rg.Group("/sale-returns"))

	incomeHandler := handlers.NewRecordHandler(base, cfg.IncomeService.Service, "income", "customer_id",
		func(req dto.IncomeRequest, ownerID, recordID int64) *income.Income {
			return req.ToModel(ownerID, recordID)
		})
	incomeHandler.RegisterRoutes(rg.Group("/income"))

	remittanceHandler := handlers.NewRecordHandler(base, cfg.RemittanceService.Service, "remittance", "supplier_id",
		func(req dto.RemittanceRequest, ownerID, recordID int64) *remittance.Remittance {
			return req.ToModel(ownerID, recordID)
		})
	remittanceHandler.RegisterRoutes(rg.Group("/remittances"))
}

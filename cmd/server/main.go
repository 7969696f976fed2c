// Package main is the entry point for the agrostock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	v1 "agrostock/internal/infrastructure/http/v1"
	"agrostock/internal/infrastructure/storage/postgres"
	"agrostock/internal/infrastructure/storage/postgres/auth_repo"
	"agrostock/internal/infrastructure/storage/postgres/catalog_repo"
	"agrostock/internal/infrastructure/storage/postgres/record_repo"
	"agrostock/pkg/logger"
)

const version = "1.0.0"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting agrostock server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	supplierRepo := catalog_repo.NewPartyRepo(txManager, party.KindSupplier)
	customerRepo := catalog_repo.NewPartyRepo(txManager, party.KindCustomer)
	employeeRepo := catalog_repo.NewPartyRepo(txManager, party.KindEmployee)

	userRepo := auth_repo.NewUserRepo(txManager)
	settingsRepo := auth_repo.NewSettingsRepo(txManager)
	presenceRepo := auth_repo.NewPresenceRepo(txManager)

	// --- Services ---
	supplierService := party.NewService(supplierRepo, txManager, party.KindSupplier)
	customerService := party.NewService(customerRepo, txManager, party.KindCustomer)
	employeeService := party.NewService(employeeRepo, txManager, party.KindEmployee)

	productService := product.NewService(productRepo, txManager, supplierService)
	engine := stock.NewEngine(productRepo)

	purchaseService := purchase.NewService(record_repo.NewPurchaseRepo(txManager), engine, txManager, supplierService)
	purchaseService.WithAuditor(auditService)

	saleService := sale.NewService(record_repo.NewSaleRepo(txManager), engine, txManager, customerService)
	saleService.WithAuditor(auditService)

	returnService := salereturn.NewService(record_repo.NewSaleReturnRepo(txManager), engine, txManager, customerService)
	returnService.WithAuditor(auditService)

	incomeService := income.NewService(record_repo.NewIncomeRepo(txManager), engine, txManager, customerService, employeeService)
	incomeService.WithAuditor(auditService)

	remittanceService := remittance.NewService(record_repo.NewRemittanceRepo(txManager), engine, txManager, supplierService, employeeService)
	remittanceService.WithAuditor(auditService)

	settingsService := settings.NewService(settingsRepo, txManager)

	jwtConfig := auth.DefaultJWTConfig(getEnv("JWT_SECRET", "change-me-in-production"))
	jwtService := auth.NewJWTService(jwtConfig)
	authService := auth.NewService(userRepo, jwtService, txManager, settingsService)

	presenceWindow := getEnvDuration("PRESENCE_WINDOW", presence.DefaultOnlineWindow)
	presenceService := presence.NewService(presenceRepo, presenceWindow)

	// --- Presence sweeper ---
	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := presence.NewSweeper(presenceService, getEnvDuration("PRESENCE_SWEEP_INTERVAL", time.Minute))
	go sweeper.Run(sweeperCtx)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:    pool,
		Logger:  log,
		Version: version,

		JWTValidator: jwtService,
		AuthService:  authService,

		ProductService: productService,
		StockEngine:    engine,

		SupplierService: supplierService,
		CustomerService: customerService,
		EmployeeService: employeeService,

		PurchaseService:   purchaseService,
		SaleService:       saleService,
		SaleReturnService: returnService,
		IncomeService:     incomeService,
		RemittanceService: remittanceService,

		SettingsService: settingsService,
		PresenceService: presenceService,

		AuditHistory: auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

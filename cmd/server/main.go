package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fuelcardapp "github.com/fleet/backend/internal/application/fuelcard"
	reportapp "github.com/fleet/backend/internal/application/report"
	transactionapp "github.com/fleet/backend/internal/application/transaction"
	"github.com/fleet/backend/internal/infrastructure/auth"
	"github.com/fleet/backend/internal/infrastructure/config"
	"github.com/fleet/backend/internal/infrastructure/logger"
	"github.com/fleet/backend/internal/infrastructure/persistence"
	"github.com/fleet/backend/internal/interfaces/http/handler"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/fleet/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Fleet Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	cardRepo := persistence.NewGormCardRepository(db.DB)
	chargeRepo := persistence.NewGormChargeRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	fuelTypeRepo := persistence.NewGormFuelTypeRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)

	// Transaction scope binds the card lock and ledger writes into one
	// database transaction
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	chargeService := transactionapp.NewChargeService(txScope, chargeRepo, fuelTypeRepo)
	withdrawalService := transactionapp.NewWithdrawalService(txScope, withdrawalRepo, fuelTypeRepo)
	cardService := fuelcardapp.NewCardService(txScope, cardRepo, fuelTypeRepo, chargeRepo, withdrawalRepo)
	fuelTypeService := fuelcardapp.NewFuelTypeService(fuelTypeRepo)
	consumptionService := reportapp.NewConsumptionService(
		cardRepo, driverRepo, companyRepo, fuelTypeRepo, chargeRepo, withdrawalRepo,
	)

	// Initialize handlers
	cardHandler := handler.NewCardHandler(cardService)
	chargeHandler := handler.NewChargeHandler(chargeService)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalService)
	fuelTypeHandler := handler.NewFuelTypeHandler(fuelTypeService)
	reportHandler := handler.NewReportHandler(consumptionService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom binding validators
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. JWT - Authenticate API requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Fuel card domain
	cardRoutes := router.NewDomainGroup("cards", "/cards")
	cardRoutes.POST("", cardHandler.Create)
	cardRoutes.GET("", cardHandler.List)
	cardRoutes.GET("/names", cardHandler.ListNames)
	cardRoutes.GET("/:id", cardHandler.GetByID)
	cardRoutes.PUT("/:id", cardHandler.Update)
	cardRoutes.DELETE("/:id", cardHandler.Delete)
	cardRoutes.GET("/:id/fuel-price", cardHandler.GetFuelPrice)
	cardRoutes.POST("/:id/reset-monthly-consumption", cardHandler.ResetMonthlyConsumption)

	// Charge ledger
	chargeRoutes := router.NewDomainGroup("charges", "/charges")
	chargeRoutes.POST("", chargeHandler.Create)
	chargeRoutes.GET("", chargeHandler.List)
	chargeRoutes.GET("/:id", chargeHandler.GetByID)
	chargeRoutes.PUT("/:id", chargeHandler.Update)
	chargeRoutes.DELETE("/:id", chargeHandler.Delete)
	chargeRoutes.POST("/:id/validate", chargeHandler.Validate)

	// Withdrawal ledger
	withdrawalRoutes := router.NewDomainGroup("withdrawals", "/withdrawals")
	withdrawalRoutes.POST("", withdrawalHandler.Create)
	withdrawalRoutes.GET("", withdrawalHandler.List)
	withdrawalRoutes.GET("/:id", withdrawalHandler.GetByID)
	withdrawalRoutes.PUT("/:id", withdrawalHandler.Update)
	withdrawalRoutes.DELETE("/:id", withdrawalHandler.Delete)
	withdrawalRoutes.POST("/:id/validate", withdrawalHandler.Validate)

	// Fuel type reference data
	fuelTypeRoutes := router.NewDomainGroup("fuel-types", "/fuel-types")
	fuelTypeRoutes.GET("", fuelTypeHandler.List)
	fuelTypeRoutes.GET("/:id", fuelTypeHandler.GetByID)

	// Consumption reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/cards/:id/consumption", reportHandler.MonthlyConsumption)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(cardRoutes).
		Register(chargeRoutes).
		Register(withdrawalRoutes).
		Register(fuelTypeRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

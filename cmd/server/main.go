package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/fieldsales/backend/internal/application/identity"
	inventoryapp "github.com/fieldsales/backend/internal/application/inventory"
	partnerapp "github.com/fieldsales/backend/internal/application/partner"
	pricingapp "github.com/fieldsales/backend/internal/application/pricing"
	salesapp "github.com/fieldsales/backend/internal/application/sales"
	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/fieldsales/backend/internal/infrastructure/auth"
	"github.com/fieldsales/backend/internal/infrastructure/cache"
	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/fieldsales/backend/internal/infrastructure/event"
	"github.com/fieldsales/backend/internal/infrastructure/logger"
	"github.com/fieldsales/backend/internal/infrastructure/persistence"
	"github.com/fieldsales/backend/internal/infrastructure/telemetry"
	"github.com/fieldsales/backend/internal/interfaces/http/handler"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/fieldsales/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/fieldsales/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Field Sales API
//	@version		1.0
//	@description	Field sales management backend for agencies: orders, discount approvals, invoices, returns, deliveries and stock.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/fieldsales/backend
//	@contact.email	support@fieldsales.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting Field Sales Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database span instrumentation
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	agencyRepo := persistence.NewGormAgencyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	salesReturnRepo := persistence.NewGormSalesReturnRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	discountRuleRepo := persistence.NewGormDiscountRuleRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	stockTransactionRepo := persistence.NewGormStockTransactionRepository(db.DB)

	// Agency discount limits fall back to this default when no override exists
	if cfg.Sales.DefaultDiscountLimit.IsPositive() {
		pricing.DefaultDiscountLimitPercent = cfg.Sales.DefaultDiscountLimit
	}

	// Per-agency discount limit cache, shared by the order, pricing and
	// agency services
	limitCache := cache.NewDiscountLimitCache(agencyRepo, cfg.Sales.DiscountLimitCacheTTL)
	discountPolicy := pricing.NewDiscountPolicy(pricing.PolicyOptions{})

	// Initialize application services
	salesOrderService := salesapp.NewSalesOrderService(salesOrderRepo, limitCache, discountPolicy)
	inventoryService := inventoryapp.NewService(inventoryItemRepo, stockTransactionRepo)
	invoiceService := salesapp.NewInvoiceService(invoiceRepo, salesOrderRepo, inventoryService, log)
	returnService := salesapp.NewReturnService(salesReturnRepo, invoiceRepo, inventoryService, log)
	deliveryService := salesapp.NewDeliveryService(deliveryRepo, invoiceRepo)
	pricingService := pricingapp.NewService(discountRuleRepo, limitCache, discountPolicy)
	customerService := partnerapp.NewCustomerService(customerRepo)
	agencyService := partnerapp.NewAgencyService(agencyRepo, limitCache)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, agencyRepo, jwtService, log)

	// Business metrics fed from domain events; the meter is a no-op when
	// telemetry is disabled
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             meterProvider.Meter(cfg.Telemetry.ServiceName),
		Logger:            log,
		InventoryProvider: telemetry.NewGormInventoryMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if meterProvider.IsEnabled() {
		businessMetrics.StartPeriodicCollection(context.Background(), telemetry.NewGormAgencyProvider(db.DB), 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	salesMetricsHandler := telemetry.NewSalesEventMetricsHandler(businessMetrics, log)
	eventBus.Subscribe(salesMetricsHandler)

	log.Info("Event handlers registered",
		zap.Strings("sales_metrics_events", salesMetricsHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	salesOrderService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	returnService.SetEventPublisher(eventBus)
	deliveryService.SetEventPublisher(eventBus)

	// Idempotency store: Redis when configured, in-memory fallback for
	// single-node deployments
	var idempotencyStore cache.IdempotencyStore
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Warn("Redis not configured, using in-memory idempotency store")
	}

	// Initialize HTTP handlers
	salesOrderHandler := handler.NewSalesOrderHandler(salesOrderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	salesReturnHandler := handler.NewSalesReturnHandler(returnService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	discountRuleHandler := handler.NewDiscountRuleHandler(pricingService)
	customerHandler := handler.NewCustomerHandler(customerService)
	agencyHandler := handler.NewAgencyHandler(agencyService)
	authHandler := handler.NewAuthHandler(authService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
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
	// 7. Tracing/Metrics - OpenTelemetry instrumentation
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain (login and token refresh are public, registration is
	// restricted to superusers)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/register", middleware.RequireSuperuser(), authHandler.Register)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}

	// Sales domain (orders, approvals, invoices, returns, deliveries).
	// Mutating routes honor X-Idempotency-Key.
	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  idempotencyStore,
		TTL:    cfg.Sales.IdempotencyTTL,
		Logger: log,
	}))

	// Sales order routes
	salesRoutes.POST("/orders", salesOrderHandler.Create)
	salesRoutes.GET("/orders", salesOrderHandler.List)
	salesRoutes.GET("/orders/:id", salesOrderHandler.GetByID)
	salesRoutes.POST("/orders/:id/cancel", salesOrderHandler.Cancel)
	salesRoutes.POST("/orders/:id/close", salesOrderHandler.Close)

	// Approval queue, superusers only
	approvalRoutes := salesRoutes.Group("approvals", "/approvals")
	approvalRoutes.Use(middleware.RequireSuperuser())
	approvalRoutes.GET("", salesOrderHandler.ListPendingApproval)
	approvalRoutes.POST("/:id/approve", salesOrderHandler.Approve)
	approvalRoutes.POST("/:id/reject", salesOrderHandler.Reject)

	// Invoice routes
	salesRoutes.POST("/invoices", invoiceHandler.CreateDirect)
	salesRoutes.GET("/invoices", invoiceHandler.List)
	salesRoutes.GET("/invoices/:id", invoiceHandler.GetByID)
	salesRoutes.POST("/orders/:id/invoices", invoiceHandler.ConvertOrder)
	salesRoutes.GET("/orders/:id/invoices", invoiceHandler.ListByOrder)

	// Return routes
	salesRoutes.POST("/returns", salesReturnHandler.Create)
	salesRoutes.GET("/returns", salesReturnHandler.List)
	salesRoutes.GET("/returns/:id", salesReturnHandler.GetByID)
	salesRoutes.PUT("/returns/:id/invoice", salesReturnHandler.LinkInvoice)

	// Delivery routes
	salesRoutes.POST("/deliveries", deliveryHandler.Create)
	salesRoutes.GET("/deliveries/:id", deliveryHandler.GetByID)
	salesRoutes.GET("/deliveries/agent/:agent_id", deliveryHandler.ListByAgent)
	salesRoutes.POST("/deliveries/:id/dispatch", deliveryHandler.Dispatch)
	salesRoutes.POST("/deliveries/:id/complete", deliveryHandler.Complete)
	salesRoutes.POST("/deliveries/:id/fail", deliveryHandler.Fail)
	salesRoutes.POST("/deliveries/:id/cancel", deliveryHandler.Cancel)

	// Inventory domain
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/items", inventoryHandler.Register)
	inventoryRoutes.GET("/items", inventoryHandler.List)
	inventoryRoutes.GET("/items/product/:product_id", inventoryHandler.GetByProduct)
	inventoryRoutes.GET("/items/:id/transactions", inventoryHandler.ListTransactions)
	inventoryRoutes.POST("/adjustments", inventoryHandler.Adjust)

	// Pricing domain (discount and promotional rules)
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/rules", discountRuleHandler.Create)
	pricingRoutes.GET("/rules", discountRuleHandler.List)
	pricingRoutes.GET("/rules/applicable", discountRuleHandler.ListApplicable)
	pricingRoutes.GET("/rules/:id", discountRuleHandler.GetByID)
	pricingRoutes.POST("/rules/:id/usages", discountRuleHandler.RecordUsage)
	pricingRoutes.DELETE("/rules/:id", discountRuleHandler.Deactivate)
	pricingRoutes.POST("/evaluate", discountRuleHandler.Evaluate)

	// Partner domain (customers)
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Deactivate)

	// Agency administration, superusers only
	agencyRoutes := router.NewDomainGroup("agencies", "/agencies")
	agencyRoutes.Use(middleware.RequireSuperuser())
	agencyRoutes.POST("", agencyHandler.Create)
	agencyRoutes.GET("", agencyHandler.List)
	agencyRoutes.GET("/:id", agencyHandler.GetByID)
	agencyRoutes.PUT("/:id/discount-limit", agencyHandler.SetDiscountLimit)
	agencyRoutes.DELETE("/:id", agencyHandler.Deactivate)

	// Register all domain groups
	r.Register(authRoutes).
		Register(salesRoutes).
		Register(inventoryRoutes).
		Register(pricingRoutes).
		Register(customerRoutes).
		Register(agencyRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
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
		resp := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			resp["db_pool"] = stats
		}
		c.JSON(http.StatusOK, resp)
	}
}

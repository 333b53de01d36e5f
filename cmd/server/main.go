package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	kitchenapp "github.com/qrdine/backend/internal/application/kitchen"
	menuapp "github.com/qrdine/backend/internal/application/menu"
	orderingapp "github.com/qrdine/backend/internal/application/ordering"
	reportapp "github.com/qrdine/backend/internal/application/report"
	restaurantapp "github.com/qrdine/backend/internal/application/restaurant"
	"github.com/qrdine/backend/internal/domain/ordering"
	"github.com/qrdine/backend/internal/infrastructure/cache"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"github.com/qrdine/backend/internal/infrastructure/event"
	"github.com/qrdine/backend/internal/infrastructure/logger"
	"github.com/qrdine/backend/internal/infrastructure/metrics"
	"github.com/qrdine/backend/internal/infrastructure/migration"
	"github.com/qrdine/backend/internal/infrastructure/persistence"
	"github.com/qrdine/backend/internal/interfaces/http/handler"
	"github.com/qrdine/backend/internal/interfaces/http/middleware"
	"github.com/qrdine/backend/internal/interfaces/http/router"
	"github.com/qrdine/backend/migrations"
	"go.uber.org/zap"
)

//	@title			QR Dine API
//	@version		1.0
//	@description	Table ordering backend: QR menus, orders, kitchen display and analytics.

//	@BasePath	/api

//	@securityDefinitions.apikey	RestaurantScope
//	@in							header
//	@name						X-Restaurant-ID

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting QR Dine backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap backed GORM logging
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLogger := logger.NewGormLogger(log, gormLevel, logger.WithSlowThreshold(cfg.Database.SlowQuery))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		runMigrations(db, cfg, log)
	}

	// Repositories
	restaurantRepo := persistence.NewGormRestaurantRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	menuRepo := persistence.NewGormMenuItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Public menu cache. Outside production an unreachable Redis falls back to memory.
	menuCache, err := cache.NewMenuCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Create()
	if err != nil {
		log.Fatal("Failed to create menu cache", zap.Error(err))
	}
	defer func() {
		_ = menuCache.Close()
	}()

	// Order events: in-process bus, optional broker forwarding and metrics
	eventBus := event.NewInMemoryEventBus(log)
	serializer := event.NewEventSerializer()
	event.RegisterOrderEvents(serializer)

	publisher, err := event.NewBrokerPublisher(cfg.Event, log)
	if err != nil {
		log.Fatal("Failed to connect event broker", zap.Error(err), zap.String("broker", cfg.Event.Broker))
	}
	if publisher != nil {
		eventBus.Subscribe(event.NewBrokerForwarder(publisher, serializer, log))
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn("Failed to close event publisher", zap.Error(err))
			}
		}()
		log.Info("Forwarding order events", zap.String("broker", cfg.Event.Broker))
	}

	var metricsRegistry *metrics.Registry
	if cfg.Metrics.Enabled {
		metricsRegistry = metrics.NewRegistry()
		eventBus.Subscribe(metrics.NewOrderMetrics(metricsRegistry))
		if sqlDB, err := db.DB.DB(); err == nil {
			metricsRegistry.RegisterDatabase(sqlDB, cfg.Database.DBName)
		}
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// Application services
	restaurantService := restaurantapp.NewRestaurantService(restaurantRepo)
	tableService := restaurantapp.NewTableService(tableRepo, restaurantRepo, orderRepo, cfg.App.PublicURL)
	menuService := menuapp.NewMenuService(menuRepo, orderRepo, menuCache, log)
	menuImportService := menuapp.NewMenuImportService(menuRepo, menuCache, log, menuapp.DefaultMaxImportRows)
	orderService := orderingapp.NewOrderService(orderRepo, tableRepo, restaurantRepo, menuRepo, log)
	orderService.SetEventPublisher(eventBus)
	kitchenService := kitchenapp.NewKitchenService(orderRepo, ordering.PriorityThresholds{
		HighAfter:   cfg.Kitchen.HighAfter,
		UrgentAfter: cfg.Kitchen.UrgentAfter,
	}, cfg.Kitchen.PollInterval)
	reportService := reportapp.NewReportService(reportRepo, restaurantRepo)

	// HTTP handlers
	handlers := router.Handlers{
		Restaurant: handler.NewRestaurantHandler(restaurantService),
		Table:      handler.NewTableHandler(tableService, orderService),
		Menu:       handler.NewMenuHandler(menuService, menuImportService, cfg.HTTP.MaxUploadSize),
		Order:      handler.NewOrderHandler(orderService),
		Kitchen:    handler.NewKitchenHandler(kitchenService, orderService),
		Report:     handler.NewReportHandler(reportService),
	}

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

	// Middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Metrics - Count and time requests (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. RateLimit - Apply rate limiting (if enabled)
	// Body limits are applied per route group by the router.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if metricsRegistry != nil {
		engine.Use(metricsRegistry.Middleware())
	}

	securityConfig := middleware.DefaultSecurityConfig()
	securityConfig.HSTSEnabled = cfg.App.Env == "production"
	engine.Use(middleware.SecureWithConfig(securityConfig))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check and metrics live outside the API prefix
	engine.GET("/health", handler.NewHealthHandler(db).Check)
	if metricsRegistry != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(metricsRegistry.Handler()))
	}

	apiRouter := router.RegisterAPI(router.NewRouter(engine), handlers, router.Limits{
		MaxBodySize:   cfg.HTTP.MaxBodySize,
		MaxUploadSize: cfg.HTTP.MaxUploadSize,
	})
	apiRouter.Setup()
	log.Debug("API routes registered", zap.String("base", apiRouter.BasePath()), zap.Strings("routes", apiRouter.Routes()))

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
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// runMigrations applies the embedded SQL migrations over a dedicated
// connection; closing the migrator closes the handle it was given. Development
// databases fall back to GORM AutoMigrate when the migrations cannot be applied.
func runMigrations(db *persistence.Database, cfg *config.Config, log *zap.Logger) {
	err := applyMigrations(cfg.Database.DSN(), log)
	if err == nil {
		log.Info("Database migrations applied")
		return
	}

	if cfg.App.Env != "development" {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	log.Warn("Migrations failed, falling back to AutoMigrate", zap.Error(err))
	if err := db.AutoMigrate(); err != nil {
		log.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

func applyMigrations(dsn string, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	migrator, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() { _ = migrator.Close() }()
	return migrator.Up()
}
